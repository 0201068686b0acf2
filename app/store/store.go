// Package store contains entities of the quiz registry and
// storages to persist them.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ErrNotFound is an error that is returned when the requested entity is not found.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRegistered is returned when the chat has already registered
// for the quiz with the same title.
var ErrAlreadyRegistered = errors.New("already registered")

//go:generate moq -out mock_store.go . Interface

// Interface defines methods for store.
// Registry is always read and written as a whole.
type Interface interface {
	// Load never fails, absent or broken storage yields an empty registry.
	Load(ctx context.Context) *Registry
	Save(ctx context.Context, r *Registry) error
}

// Quiz is a single tournament announcement.
type Quiz struct {
	// Title combines date heading and the name of the tournament,
	// two quizzes with the same title are the same tournament.
	Title      string
	URL        string
	Difficulty *float64
	Date       time.Time
	ID         string
}

// ChatState is a chat's view of announced and registered quizzes.
type ChatState struct {
	Known      []Quiz
	Registered []Quiz
}

// Registry maps chat ids to their states.
type Registry struct {
	Chats map[int64]*ChatState
}

// NewRegistry makes an empty registry.
func NewRegistry() *Registry {
	return &Registry{Chats: map[int64]*ChatState{}}
}

// GetOrCreate returns the state of the chat, creating an empty one if the
// chat is seen for the first time.
func (r *Registry) GetOrCreate(chatID int64) *ChatState {
	if r.Chats == nil {
		r.Chats = map[int64]*ChatState{}
	}

	st, ok := r.Chats[chatID]
	if !ok {
		st = &ChatState{}
		r.Chats[chatID] = st
	}

	return st
}

var newID = func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }

// Unknown returns candidates with titles not known to the chat yet.
// Repeated titles among the candidates are returned once.
func (s *ChatState) Unknown(candidates []Quiz) []Quiz {
	seen := titles(s.Known)
	return lo.Filter(candidates, func(q Quiz, _ int) bool {
		if _, ok := seen[q.Title]; ok {
			return false
		}
		seen[q.Title] = struct{}{}
		return true
	})
}

// RecordNewQuizzes appends unknown candidates to the known ones, assigning
// each of them a fresh id. It returns the appended quizzes.
func (s *ChatState) RecordNewQuizzes(candidates []Quiz) []Quiz {
	fresh := s.Unknown(candidates)
	for i := range fresh {
		fresh[i].ID = newID()
	}

	s.Known = append(s.Known, fresh...)
	return fresh
}

// RegisterQuiz marks the known quiz with the given id as registered.
func (s *ChatState) RegisterQuiz(id string) (Quiz, error) {
	q, ok := lo.Find(s.Known, func(q Quiz) bool { return q.ID == id })
	if !ok {
		return Quiz{}, ErrNotFound
	}

	if _, registered := titles(s.Registered)[q.Title]; registered {
		return q, ErrAlreadyRegistered
	}

	s.Registered = append(s.Registered, q)
	return q, nil
}

// Upcoming returns registered quizzes that take place after now.
func (s *ChatState) Upcoming(now time.Time) []Quiz {
	return lo.Filter(s.Registered, func(q Quiz, _ int) bool { return q.Date.After(now) })
}

// SelectableForRegistration returns known quizzes that are not registered
// yet and take place after now.
func (s *ChatState) SelectableForRegistration(now time.Time) []Quiz {
	registered := titles(s.Registered)
	return lo.Filter(s.Known, func(q Quiz, _ int) bool {
		_, ok := registered[q.Title]
		return !ok && q.Date.After(now)
	})
}

func titles(qs []Quiz) map[string]struct{} {
	res := make(map[string]struct{}, len(qs))
	for _, q := range qs {
		res[q.Title] = struct{}{}
	}
	return res
}
