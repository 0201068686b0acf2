package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the layout dates are persisted with.
const DateLayout = "2006-01-02T15:04:05"

// dateLayouts are accepted when reading dates, older files carry
// fractional seconds and some writers add a zone.
var dateLayouts = []string{DateLayout, "2006-01-02T15:04:05.999999999", time.RFC3339Nano}

type quizJSON struct {
	PollText   *string  `json:"poll_text"`
	URL        *string  `json:"url"`
	Difficulty *float64 `json:"difficulty"`
	Date       *string  `json:"date"`
	ID         *string  `json:"id"`
}

type chatJSON struct {
	PollQuizzes       []json.RawMessage `json:"poll_quizzes"`
	RegisteredQuizzes []json.RawMessage `json:"registered_quizzes"`
}

// DecodeResult is a registry decoded from the persisted form, along with
// the reasons of every entry that was dropped while decoding.
type DecodeResult struct {
	Registry *Registry
	Dropped  []error
}

// Encode marshals the whole registry.
func Encode(r *Registry) ([]byte, error) {
	doc := make(map[string]chatJSON, len(r.Chats))
	for id, st := range r.Chats {
		chat, err := encodeChat(st)
		if err != nil {
			return nil, fmt.Errorf("encode chat %d: %w", id, err)
		}
		doc[strconv.FormatInt(id, 10)] = chat
	}

	return marshal(doc)
}

// Decode unmarshals the registry. It fails only if the document is not
// a JSON object, malformed entries inside are dropped.
func Decode(data []byte) (DecodeResult, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return DecodeResult{}, fmt.Errorf("unmarshal registry: %w", err)
	}

	res := DecodeResult{Registry: NewRegistry()}
	for key, raw := range doc {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			res.Dropped = append(res.Dropped, fmt.Errorf("chat key %q: %w", key, err))
			continue
		}

		st, dropped, err := decodeChat(raw)
		if err != nil {
			res.Dropped = append(res.Dropped, fmt.Errorf("chat %d: %w", id, err))
			continue
		}
		for _, e := range dropped {
			res.Dropped = append(res.Dropped, fmt.Errorf("chat %d: %w", id, e))
		}

		res.Registry.Chats[id] = st
	}

	return res, nil
}

func encodeChat(st *ChatState) (chatJSON, error) {
	res := chatJSON{
		PollQuizzes:       make([]json.RawMessage, 0, len(st.Known)),
		RegisteredQuizzes: make([]json.RawMessage, 0, len(st.Registered)),
	}

	for _, q := range st.Known {
		raw, err := encodeQuiz(q)
		if err != nil {
			return chatJSON{}, err
		}
		res.PollQuizzes = append(res.PollQuizzes, raw)
	}

	for _, q := range st.Registered {
		raw, err := encodeQuiz(q)
		if err != nil {
			return chatJSON{}, err
		}
		res.RegisteredQuizzes = append(res.RegisteredQuizzes, raw)
	}

	return res, nil
}

func decodeChat(raw json.RawMessage) (st *ChatState, dropped []error, err error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil, fmt.Errorf("chat state is null")
	}

	var chat chatJSON
	if err = json.Unmarshal(raw, &chat); err != nil {
		return nil, nil, fmt.Errorf("unmarshal chat: %w", err)
	}

	decodeList := func(name string, raws []json.RawMessage) []Quiz {
		var res []Quiz
		for i, r := range raws {
			q, err := decodeQuiz(r)
			if err != nil {
				dropped = append(dropped, fmt.Errorf("%s[%d]: %w", name, i, err))
				continue
			}
			res = append(res, q)
		}
		return res
	}

	st = &ChatState{
		Known:      decodeList("poll_quizzes", chat.PollQuizzes),
		Registered: decodeList("registered_quizzes", chat.RegisteredQuizzes),
	}

	return st, dropped, nil
}

func encodeQuiz(q Quiz) (json.RawMessage, error) {
	res := quizJSON{PollText: &q.Title, Difficulty: q.Difficulty}
	if q.URL != "" {
		res.URL = &q.URL
	}
	if q.ID != "" {
		res.ID = &q.ID
	}
	if !q.Date.IsZero() {
		date := q.Date.UTC().Format(DateLayout)
		res.Date = &date
	}

	return marshal(res)
}

func decodeQuiz(raw json.RawMessage) (Quiz, error) {
	var qj quizJSON
	if err := json.Unmarshal(raw, &qj); err != nil {
		return Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}

	if qj.PollText == nil {
		return Quiz{}, fmt.Errorf("no poll_text")
	}

	q := Quiz{Title: *qj.PollText, Difficulty: qj.Difficulty}
	if qj.URL != nil {
		q.URL = *qj.URL
	}
	if qj.ID != nil {
		q.ID = *qj.ID
	}
	if qj.Date != nil {
		date, err := parseDate(*qj.Date)
		if err != nil {
			return Quiz{}, err
		}
		q.Date = date
	}

	return q, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", s)
}

// marshal is json.Marshal without escaping of HTML characters.
func marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
