// Package difficulty estimates difficulty of quiz tournaments by asking
// a language model about their announcements.
package difficulty

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"text/template"

	"github.com/Semior001/quizpoll/app/store"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

//go:embed data/prompt.tmpl
var prompt string

var promptTmpl = template.Must(template.New("prompt").Parse(prompt))

// Service estimates difficulties.
type Service struct {
	log       *slog.Logger
	cl        *http.Client
	extractor Extractor
	completer Completer
	cache     cache.Cache[string, float64]
}

// NewService creates new service, estimations of up to cacheSize pages are kept.
func NewService(lg *slog.Logger, cl *http.Client, extractor Extractor, completer Completer, cacheSize int) *Service {
	return &Service{
		log:       lg,
		cl:        cl,
		extractor: extractor,
		completer: completer,
		cache: cache.NewCache[string, float64]().
			WithLRU().
			WithMaxKeys(cacheSize),
	}
}

// CacheStat returns cache stats.
func (s *Service) CacheStat() cache.Stats { return s.cache.Stat() }

// EstimateAll estimates difficulties of all quizzes concurrently and returns
// copies of quizzes with difficulties set. Any failure fails the whole batch.
func (s *Service) EstimateAll(ctx context.Context, quizzes []store.Quiz) ([]store.Quiz, error) {
	difficulties := make([]float64, len(quizzes))

	ewg, ctx := errgroup.WithContext(ctx)
	for i, q := range quizzes {
		i, q := i, q
		ewg.Go(func() error {
			d, err := s.Estimate(ctx, q.URL)
			if err != nil {
				return fmt.Errorf("estimate %q: %w", q.Title, err)
			}
			difficulties[i] = d
			return nil
		})
	}

	if err := ewg.Wait(); err != nil {
		return nil, err
	}

	res := make([]store.Quiz, len(quizzes))
	for i, q := range quizzes {
		d := difficulties[i]
		q.Difficulty = &d
		res[i] = q
	}

	return res, nil
}

// Estimate fetches the quiz page and asks the completer about its difficulty.
func (s *Service) Estimate(ctx context.Context, u string) (float64, error) {
	if u == "" {
		return 0, fmt.Errorf("no quiz page url")
	}

	if d, ok := s.cache.Get(u); ok {
		return d, nil
	}

	s.log.DebugCtx(ctx, "estimating difficulty", slog.String("url", u))

	announce, err := s.announce(ctx, u)
	if err != nil {
		return 0, err
	}

	buf := &strings.Builder{}
	if err = promptTmpl.Execute(buf, struct{ Announce string }{Announce: announce}); err != nil {
		return 0, fmt.Errorf("build prompt: %w", err)
	}

	answer, err := s.completer.Complete(ctx, buf.String())
	if err != nil {
		return 0, fmt.Errorf("complete: %w", err)
	}

	d, err := ParseDifficulty(answer)
	if err != nil {
		return 0, err
	}

	s.cache.Set(u, d, 0)
	return d, nil
}

func (s *Service) announce(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return "", fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	text, err := s.extractor.Extract(resp.Body)
	if err != nil {
		return "", fmt.Errorf("extract announce: %w", err)
	}

	return text, nil
}

// ParseDifficulty parses the model's answer, comma is accepted
// as a decimal separator.
func ParseDifficulty(answer string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(answer), ",", ".")
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse difficulty from %q: %w", answer, err)
	}
	return d, nil
}
