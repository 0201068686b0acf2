package announce

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Semior001/quizpoll/app/store"
	"golang.org/x/exp/slog"
)

// DefaultURL is the page with tournament announcements.
const DefaultURL = "https://chgk-spb.livejournal.com/"

// Service fetches announcements.
type Service struct {
	log    *slog.Logger
	cl     *http.Client
	url    string
	parser Parser
}

// NewService creates new service.
func NewService(lg *slog.Logger, cl *http.Client, url string, parser Parser) *Service {
	return &Service{
		log:    lg,
		cl:     cl,
		url:    url,
		parser: parser,
	}
}

// Fetch downloads the announcement page and parses quizzes from it.
func (s *Service) Fetch(ctx context.Context) ([]store.Quiz, error) {
	s.log.DebugCtx(ctx, "fetching announcements", slog.String("url", s.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	quizzes, err := s.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse announcements: %w", err)
	}

	s.log.InfoCtx(ctx, "fetched announcements", slog.Int("quizzes", len(quizzes)))

	return quizzes, nil
}
