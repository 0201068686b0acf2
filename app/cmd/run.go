// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Semior001/quizpoll/app/announce"
	"github.com/Semior001/quizpoll/app/bot"
	"github.com/Semior001/quizpoll/app/difficulty"
	"github.com/Semior001/quizpoll/app/store"
	"github.com/Semior001/quizpoll/pkg/botx"
	"github.com/Semior001/quizpoll/pkg/botx/botapi"
	"github.com/Semior001/quizpoll/pkg/logx"
	"github.com/go-pkgz/requester"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Run is a command to run the bot.
type Run struct {
	Bot struct {
		Token    string        `long:"token" env:"TOKEN" required:"true" description:"telegram token"`
		Timeout  time.Duration `long:"timeout" env:"TIMEOUT" default:"6m" description:"timeout for handling a command"`
		Workers  int           `long:"workers" env:"WORKERS" default:"1" description:"amount of commands handled at once"`
		AdminIDs []string      `long:"admin-ids" env:"ADMIN_IDS" env-delim:"," description:"admin IDs"`
	} `group:"bot" namespace:"bot" env-namespace:"BOT"`

	Announce struct {
		URL     string        `long:"url" env:"URL" default:"https://chgk-spb.livejournal.com/" description:"page with announcements"`
		Year    int           `long:"year" env:"YEAR" default:"2024" description:"year of announced dates"`
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"timeout for page requests"`
	} `group:"announce" namespace:"announce" env-namespace:"ANNOUNCE"`

	Estimator struct {
		Backend   string        `long:"backend" env:"BACKEND" choice:"ollama" choice:"openai" default:"ollama" description:"language model backend"`
		Extractor string        `long:"extractor" env:"EXTRACTOR" choice:"nested" choice:"readability" default:"nested" description:"quiz page text extractor"`
		CacheSize int           `long:"cache-size" env:"CACHE_SIZE" default:"1000" description:"amount of cached estimations"`
		Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"timeout for quiz page requests"`

		Ollama struct {
			URL     string        `long:"url" env:"URL" default:"http://localhost:11434" description:"ollama server address"`
			Model   string        `long:"model" env:"MODEL" default:"llama3.1" description:"ollama model"`
			Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"5m" description:"timeout for ollama calls"`
		} `group:"ollama" namespace:"ollama" env-namespace:"OLLAMA"`

		OpenAI struct {
			Token     string        `long:"token" env:"TOKEN" description:"OpenAI token"`
			BaseURL   string        `long:"base-url" env:"BASE_URL" description:"base url of an OpenAI-compatible API"`
			Model     string        `long:"model" env:"MODEL" default:"gpt-3.5-turbo" description:"OpenAI model"`
			MaxTokens int           `long:"max-tokens" env:"MAX_TOKENS" default:"16" description:"max tokens for OpenAI"`
			Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"5m" description:"timeout for OpenAI calls"`
		} `group:"openai" namespace:"openai" env-namespace:"OPENAI"`
	} `group:"estimator" namespace:"estimator" env-namespace:"ESTIMATOR"`

	Store struct {
		Type string `long:"type" env:"TYPE" choice:"json" choice:"bolt" default:"json" description:"type of storage"`
		Path string `long:"path" env:"PATH" default:"last.txt" description:"path to the storage file"`
	} `group:"store" namespace:"store" env-namespace:"STORE"`
}

// Execute runs the command.
func (r Run) Execute(_ []string) error {
	lg := slog.Default()

	s, closeStore, err := r.makeStore(lg.With(slog.String("prefix", "store")))
	if err != nil {
		return fmt.Errorf("make store: %w", err)
	}

	defer func() {
		if err := closeStore(); err != nil {
			lg.Error("close store", slog.Any("err", err))
		}
	}()

	ann := announce.NewService(
		lg.With(slog.String("prefix", "announce")),
		r.httpClient(lg, r.Announce.Timeout),
		r.Announce.URL,
		announce.Parser{Year: r.Announce.Year},
	)

	completer, err := r.makeCompleter(lg)
	if err != nil {
		return fmt.Errorf("make completer: %w", err)
	}

	est := difficulty.NewService(
		lg.With(slog.String("prefix", "difficulty")),
		r.httpClient(lg, r.Estimator.Timeout),
		r.makeExtractor(),
		completer,
		r.Estimator.CacheSize,
	)

	api, err := botapi.NewTelegram(
		lg.With(slog.String("prefix", "telegram")),
		r.Bot.Token,
		100,
	)
	if err != nil {
		return fmt.Errorf("make telegram controller: %w", err)
	}

	if err = api.SetCommands(context.Background(), bot.Commands); err != nil {
		return fmt.Errorf("set bot commands: %w", err)
	}

	ctrl := &bot.Ctrl{
		Logger:         lg.With(slog.String("prefix", "bot")),
		Store:          s,
		Announces:      ann,
		Estimator:      est,
		API:            api,
		AdminIDs:       r.Bot.AdminIDs,
		HandlerTimeout: r.Bot.Timeout,
	}

	b := botx.NewBot(
		ctrl.Routes().Handle,
		api,
		botx.WithLogger(lg.With(slog.String("prefix", "botx"))),
		botx.WithWorkers(r.Bot.Workers),
	)

	if err := ctrl.NotifyAdmins(context.Background(), "bot started"); err != nil {
		return fmt.Errorf("notify admins about started bot: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case sig := <-sig:
			slog.Warn("caught signal, stopping", slog.String("signal", sig.String()))
			stop()
			return ctx.Err()
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	ewg.Go(func() error {
		lg.Info("starting bot")
		b.Run(ctx)
		lg.Warn("bot stopped")
		return nil
	})

	// we should run api out of errgroup, because it lives longer than the context,
	// as we want to notify admins about bot stopping
	apiStopped := make(chan struct{})
	go func() {
		lg.Info("starting telegram api")
		api.Run()
		lg.Warn("telegram api stopped listening for updates")
		apiStopped <- struct{}{}
	}()

	if err := ewg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		msg := fmt.Sprintf("bot stopped with error: %v", err)

		if sendErr := ctrl.NotifyAdmins(context.Background(), msg); sendErr != nil {
			return fmt.Errorf("notify admins about stopped bot (for reason: %v): %w", err, sendErr)
		}

		return err
	}

	if err := ctrl.NotifyAdmins(context.Background(), "bot stopped"); err != nil {
		return fmt.Errorf("notify admins about stopped bot: %w", err)
	}

	lg.Info("stopping telegram api")
	api.Stop()
	<-apiStopped
	lg.Info("telegram api stopped")

	return nil
}

func (r Run) makeStore(lg *slog.Logger) (store.Interface, func() error, error) {
	switch r.Store.Type {
	case "json":
		return store.NewJSON(lg, r.Store.Path), func() error { return nil }, nil
	case "bolt":
		b, err := store.NewBolt(lg, r.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("make bolt store: %w", err)
		}
		return b, b.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store type %q", r.Store.Type)
	}
}

func (r Run) makeExtractor() difficulty.Extractor {
	if r.Estimator.Extractor == "readability" {
		return difficulty.Readability{}
	}
	return difficulty.NestedArticle{}
}

func (r Run) makeCompleter(lg *slog.Logger) (difficulty.Completer, error) {
	if r.Estimator.Backend == "openai" {
		return difficulty.NewChatGPT(
			lg.With(slog.String("prefix", "chatgpt")),
			r.httpClient(lg, r.Estimator.OpenAI.Timeout),
			difficulty.ChatGPTParams{
				Token:     r.Estimator.OpenAI.Token,
				BaseURL:   r.Estimator.OpenAI.BaseURL,
				Model:     r.Estimator.OpenAI.Model,
				MaxTokens: r.Estimator.OpenAI.MaxTokens,
			},
		), nil
	}

	o, err := difficulty.NewOllama(
		lg.With(slog.String("prefix", "ollama")),
		r.httpClient(lg, r.Estimator.Ollama.Timeout),
		r.Estimator.Ollama.URL,
		r.Estimator.Ollama.Model,
	)
	if err != nil {
		return nil, err
	}

	return o, nil
}

func (r Run) httpClient(lg *slog.Logger, timeout time.Duration) *http.Client {
	return requester.New(
		http.Client{Timeout: timeout},
		logx.LoggingRoundTripper(lg.With(slog.String("prefix", "http")), logx.RoundTripperOpts{
			Level:         slog.LevelDebug,
			SecretHeaders: []string{"Authorization"},
		}),
	).Client()
}
