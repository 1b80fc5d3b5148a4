package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/deep-coffee/config"
	"github.com/yourusername/deep-coffee/internal/delivery/rest"
	"github.com/yourusername/deep-coffee/internal/delivery/telegram"
	"github.com/yourusername/deep-coffee/internal/delivery/tui"
	"github.com/yourusername/deep-coffee/internal/domain/repository"
	"github.com/yourusername/deep-coffee/internal/infrastructure/gemini"
	"github.com/yourusername/deep-coffee/internal/infrastructure/parser"
	"github.com/yourusername/deep-coffee/internal/infrastructure/storage"
	"github.com/yourusername/deep-coffee/internal/metrics"
	"github.com/yourusername/deep-coffee/internal/usecase"
	"github.com/yourusername/deep-coffee/internal/validation"
)

const usage = `DEEP Premium Coffee storefront

Usage:
  storefront bot     Telegram bot
  storefront http    JSON API (gin)
  storefront serve   bot + JSON API, bitta katalog bilan
  storefront tui     terminal menyu
`

const tuiLogFile = "storefront-tui.log"

type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	metrics *metrics.Recorder

	menu       usecase.MenuUseCase
	contact    usecase.ContactUseCase
	barista    usecase.BaristaUseCase
	editor     usecase.EditorUseCase
	candidates repository.CandidateParser

	closeAI func()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	mode := os.Args[1]

	switch mode {
	case "bot", "http", "serve", "tui":
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, mode); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, mode string) error {
	var out io.Writer = os.Stdout
	jsonLogs := true
	if mode == "tui" {
		// Alt screen ni buzmaslik uchun loglar faylga
		f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		out = f
		jsonLogs = false
	}

	bootstrap := config.NewLogger("info", jsonLogs, out)
	cfg, err := config.Load(bootstrap)
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.LogLevel, jsonLogs, out)

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.closeAI()

	switch mode {
	case "bot":
		return a.runBot(ctx)
	case "http":
		return a.runHTTP(ctx)
	case "serve":
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return a.runBot(gctx) })
		g.Go(func() error { return a.runHTTP(gctx) })
		return g.Wait()
	default:
		return tui.Run(ctx, tui.NewModel(ctx, a.menu, cfg.ItemHeight, a.metrics, logger))
	}
}

func newApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*app, error) {
	recorder := metrics.NewRecorder()

	// Boshlang'ich katalog: Excel berilgan bo'lsa o'sha, aks holda ichki YAML
	excel := parser.NewExcelMenuParser(cfg.MenuSeedXLSX, logger)
	var seeds repository.SeedLoader = parser.NewDefaultSeedLoader()
	if cfg.MenuSeedXLSX != "" {
		seeds = excel
	}
	seed, err := seeds.LoadSeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu seed: %w", err)
	}

	menuRepo, err := storage.NewMemoryMenuRepository(seed, func() string { return uuid.New().String() })
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	recorder.CatalogSize(len(seed))
	logger.WithField("items", len(seed)).Info("Catalog ready")

	rules := validation.NewRules()
	menu := usecase.NewMenuUseCase(menuRepo, rules, recorder, logger)

	a := &app{
		cfg:        cfg,
		log:        logger,
		metrics:    recorder,
		menu:       menu,
		contact:    usecase.NewContactUseCase(rules, cfg.ContactDelay, recorder, logger),
		editor:     usecase.NewEditorUseCase(storage.NewMemoryEditorRepository(), cfg.EditorPassword, logger),
		candidates: excel,
		closeAI:    func() {},
	}

	var ai repository.AIRepository
	if cfg.GeminiAPIKey != "" {
		ai, err = gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		if c, ok := ai.(io.Closer); ok {
			a.closeAI = func() { _ = c.Close() }
		}
		logger.Infof("Barista assistant enabled (%s)", cfg.GeminiModel)
	} else {
		logger.Warn("GEMINI_API_KEY bo'sh, barista yordamchisi o'chiq")
	}
	a.barista = usecase.NewBaristaUseCase(ai, storage.NewMemoryConversationRepository(cfg.MaxContextSize), menu, recorder, logger)

	return a, nil
}

func (a *app) runBot(ctx context.Context) error {
	if err := a.cfg.RequireBot(); err != nil {
		return err
	}

	handler, err := telegram.NewBotHandler(a.cfg.TelegramToken, telegram.Deps{
		Menu:        a.menu,
		Contact:     a.contact,
		Barista:     a.barista,
		Editor:      a.editor,
		Candidates:  a.candidates,
		Metrics:     a.metrics,
		Logger:      a.log,
		StaffChatID: a.cfg.StaffChatID,
	})
	if err != nil {
		return err
	}
	return handler.Start(ctx)
}

func (a *app) runHTTP(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	router := rest.NewRouter(rest.RouterDeps{
		Menu:           rest.NewMenuHandler(a.menu, a.cfg.ItemHeight, a.metrics, a.log),
		Contact:        rest.NewContactHandler(a.contact, nil, a.log),
		Metrics:        a.metrics,
		EditorPassword: a.cfg.EditorPassword,
		Logger:         a.log,
	})

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("Starting server on %s", a.cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return ctx.Err()
}
