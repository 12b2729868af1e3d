package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aussiebroadwan/cardquest/internal/quest/bot"
	httpapi "github.com/aussiebroadwan/cardquest/internal/quest/http"
	"github.com/aussiebroadwan/cardquest/internal/quest/questionbank"
	"github.com/aussiebroadwan/cardquest/internal/quest/service"
	"github.com/aussiebroadwan/cardquest/internal/quest/store"
	"github.com/aussiebroadwan/cardquest/internal/quest/store/drivers/sqlite"
	"github.com/aussiebroadwan/cardquest/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires the store, services, HTTP API and Telegram bot together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	userService         *service.UserService
	registrationService *service.RegistrationService
	quizService         *service.QuizService
	dialogueService     *service.DialogueService
	housekeepingService *service.HousekeepingService

	bot *bot.Bot

	server *http.Server
	router *httpapi.Router
}

// New creates an Application. The Telegram bot is only connected when
// cfg.BotToken is set.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	db, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	app.db = db
	app.logger.Info("database migrations applied successfully")

	app.initServices()

	if cfg.BotToken != "" {
		if err := app.initBot(); err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		app.logger.Warn("CARDQUEST_BOT_TOKEN not set, telegram bot disabled")
	}

	app.initHTTP()
	return app, nil
}

func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "cardquest",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// OpenStore opens the SQLite database and applies migrations.
func OpenStore(cfg Config) (store.Store, error) {
	db, err := sqlite.NewStore(sqlite.DSN(cfg.DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// NewQuizService builds a quiz service over the configured question
// directory with a randomly seeded source.
func NewQuizService(cfg Config) *service.QuizService {
	return service.NewQuizService(
		questionbank.New(cfg.QuestionsDir),
		rand.NewPCG(rand.Uint64(), rand.Uint64()),
	)
}

// Run serves until ctx is cancelled, SIGINT/SIGTERM arrives or a component
// fails, then shuts everything down.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		_ = app.db.Close()
		return fmt.Errorf("listen: %w", err)
	}

	app.housekeepingService.Start()
	app.logger.Info("cardquest starting",
		slog.String("addr", ln.Addr().String()),
		slog.String("version", BuildVersion),
		slog.Bool("bot", app.bot != nil),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if app.bot != nil {
		g.Go(func() error {
			if err := app.bot.Run(gctx); err != nil {
				return fmt.Errorf("bot failed: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested")
		return app.shutdownServer()
	})

	runErr := g.Wait()
	return errors.Join(runErr, app.shutdown())
}

func (app *Application) shutdownServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
		return err
	}
	return nil
}

// shutdown stops background work and closes the database once the server and
// bot have stopped.
func (app *Application) shutdown() error {
	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		return err
	}

	app.logger.Info("cardquest stopped")
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{Store: app.db}
	app.registrationService = &service.RegistrationService{Store: app.db}
	app.quizService = NewQuizService(app.cfg)
	app.dialogueService = service.NewDialogueService(app.registrationService)

	app.housekeepingService = service.NewHousekeepingService(
		app.registrationService,
		app.quizService,
		app.dialogueService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.RegistrationTTL = app.cfg.RegistrationTTL
	app.housekeepingService.QuizInstanceTTL = app.cfg.QuizInstanceTTL
	app.housekeepingService.DialogueIdleTTL = app.cfg.DialogueIdleTTL
}

func (app *Application) initBot() error {
	api, err := bot.Connect(app.cfg.BotToken, app.cfg.BotAPIEndpoint)
	if err != nil {
		return fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	app.logger.Info("telegram bot connected", slog.String("username", api.Self.UserName))
	app.bot = bot.New(api, app.dialogueService, app.logger.With(slog.String("component", "bot")))
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.BotURL = app.cfg.BotURL
	router.UserService = app.userService
	router.RegistrationService = app.registrationService
	router.QuizService = app.quizService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(app.cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
