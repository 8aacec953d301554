package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"

	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	appservice "taskboard/internal/app/service"
	"taskboard/internal/config"
	"taskboard/internal/suggest"
	"taskboard/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.DbDriver), zap.Error(err))
	}

	if err := dbadapter.Migrate(context.Background(), db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	suggester, err := suggest.FromConfig(cfg, logger)
	if err != nil {
		logger.Fatal("failed to configure priority suggester", zap.Error(err))
	}

	taskService := appservice.NewTaskService(dbadapter.NewTaskRepository(db), suggester)
	router, err := httpadapter.NewRouter(
		httpadapter.RouterConfig{
			Logger:             logger,
			TrustedProxies:     cfg.TrustedProxies,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		handlers.NewHealthHandler(db),
		handlers.NewTaskHandler(taskService),
	)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	server := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("suggest_backend", cfg.SuggestBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// Operations run concurrently, so the database is closed only once requests have drained.
			"http-server": func(ctx context.Context) error {
				if err := server.Shutdown(ctx); err != nil {
					return err
				}
				return db.Close()
			},
		},
	)

	exitCode := <-wait
	logger.Info("server stopped", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}
