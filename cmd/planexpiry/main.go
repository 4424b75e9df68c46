package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thebigday/planexpiry/modules/expiry"
	"github.com/thebigday/planexpiry/pkg/audit"
	"github.com/thebigday/planexpiry/pkg/config"
	"github.com/thebigday/planexpiry/pkg/email"
	"github.com/thebigday/planexpiry/pkg/identity"
	"github.com/thebigday/planexpiry/pkg/logger"
	"github.com/thebigday/planexpiry/pkg/mongo"
	"github.com/thebigday/planexpiry/pkg/template"
)

type appConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	AppEnv          string        `env:"APP_ENV" envDefault:"development"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func main() {
	var (
		appCfg    appConfig
		mongoCfg  mongo.Config
		emailCfg  email.Config
		dirCfg    identity.Config
		expiryCfg expiry.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&dirCfg)
	config.MustLoad(&expiryCfg)

	log := logger.New(logger.WithService("planexpiry", appCfg.AppEnv))
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongo.New(ctx, mongoCfg)
	if err != nil {
		log.Error("mongo connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect failed", logger.Error(err))
		}
	}()

	primary := client.Database(expiryCfg.PrimaryDatabase)
	system := client.Database(expiryCfg.SystemDatabase)

	store := expiry.NewMongoAccountStore(primary.Collection(expiryCfg.UsersCollection))
	resolver := template.NewMongoStore(system.Collection(expiryCfg.TemplatesCollection))

	var recorder audit.Recorder = audit.Noop{}
	if expiryCfg.LogsCollection != "" {
		recorder = audit.NewMongoRecorder(system.Collection(expiryCfg.LogsCollection))
	}

	var sender email.EmailSender
	if emailCfg.DevOutputDir != "" {
		sender = email.NewDevSender(emailCfg.DevOutputDir)
		log.Info("using dev email sender", slog.String("dir", emailCfg.DevOutputDir))
	} else {
		sender, err = email.NewPostmarkClient(emailCfg)
		if err != nil {
			log.Error("postmark client setup failed", logger.Error(err))
			os.Exit(1)
		}
	}

	directory, err := identity.NewClient(dirCfg)
	if err != nil {
		log.Error("directory client setup failed", logger.Error(err))
		os.Exit(1)
	}

	svc := expiry.NewService(store, directory, sender, resolver, recorder, expiryCfg,
		expiry.WithLogger(log))

	r := chi.NewRouter()
	r.Mount("/v1/jobs/plan-expiry", expiry.NewRouter(svc, mongo.Healthcheck(client)))

	srv := &http.Server{
		Addr:        ":" + appCfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// The run endpoint blocks for the whole batch pass; give writes
		// enough room for a full scan against a slow store.
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("server started", slog.String("addr", srv.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", logger.Error(err))
		}
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", logger.Error(err))
			os.Exit(1)
		}
	}

	log.Info("server stopped")
}
