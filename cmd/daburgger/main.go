package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/daburgger/daburgger/internal/apiclient"
	"github.com/daburgger/daburgger/internal/audit"
	appcfg "github.com/daburgger/daburgger/internal/config"
	"github.com/daburgger/daburgger/internal/hostedui"
	"github.com/daburgger/daburgger/internal/httpserver"
	"github.com/daburgger/daburgger/internal/logging"
	loggingmw "github.com/daburgger/daburgger/internal/middleware/logging"
	"github.com/daburgger/daburgger/internal/service"
	"github.com/daburgger/daburgger/internal/session"
	"github.com/daburgger/daburgger/internal/source"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := appcfg.Load()
	appcfg.MustNonEmpty(cfg.APIBaseURL, "API_BASE_URL")
	appcfg.MustNonEmpty(cfg.AuthDomain, "AUTH_DOMAIN")
	appcfg.MustNonEmpty(cfg.AuthClientID, "AUTH_CLIENT_ID")

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	sessions, err := session.OpenStore(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	client := apiclient.New(cfg.APIBaseURL, sessions)

	var src source.Source = &source.APISource{Client: client}
	var fileSrc *source.FileSource
	if cfg.DataFile != "" {
		fileSrc, err = source.NewFileSource(cfg.DataFile, logger)
		if err != nil {
			log.Fatalf("data file: %v", err)
		}
		src = fileSrc
		logger.Info("serving list from data file", "path", cfg.DataFile)
	}

	producer := audit.NewProducer(cfg.KafkaBrokers, cfg.AuditTopic)

	svc := &service.BurgerService{
		Source:   src,
		Client:   client,
		Sessions: sessions,
		Audit:    producer,
	}

	hosted := hostedui.Config{
		Domain:       cfg.AuthDomain,
		ClientID:     cfg.AuthClientID,
		RedirectBase: cfg.RedirectBase,
		Scopes:       cfg.AuthScopes,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	renderer, err := httpserver.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	e.Renderer = renderer

	httpserver.Register(e, &httpserver.Deps{
		Burgers:  svc,
		Sessions: sessions,
		HostedUI: hosted,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("daburgger listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if fileSrc != nil {
		_ = fileSrc.Close()
	}
	_ = producer.Close()
	_ = sessions.Close()

	log.Println("daburgger stopped")
}
