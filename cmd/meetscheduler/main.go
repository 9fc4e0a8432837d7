package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ujjwalpandey922/meeting-schedular/internal/auth"
	"github.com/ujjwalpandey922/meeting-schedular/internal/calendar"
	"github.com/ujjwalpandey922/meeting-schedular/internal/rest"
	"github.com/ujjwalpandey922/meeting-schedular/internal/telegram"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/logger"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/memstore"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/notifier"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/service"
	"github.com/ujjwalpandey922/meeting-schedular/pkg/worker"
)

const version = "0.0.1"

var (
	address      = lookupEnv("ADDRESS", ":8080")
	timezone     = lookupEnv("TZ", "UTC")
	jwtSecret    = lookupEnv("JWT_SECRET", "dev-secret")
	clientID     = os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	redirectURL  = lookupEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/auth/google/callback")
	tgToken      = os.Getenv("TG_TOKEN")
)

func main() {
	log := logger.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Panic(err)
	}

	stores := memstore.NewSessionStores()
	gateway := calendar.New(log, loc)
	authService := auth.New(log, auth.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		JWTSecret:    jwtSecret,
	})

	var notify service.Notifier = notifier.New(log)
	var tg *telegram.Notifier
	if tgToken != "" {
		bot, err := telegram.NewBot(tgToken)
		if err != nil {
			log.Panic(err)
		}
		tg = telegram.NewNotifier(log, bot)
		notify = tg
	}

	app := service.NewScheduleService(log, stores, gateway, notify, loc)
	server := rest.NewServer(log, app, authService, address, version)
	reminder := worker.New(log, stores, notify)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
		<-sigCh
		log.Info("Received signal, shutting down...")
		cancel()
	}()

	var wg sync.WaitGroup
	if tg != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tg.Run(ctx)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		reminder.Run(ctx)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Run(ctx); err != nil {
			log.Panic(err)
		}
	}()
	wg.Wait()
	log.Info("Server stopped")
}

func lookupEnv(key, defaultValue string) string {
	result := os.Getenv(key)
	if result == "" {
		return defaultValue
	}
	return result
}
