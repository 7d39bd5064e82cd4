package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marwan404/StudyHub/internal/app"
	"github.com/marwan404/StudyHub/internal/config"
	"github.com/marwan404/StudyHub/internal/describe"
	"github.com/marwan404/StudyHub/internal/handler"
	"github.com/marwan404/StudyHub/internal/router"
	"github.com/marwan404/StudyHub/internal/service"
)

func main() {
	cfg := config.Load()

	core, err := app.Open(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer func() {
		if err := core.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()
	log.Printf("streak: %d day(s), longest %d", core.Streak.Current, core.Streak.Longest)

	describer, err := describe.New(context.Background(), describe.Options{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
	if err != nil {
		log.Printf("describe: %v", err)
		describer, _ = describe.New(context.Background(), describe.Options{})
	}
	if !describer.Enabled() {
		log.Println("GEMINI_API_KEY not set, descriptions use the default text")
	}

	authService := service.NewAuthService(core.Owners, cfg.JWTSecret, cfg.TokenTTL)
	pomodoroService := service.NewPomodoroService(core.Controller, core.Pomodoro, core.Events)
	streakService := service.NewStreakService(core.Streaks, nil)
	resourceService := service.NewResourceService(core.Resources, core.KV, describer)
	preferenceService := service.NewPreferenceService(core.KV)
	statsService := service.NewStatsService(core.Resources, core.Streaks, pomodoroService)

	if err := resourceService.SeedDefaults(context.Background()); err != nil {
		log.Printf("seed resources: %v", err)
	}

	engine := router.New(authService, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Pomodoro:   handler.NewPomodoroHandler(pomodoroService),
		Resource:   handler.NewResourceHandler(resourceService),
		Preference: handler.NewPreferenceHandler(preferenceService),
		Stats:      handler.NewStatsHandler(statsService, streakService),
	}, cfg.CORSOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		exit := make(chan os.Signal, 1)
		signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
		<-exit
		log.Println("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("studyhub listening on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("run server: %v", err)
	}
}
