// Package app assembles the storage and the timer controller shared by the
// HTTP server and the terminal UI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/marwan404/StudyHub/internal/config"
	"github.com/marwan404/StudyHub/internal/db"
	"github.com/marwan404/StudyHub/internal/model"
	"github.com/marwan404/StudyHub/internal/repository"
	"github.com/marwan404/StudyHub/internal/service"
	"github.com/marwan404/StudyHub/internal/timer"
)

type Core struct {
	DB         *sql.DB
	KV         *repository.KVRepository
	Pomodoro   *repository.PomodoroRepository
	Streaks    *repository.StreakRepository
	Resources  *repository.ResourceRepository
	Owners     *repository.OwnerRepository
	Events     *timer.Broadcaster
	Controller *timer.Controller
	Streak     model.StreakRecord
}

// Open opens the database, applies migrations, records today's visit for the
// streak and resumes the persisted timer. bell receives the terminal bell when
// the config enables it and may be nil.
func Open(cfg config.Config, bell io.Writer) (*Core, error) {
	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	kv := repository.NewKVRepository(database)
	core := &Core{
		DB:        database,
		KV:        kv,
		Pomodoro:  repository.NewPomodoroRepository(database, kv),
		Streaks:   repository.NewStreakRepository(kv),
		Resources: repository.NewResourceRepository(database),
		Owners:    repository.NewOwnerRepository(kv),
		Events:    timer.NewBroadcaster(),
	}

	ctx := context.Background()
	core.Streak = service.NewStreakService(core.Streaks, nil).CheckIn(ctx)

	state, err := core.Pomodoro.LoadTimer(ctx)
	if err != nil {
		log.Printf("pomodoro: %v; starting from defaults", err)
	}

	notifiers := timer.Notifiers{core.Events}
	if cfg.Bell && bell != nil {
		notifiers = append(notifiers, timer.Bell{Out: bell})
	}

	core.Controller = timer.NewController(state, core.Pomodoro, core.Events, notifiers, timer.Options{
		TickInterval: cfg.TickInterval,
		NewID:        uuid.NewString,
	})
	core.Controller.Resume()

	return core, nil
}

// Close stops the countdown, leaving a running timer marked as running so the
// next launch resumes it, and closes the database.
func (c *Core) Close() error {
	c.Controller.Stop()
	return c.DB.Close()
}
