package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/marwan404/StudyHub/internal/db"
	"github.com/marwan404/StudyHub/internal/model"
	"github.com/marwan404/StudyHub/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if _, err := db.RunMigrations(database, migrationsDir); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestLoadTimerDefaultsWhenMissing(t *testing.T) {
	database := openTestDB(t)
	repo := repository.NewPomodoroRepository(database, repository.NewKVRepository(database))

	state, err := repo.LoadTimer(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != model.DefaultTimerState() {
		t.Fatalf("expected defaults, got %+v", state)
	}
}

func TestLoadTimerMergesOverDefaults(t *testing.T) {
	database := openTestDB(t)
	kv := repository.NewKVRepository(database)
	repo := repository.NewPomodoroRepository(database, kv)
	ctx := context.Background()

	// A record saved before the study-time fields existed.
	if err := kv.Put(ctx, repository.KeyPomodoro, `{"workSeconds":3000,"phase":"work","remainingSeconds":1200,"sessionsCompleted":2}`); err != nil {
		t.Fatalf("put: %v", err)
	}

	state, err := repo.LoadTimer(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.WorkSeconds != 3000 || state.RemainingSeconds != 1200 || state.SessionsCompleted != 2 {
		t.Fatalf("saved fields lost: %+v", state)
	}
	if state.ShortBreakSeconds != model.DefaultShortBreakSeconds || state.LongBreakSeconds != model.DefaultLongBreakSeconds {
		t.Fatalf("missing fields did not fall back to defaults: %+v", state)
	}
}

func TestLoadTimerCorruptFallsBack(t *testing.T) {
	database := openTestDB(t)
	kv := repository.NewKVRepository(database)
	repo := repository.NewPomodoroRepository(database, kv)
	ctx := context.Background()

	if err := kv.Put(ctx, repository.KeyPomodoro, `{not json`); err != nil {
		t.Fatalf("put: %v", err)
	}

	state, err := repo.LoadTimer(ctx)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if state != model.DefaultTimerState() {
		t.Fatalf("expected defaults on corrupt record, got %+v", state)
	}
}

func TestSaveTimerRoundTrip(t *testing.T) {
	database := openTestDB(t)
	repo := repository.NewPomodoroRepository(database, repository.NewKVRepository(database))
	ctx := context.Background()

	state := model.DefaultTimerState()
	state.Phase = model.PhaseLongBreak
	state.RemainingSeconds = 42
	state.IsRunning = true
	state.LastTickEpochMillis = 1760860800000
	state.LastStudyDay = "2026-10-19"

	for i := 0; i < 2; i++ {
		if err := repo.SaveTimer(ctx, state); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	loaded, err := repo.LoadTimer(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != state {
		t.Fatalf("loaded %+v want %+v", loaded, state)
	}
}

func TestPhaseHistoryNewestFirst(t *testing.T) {
	database := openTestDB(t)
	repo := repository.NewPomodoroRepository(database, repository.NewKVRepository(database))
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	records := []model.PhaseRecord{
		{ID: "a", Phase: model.PhaseWork, DurationSeconds: 1500, SessionNumber: 1, CompletedAt: base},
		{ID: "b", Phase: model.PhaseShortBreak, DurationSeconds: 300, SessionNumber: 1, CompletedAt: base.Add(5 * time.Minute)},
		{ID: "c", Phase: model.PhaseWork, DurationSeconds: 1500, SessionNumber: 2, CompletedAt: base.Add(30 * time.Minute)},
	}
	for _, record := range records {
		if err := repo.RecordPhase(ctx, record); err != nil {
			t.Fatalf("record phase: %v", err)
		}
	}

	listed, err := repo.ListPhases(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != "c" || listed[1].ID != "b" {
		t.Fatalf("unexpected history %+v", listed)
	}
	if !listed[0].CompletedAt.Equal(records[2].CompletedAt) {
		t.Fatalf("completedAt = %v want %v", listed[0].CompletedAt, records[2].CompletedAt)
	}
}

func TestStreakRepository(t *testing.T) {
	database := openTestDB(t)
	kv := repository.NewKVRepository(database)
	repo := repository.NewStreakRepository(kv)
	ctx := context.Background()

	empty, err := repo.Load(ctx)
	if err != nil || empty != (model.StreakRecord{}) {
		t.Fatalf("expected empty record, got %+v (%v)", empty, err)
	}

	record := model.StreakRecord{Current: 3, Longest: 8, LastDate: "2026-10-19"}
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := repo.Load(ctx)
	if err != nil || loaded != record {
		t.Fatalf("loaded %+v (%v) want %+v", loaded, err, record)
	}

	if err := kv.Put(ctx, repository.KeyStreaks, `[]`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := repo.Load(ctx); err == nil {
		t.Fatal("expected error for corrupt streak record")
	}
}

func TestResourceLifecycle(t *testing.T) {
	database := openTestDB(t)
	repo := repository.NewResourceRepository(database)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	ids := []string{"r1", "r2", "r3"}
	for i, id := range ids {
		resource := &model.Resource{
			ID:        id,
			Name:      "Resource " + id,
			URL:       "https://example.com/" + id,
			Tags:      []string{"tag" + id},
			DateAdded: now.Add(time.Duration(i) * time.Minute),
			UpdatedAt: now,
		}
		if err := repo.Create(ctx, resource); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
		if resource.Position != i {
			t.Fatalf("position of %s = %d want %d", id, resource.Position, i)
		}
	}

	if err := repo.Reorder(ctx, []string{"r3", "r1", "r2"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listed[0].ID != "r3" || listed[1].ID != "r1" || listed[2].ID != "r2" {
		t.Fatalf("unexpected order %s %s %s", listed[0].ID, listed[1].ID, listed[2].ID)
	}
	if len(listed[0].Tags) != 1 || listed[0].Tags[0] != "tagr3" {
		t.Fatalf("tags not round-tripped: %v", listed[0].Tags)
	}

	if err := repo.IncrementVisits(ctx, "r1"); err != nil {
		t.Fatalf("visit: %v", err)
	}
	if err := repo.IncrementVisits(ctx, "missing"); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing visit, got %v", err)
	}

	if err := repo.Delete(ctx, "r2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "r2"); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	count, visits, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if count != 2 || visits != 1 {
		t.Fatalf("totals = %d/%d want 2/1", count, visits)
	}
}

func TestReorderUnknownIDRollsBack(t *testing.T) {
	database := openTestDB(t)
	repo := repository.NewResourceRepository(database)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, id := range []string{"a", "b"} {
		if err := repo.Create(ctx, &model.Resource{ID: id, Name: id, URL: "https://" + id, DateAdded: now, UpdatedAt: now}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := repo.Reorder(ctx, []string{"b", "ghost"}); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listed[0].ID != "a" {
		t.Fatalf("reorder was not rolled back, first is %s", listed[0].ID)
	}
}
