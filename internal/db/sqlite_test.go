package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMigrations(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	migrationsDir := filepath.Join(dir, "migrations")
	writeMigrations(t, migrationsDir, map[string]string{
		"0001_first.sql":  `CREATE TABLE first (id INTEGER PRIMARY KEY);`,
		"0002_second.sql": `CREATE TABLE second (id INTEGER PRIMARY KEY);`,
		"README.md":       `not a migration`,
	})

	database, err := OpenSQLite(filepath.Join(dir, "nested", "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer database.Close()

	applied, err := RunMigrations(database, migrationsDir)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(applied) != 2 || applied[0] != "0001_first.sql" || applied[1] != "0002_second.sql" {
		t.Fatalf("unexpected applied list %v", applied)
	}

	applied, err = RunMigrations(database, migrationsDir)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("expected nothing applied on rerun, got %v", applied)
	}

	recorded, err := AppliedMigrations(database)
	if err != nil {
		t.Fatalf("applied migrations: %v", err)
	}
	if len(recorded) != 2 || recorded[0].Name != "0001_first.sql" || recorded[0].AppliedAt.IsZero() {
		t.Fatalf("unexpected recorded migrations %+v", recorded)
	}
}

func TestRunMigrationsRollsBackFailedFile(t *testing.T) {
	dir := t.TempDir()
	migrationsDir := filepath.Join(dir, "migrations")
	writeMigrations(t, migrationsDir, map[string]string{
		"0001_ok.sql":     `CREATE TABLE ok (id INTEGER PRIMARY KEY);`,
		"0002_broken.sql": `CREATE TABLE broken (id INTEGER PRIMARY KEY); INSERT INTO missing VALUES (1);`,
	})

	database, err := OpenSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer database.Close()

	applied, err := RunMigrations(database, migrationsDir)
	if err == nil || !strings.Contains(err.Error(), "0002_broken.sql") {
		t.Fatalf("expected error naming the broken migration, got %v", err)
	}
	if len(applied) != 1 || applied[0] != "0001_ok.sql" {
		t.Fatalf("unexpected applied list %v", applied)
	}

	recorded, err := AppliedMigrations(database)
	if err != nil {
		t.Fatalf("applied migrations: %v", err)
	}
	if len(recorded) != 1 {
		t.Fatalf("broken migration was recorded: %+v", recorded)
	}
}

func TestRunMigrationsRequiresSQLFiles(t *testing.T) {
	dir := t.TempDir()
	database, err := OpenSQLite(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer database.Close()

	if _, err := RunMigrations(database, dir); err == nil {
		t.Fatal("expected error for a directory without migrations")
	}
}
