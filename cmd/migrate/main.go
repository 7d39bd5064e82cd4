package main

import (
	"flag"
	"log"

	"github.com/marwan404/StudyHub/internal/config"
	"github.com/marwan404/StudyHub/internal/db"
)

func main() {
	cfg := config.Load()
	dbPath := flag.String("db", cfg.DBPath, "path to the SQLite database")
	migrationsDir := flag.String("migrations", cfg.MigrationsDir, "directory holding *.sql migrations")
	status := flag.Bool("status", false, "list applied migrations and exit")
	flag.Parse()

	database, err := db.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if *status {
		migrations, err := db.AppliedMigrations(database)
		if err != nil {
			log.Fatalf("list migrations: %v", err)
		}
		for _, migration := range migrations {
			log.Printf("%s applied %s", migration.Name, migration.AppliedAt.Local().Format("2006-01-02 15:04"))
		}
		log.Printf("%d migration(s) applied to %s", len(migrations), *dbPath)
		return
	}

	applied, err := db.RunMigrations(database, *migrationsDir)
	if err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	if len(applied) == 0 {
		log.Printf("%s is up to date", *dbPath)
		return
	}
	log.Printf("applied %d migration(s) to %s", len(applied), *dbPath)
}
