package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marwan404/StudyHub/internal/app"
	"github.com/marwan404/StudyHub/internal/config"
	"github.com/marwan404/StudyHub/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	core, err := app.Open(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := core.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	// The alternate screen owns stdout, so log lines go next to the database.
	logFile, err := tea.LogToFile(filepath.Join(filepath.Dir(cfg.DBPath), "studyhub-tui.log"), "tui")
	if err != nil {
		return err
	}
	defer logFile.Close()

	events, unsubscribe := core.Events.Subscribe(64)
	defer unsubscribe()

	p := tea.NewProgram(tui.New(core.Controller, events, core.Pomodoro, core.Streak), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
