package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/dpclog/internal/store"
	"github.com/sadopc/dpclog/internal/tui"
	"github.com/sadopc/dpclog/internal/visit"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	user, ok := s.CurrentUser()
	if !ok {
		user = visit.User{Role: visit.RoleDPC, Name: "Salamone, D", Region: "SDC 1"}
	}

	app := tui.NewApp(s, user)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
