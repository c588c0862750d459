package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/MrJamesThe3rd/mockuments/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/mockuments/internal/app"
	"github.com/MrJamesThe3rd/mockuments/internal/config"
	"github.com/MrJamesThe3rd/mockuments/internal/logger"
)

// The terminal belongs to bubbletea, so logs go to a file.
const defaultLogFile = "mockuments-tui.log"

type model struct {
	app *app.App

	currentView View

	previewView view.PreviewModel
	exportView  view.ExportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewPreview View = 1
	ViewExport  View = 2
)

func initialModel(a *app.App) model {
	return model{
		app:         a,
		currentView: ViewMenu,
		previewView: view.NewPreviewModel(a.Preview, a.Catalog, a.Regions),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPreview
				m.previewView = view.NewPreviewModel(m.app.Preview, m.app.Catalog, m.app.Regions)

				return m, m.previewView.Init()
			case "2":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.app.Export, m.app.Preview, m.app.Sink, m.app.Config.Output.Dir)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPreview:
		var newModel tea.Model
		newModel, cmd = m.previewView.Update(msg)
		m.previewView = newModel.(view.PreviewModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		snap := m.app.Preview.Snapshot()

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s TUI\n\n", m.app.Config.App.Name) +
				fmt.Sprintf("Current: %s / %s (%s)\n\n", snap.Inputs.Category, snap.Inputs.DocType, snap.Inputs.Region) +
				"1. Preview Documents\n" +
				"2. Export Documents\n\n" +
				"q. Quit",
		)
	case ViewPreview:
		return m.previewView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Log.Output == "" || cfg.Log.Output == "stderr" || cfg.Log.Output == "stdout" {
		cfg.Log.Output = defaultLogFile
	}

	l, closer, err := logger.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	a, err := app.New(context.Background(), cfg, l, app.WithWait())
	if err != nil {
		return fmt.Errorf("building app: %w", err)
	}

	logger.WithComponent("tui").Info().Str("log_file", cfg.Log.Output).Msg("starting")

	p := tea.NewProgram(initialModel(a))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("tui exited")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
