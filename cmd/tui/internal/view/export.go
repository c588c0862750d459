package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/export"
	"github.com/MrJamesThe3rd/mockuments/internal/output"
	"github.com/MrJamesThe3rd/mockuments/internal/preview"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

const exportTimeout = 10 * time.Minute

// SinkFunc opens the destination for a batch written to dir.
type SinkFunc func(ctx context.Context, dir string) (output.Sink, error)

type exportFields struct {
	quantity string
	link     bool
	path     string
}

type ExportModel struct {
	CommonModel
	exportService *export.Service
	controller    *preview.Controller
	openSink      SinkFunc

	state   exportState
	err     error
	form    *huh.Form
	fields  *exportFields
	spinner spinner.Model
	bar     progress.Model
	percent int
	updates chan int
	result  *export.Result
}

func NewExportModel(svc *export.Service, c *preview.Controller, openSink SinkFunc, defaultDir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	in := c.Snapshot().Inputs

	m := ExportModel{
		exportService: svc,
		controller:    c,
		openSink:      openSink,
		state:         exportStateForm,
		fields:        &exportFields{quantity: "1", link: in.LinkSupporting, path: defaultDir},
		spinner:       s,
		bar:           progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Export Documents" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.controller.SetLinkSupporting(m.fields.link)

	m.state = exportStateExporting
	m.err = nil
	m.percent = 0
	m.updates = make(chan int, export.MaxQuantity+1)

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(), waitForProgress(m.updates))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.percent = int(msg)
		return m, waitForProgress(m.updates)
	case exportResultMsg:
		m.state = exportStateResult
		m.err = msg.err
		m.result = msg.result

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) buildForm() *huh.Form {
	f := m.fields
	in := m.controller.Snapshot().Inputs

	fields := []huh.Field{
		huh.NewNote().
			Title(fmt.Sprintf("%s / %s (%s)", in.Category, in.DocType, in.Region)).
			Description(fmt.Sprintf("Mode: %s", in.Mode)),
	}

	if in.Mode != document.ModeManual {
		fields = append(fields, huh.NewInput().
			Key("quantity").
			Title("Quantity").
			Description(fmt.Sprintf("1 to %d documents", export.MaxQuantity)).
			Validate(func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < 1 || n > export.MaxQuantity {
					return fmt.Errorf("enter a number between 1 and %d", export.MaxQuantity)
				}

				return nil
			}).
			Value(&f.quantity))
	}

	if in.Category == catalog.Supplier {
		fields = append(fields, huh.NewConfirm().
			Key("link").
			Title("Bundle linked invoices?").
			Value(&f.link))
	}

	fields = append(fields, huh.NewInput().
		Key("path").
		Title("Output Path").
		Description("Directory will be created if it doesn't exist").
		Placeholder("./exports").
		Value(&f.path))

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
			fmt.Sprintf("%s Rendering documents...", m.spinner.View()),
			"",
			m.bar.ViewAs(float64(m.percent)/100),
		))

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Export failed: %v", m.err)))
	}

	lines := []string{okStyle.Render("Export Complete!"), ""}

	if m.result.Archive != "" {
		lines = append(lines, fmt.Sprintf("Archive: %s (%d files)", m.result.Archive, len(m.result.Files)), "")
	}

	for _, f := range m.result.Files {
		lines = append(lines, "  "+f)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

type progressMsg int

type exportResultMsg struct {
	result *export.Result
	err    error
}

func waitForProgress(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}

		return progressMsg(p)
	}
}

func (m ExportModel) runExportCmd() tea.Cmd {
	in := m.controller.Snapshot().Inputs
	fields := *m.fields
	updates := m.updates

	return func() tea.Msg {
		defer close(updates)

		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		sink, err := m.openSink(ctx, strings.TrimSpace(fields.path))
		if err != nil {
			return exportResultMsg{err: err}
		}

		qty, _ := strconv.Atoi(strings.TrimSpace(fields.quantity))
		manual := in.Manual

		res, err := m.exportService.ExportBatch(ctx, export.Request{
			Region:         in.Region,
			Category:       in.Category,
			DocType:        in.DocType,
			Mode:           in.Mode,
			Quantity:       qty,
			LinkSupporting: fields.link,
			Manual:         &manual,
			WithPONumber:   in.WithPONumber,
			Progress: func(p int) {
				updates <- p
			},
		}, sink)

		return exportResultMsg{result: res, err: err}
	}
}
