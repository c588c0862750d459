package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/preview"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

type previewState int

const (
	previewStateBrowse previewState = iota
	previewStateManual
)

// manualFields backs the manual form. It lives on the heap so the form's
// value pointers survive model copies.
type manualFields struct {
	document.ManualInput
}

type PreviewModel struct {
	CommonModel
	controller *preview.Controller
	catalog    *catalog.Catalog
	regions    *region.Table

	state  previewState
	form   *huh.Form
	fields *manualFields
	err    error
}

func NewPreviewModel(c *preview.Controller, cat *catalog.Catalog, regions *region.Table) PreviewModel {
	return PreviewModel{
		controller: c,
		catalog:    cat,
		regions:    regions,
		state:      previewStateBrowse,
	}
}

func (m PreviewModel) Title() string { return "Preview" }

func (m PreviewModel) ShortHelp() string {
	if m.state == previewStateManual {
		return "Esc: cancel | Enter: next field"
	}

	return "r: region | c: category | t: type | m: mode | p: PO number | l: link invoices | g: regenerate | e: edit manual | Esc: back"
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == previewStateManual {
		return m.updateManual(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	snap := m.controller.Snapshot()
	in := snap.Inputs

	var err error

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r":
		err = m.controller.SetRegion(cycle(m.regions.Codes(), in.Region))
	case "c":
		codes := m.catalog.Codes()
		names := make([]string, len(codes))
		for i, c := range codes {
			names[i] = string(c)
		}

		err = m.controller.SetCategory(catalog.Category(cycle(names, string(in.Category))))
	case "t":
		var entry catalog.Entry
		if entry, err = m.catalog.Entry(in.Category); err == nil {
			err = m.controller.SetDocType(cycle(entry.TypeNames(), in.DocType))
		}
	case "m":
		mode := document.ModeManual
		if in.Mode == document.ModeManual {
			mode = document.ModeAutomated
		}

		err = m.controller.SetMode(mode)
	case "p":
		err = m.controller.SetWithPONumber(!in.WithPONumber)
	case "l":
		m.controller.SetLinkSupporting(!in.LinkSupporting)
	case "g":
		err = m.controller.SetDocType(in.DocType)
	case "e":
		m.fields = &manualFields{ManualInput: in.Manual.Input()}
		m.form = m.buildManualForm()
		m.state = previewStateManual
		m.err = nil

		return m, m.form.Init()
	default:
		return m, nil
	}

	m.err = err

	return m, nil
}

func (m PreviewModel) updateManual(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = previewStateBrowse
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = previewStateBrowse
	m.err = m.controller.SetManual(m.fields.ManualInput)

	return m, nil
}

func (m PreviewModel) buildManualForm() *huh.Form {
	f := m.fields

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("counterpart").Title("Counterpart").Value(&f.Counterpart),
			huh.NewInput().Key("date").Title("Date").Placeholder("YYYY-MM-DD").Value(&f.Date),
			huh.NewInput().Key("due_date").Title("Due Date").Placeholder("YYYY-MM-DD").Value(&f.DueDate),
			huh.NewInput().Key("total").Title("Total").Description("Amount including tax").Value(&f.Total),
			huh.NewConfirm().Key("auto_tax").Title("Derive tax from the region rate?").Value(&f.AutoTax),
			huh.NewInput().Key("tax").Title("Tax").Description("Used when automatic tax is off").Value(&f.Tax),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m PreviewModel) View() string {
	if m.state == previewStateManual {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	snap := m.controller.Snapshot()
	in := snap.Inputs

	header := fmt.Sprintf("%s  %s / %s  [%s]  PO:%s  Link:%s",
		titleStyle.Render(snap.Profile.Name), in.Category, in.DocType, in.Mode, onOff(in.WithPONumber), onOff(in.LinkSupporting))

	parts := []string{header, "", RenderRecord(snap.Record, snap.Profile)}

	if m.err != nil {
		parts = append(parts, "", errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	parts = append(parts, "", labelStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func onOff(b bool) string {
	if b {
		return "on"
	}

	return "off"
}
