package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dpclog/internal/store"
	"github.com/sadopc/dpclog/internal/visit"
)

const noRetailer = ""

type formModel struct {
	store  *store.Store
	width  int
	height int

	user      visit.User
	retailers []visit.Retailer

	active bool
	form   *huh.Form

	editing *visit.Visit // nil for a new visit

	confirmingDelete bool

	// Form field pointers (survive value copies)
	fDate     *string
	fType     *string
	fRetailer *string
	fName     *string
	fCity     *string
	fState    *string
	fNotes    *string
	fReceived *bool
	fRecDate  *string
}

func newFormModel(s *store.Store, user visit.User) formModel {
	date, typ, ret, name, city, state, notes, recDate := "", "", "", "", "", "", "", ""
	received := false
	return formModel{
		store:     s,
		user:      user,
		fDate:     &date,
		fType:     &typ,
		fRetailer: &ret,
		fName:     &name,
		fCity:     &city,
		fState:    &state,
		fNotes:    &notes,
		fReceived: &received,
		fRecDate:  &recDate,
	}
}

func (f *formModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f *formModel) setUser(u visit.User) {
	f.user = u
}

func (f *formModel) setRetailers(retailers []visit.Retailer) {
	f.retailers = retailers
}

// open prepares the form for a new visit on date, or for editing existing.
func (f formModel) open(date string, existing *visit.Visit) (formModel, tea.Cmd) {
	if existing != nil {
		v := *existing
		f.editing = &v
		*f.fDate = v.Date
		*f.fType = string(v.VisitType)
		*f.fRetailer = v.RetailerCode
		*f.fName = v.RetailerName
		*f.fCity = v.City
		*f.fState = v.State
		*f.fNotes = v.Notes
		*f.fReceived = visit.IsApproved(v)
		*f.fRecDate = v.ReceivedDate
	} else {
		f.editing = nil
		*f.fDate = date
		*f.fType = string(visit.TypeOnSiteRetailer)
		*f.fRetailer = noRetailer
		*f.fName = ""
		*f.fCity = ""
		*f.fState = ""
		*f.fNotes = ""
		*f.fReceived = false
		*f.fRecDate = ""
	}

	f.confirmingDelete = false
	f.form = f.buildForm()
	f.active = true
	return f, f.form.Init()
}

func (f formModel) buildForm() *huh.Form {
	typeOpts := make([]huh.Option[string], len(visit.AllTypes))
	for i, t := range visit.AllTypes {
		typeOpts[i] = huh.NewOption(string(t), string(t))
	}

	retailerOpts := make([]huh.Option[string], 0, len(f.retailers)+1)
	retailerOpts = append(retailerOpts, huh.NewOption("(none / manual entry)", noRetailer))
	for _, r := range f.retailers {
		label := fmt.Sprintf("%s — %s, %s", r.Label(), r.City, r.State)
		retailerOpts = append(retailerOpts, huh.NewOption(label, r.Code))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(f.fDate).
				Validate(validateVisitDate),
			huh.NewSelect[string]().
				Title("Visit Type").
				Options(typeOpts...).
				Value(f.fType),
			huh.NewSelect[string]().
				Title("Retailer").
				Options(retailerOpts...).
				Value(f.fRetailer),
			huh.NewInput().Title("Location Name (manual)").Value(f.fName),
			huh.NewInput().Title("City").Value(f.fCity),
			huh.NewInput().Title("State").CharLimit(2).Value(f.fState),
			huh.NewText().Title("Notes").Value(f.fNotes),
		),
	}

	// Report receipt is a lead-only concern.
	if f.user.IsLead() {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title("Visit Report Received").
				Value(f.fReceived),
			huh.NewInput().
				Title("Report Received Date (YYYY-MM-DD)").
				Value(f.fRecDate),
		))
	}

	return huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
}

func validateVisitDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("Date is required")
	}
	return visit.ValidateDate(s)
}

func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	if f.confirmingDelete {
		return f.updateDeleteConfirm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			f.active = false
			f.form = nil
			return f, nil
		case "ctrl+d":
			if f.editing != nil && f.user.IsLead() {
				f.confirmingDelete = true
				return f, nil
			}
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.active = false
		return f, f.save()
	}

	return f, cmd
}

func (f formModel) updateDeleteConfirm(msg tea.Msg) (formModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}
	switch key.String() {
	case "y", "Y":
		f.confirmingDelete = false
		f.active = false
		id := f.editing.ID
		return f, func() tea.Msg {
			if err := f.store.DeleteVisit(id); err != nil {
				return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
			}
			return visitDeletedMsg{}
		}
	case "n", "N", "esc":
		f.confirmingDelete = false
	}
	return f, nil
}

// save assembles the visit from the form fields and writes it. New visits
// belong to the current user; edits keep the original owner and creator.
func (f formModel) save() tea.Cmd {
	v := visit.Visit{
		DPC:       f.user.Name,
		Region:    f.user.Region,
		CreatedBy: f.user.Name,
	}
	if f.editing != nil {
		v = *f.editing
	}

	v.Date = strings.TrimSpace(*f.fDate)
	v.VisitType = visit.VisitType(*f.fType)
	v.Notes = strings.TrimSpace(*f.fNotes)

	if r, ok := visit.FindRetailer(f.retailers, *f.fRetailer); ok && *f.fRetailer != noRetailer {
		v.RetailerCode = r.Code
		v.RetailerName = r.Name
		v.City = r.City
		v.State = r.State
	} else {
		v.RetailerCode = ""
		v.RetailerName = strings.TrimSpace(*f.fName)
		v.City = strings.TrimSpace(*f.fCity)
		v.State = strings.TrimSpace(*f.fState)
	}

	if f.user.IsLead() {
		if *f.fReceived {
			v.ReceivedDate = strings.TrimSpace(*f.fRecDate)
			if v.ReceivedDate == "" {
				v.ReceivedDate = v.Date
			}
		} else {
			v.ReceivedDate = ""
		}
	}

	updated := f.editing != nil
	return func() tea.Msg {
		var err error
		if updated {
			_, err = f.store.UpdateVisit(v)
		} else {
			_, err = f.store.CreateVisit(v)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return visitSavedMsg{updated: updated}
	}
}

func (f formModel) view() string {
	w := f.width - 4

	if f.confirmingDelete {
		return f.renderDeleteConfirm(w)
	}

	title := titleStyle.Render("New Visit")
	if f.editing != nil {
		title = titleStyle.Render("Edit Visit")
	}

	hints := "  esc: cancel"
	if f.editing != nil && f.user.IsLead() {
		hints += "  ctrl+d: delete"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, "", f.form.View(), "", mutedStyle.Render(hints),
	)
	return panelStyle.Width(w).Render(content)
}

func (f formModel) renderDeleteConfirm(w int) string {
	v := f.editing
	rows := []string{
		errorStyle.Render("Delete this visit?"),
		"",
		fmt.Sprintf("  %s %s", mutedStyle.Render("DPC:"), v.DPC),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Date:"), v.Date),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Location:"), v.Location()),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Type:"), v.VisitType),
		"",
		mutedStyle.Render("  y: delete  n: keep"),
	}
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
