package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dpclog/internal/export"
	"github.com/sadopc/dpclog/internal/store"
	"github.com/sadopc/dpclog/internal/visit"
)

// LeadUser is the built-in team lead account. DPC accounts come from the
// roster.
var LeadUser = visit.User{Role: visit.RoleLead, Name: "Capaldo, R"}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	user       visit.User
	activeView viewState
	showHelp   bool

	exportPicking bool
	exportCursor  int

	userPicking bool
	userCursor  int
	userOptions []visit.User

	calendar calendarModel
	reports  reportsModel
	form     formModel

	roster []visit.Rep

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(s *store.Store, user visit.User) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		user:       user,
		activeView: viewCalendar,
		calendar:   newCalendarModel(s, user),
		reports:    newReportsModel(s, user),
		form:       newFormModel(s, user),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.loadData()
}

// loadData reads the whole collection plus reference data in one shot; every
// view works off the same snapshot.
func (a App) loadData() tea.Cmd {
	return func() tea.Msg {
		visits, err := a.store.ListVisits()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		roster, _ := a.store.ListReps()
		retailers, _ := a.store.ListRetailers()
		regions, _ := a.store.Regions()
		return visitsDataMsg{visits: visits, roster: roster, retailers: retailers, regions: regions}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.calendar.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.form.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.userPicking {
			return a.updateUserPicker(msg)
		}
		if a.form.active {
			var cmd tea.Cmd
			a.form, cmd = a.form.update(msg)
			return a, cmd
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.SwitchUser):
			a.userPicking = true
			a.userCursor = 0
			a.userOptions = a.buildUserOptions()
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewCalendar
			return a, a.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewReports
			return a, a.loadData()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 2
			return a, a.loadData()
		}
		return a.updateActiveView(msg)

	case visitsDataMsg:
		a.roster = msg.roster
		a.form.setRetailers(msg.retailers)
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.calendar, cmd = a.calendar.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		a.reports, cmd = a.reports.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case openFormMsg:
		var cmd tea.Cmd
		a.form, cmd = a.form.open(msg.date, msg.existing)
		return a, cmd

	case visitSavedMsg:
		if msg.updated {
			a.setStatus("Visit updated!", false)
		} else {
			a.setStatus("Visit added!", false)
		}
		return a, a.loadData()

	case visitDeletedMsg:
		a.setStatus("Visit deleted.", false)
		return a, a.loadData()

	case userSwitchedMsg:
		a.user = msg.user
		a.calendar.setUser(msg.user)
		a.reports.setUser(msg.user)
		a.form.setUser(msg.user)
		role := "DPC"
		if msg.user.IsLead() {
			role = "Lead"
		}
		a.setStatus(fmt.Sprintf("Switched to %s (%s)", msg.user.Name, role), false)
		return a, a.loadData()

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		return a, nil
	}

	// huh drives the form with its own message types.
	if a.form.active {
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg)
		return a, cmd
	}
	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusErr = isError
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	}
	return a, cmd
}

func (a App) buildUserOptions() []visit.User {
	options := []visit.User{LeadUser}
	for _, rep := range a.roster {
		options = append(options, visit.User{Role: visit.RoleDPC, Name: rep.Name, Region: rep.Region})
	}
	return options
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch {
	case a.form.active:
		content = a.form.view()
	case a.exportPicking:
		content = a.renderExportPicker()
	case a.userPicking:
		content = a.renderUserPicker()
	case a.activeView == viewCalendar:
		content = a.calendar.view()
	default:
		content = a.reports.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("DPC Activity Log")

	role := "DPC"
	if a.user.IsLead() {
		role = "Lead"
	}
	badge := userBadgeStyle.Render(fmt.Sprintf("%s · %s", a.user.Name, role))

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - lipgloss.Width(badge) - 6
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", badge, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) renderUserPicker() string {
	title := titleStyle.Render("Switch User")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, u := range a.userOptions {
		cursor := "  "
		style := normalItemStyle
		if i == a.userCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		role := "DPC · " + u.Region
		if u.IsLead() {
			role = "Lead"
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-20s", cursor, u.Name))+mutedStyle.Render(role))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: switch  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateUserPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.userCursor > 0 {
			a.userCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.userCursor < len(a.userOptions)-1 {
			a.userCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.userPicking = false
		if a.userCursor < len(a.userOptions) {
			u := a.userOptions[a.userCursor]
			return a, func() tea.Msg {
				if err := a.store.SetCurrentUser(u); err != nil {
					return statusMsg{text: fmt.Sprintf("Switch error: %v", err), isError: true}
				}
				return userSwitchedMsg{user: u}
			}
		}
	case key.Matches(msg, keys.Back):
		a.userPicking = false
	}
	return a, nil
}

// doExport writes the report the way the reports view currently sees it:
// per-rep metrics over all role-scoped data, detail rows after filters.
func (a App) doExport(format int) tea.Cmd {
	metrics := a.reports.metrics()
	filtered := a.reports.filtered()

	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		now := time.Now()

		var path string
		if format == 0 {
			path = filepath.Join(home, export.Filename("csv", now))
			if err := export.ReportCSV(metrics, filtered, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, export.Filename("json", now))
			if err := export.ReportJSON(metrics, filtered, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
