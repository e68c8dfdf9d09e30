package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"nfctag/nfcTerm/internal/api"
	"nfctag/nfcTerm/internal/models"
)

type ViewState int

const (
	ViewContacts ViewState = iota
	ViewExport
)

// NavigateMsg switches the active view. Contact carries the export subject
// when navigating to the export view.
type NavigateMsg struct {
	State   ViewState
	Contact *models.Contact
}

// AppModel routes messages to the active view and owns the single-slot
// feedback banner both views report through.
type AppModel struct {
	state  ViewState
	width  int
	height int

	store     api.ContactStore
	exportDir string
	log       zerolog.Logger

	contacts *ContactsModel
	export   *ExportModel

	feedback feedbackSlot
}

func NewAppModel(store api.ContactStore, exportDir string, log zerolog.Logger) *AppModel {
	return &AppModel{
		state:     ViewContacts,
		store:     store,
		exportDir: exportDir,
		log:       log,
		contacts:  NewContactsModel(store, log),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.contacts.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.contacts, _ = m.contacts.Update(msg)
		if m.export != nil {
			m.export, _ = m.export.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case NavigateMsg:
		switch msg.State {
		case ViewExport:
			if msg.Contact != nil {
				m.export = NewExportModel(*msg.Contact, m.exportDir, m.log)
				m.state = ViewExport
			}
		case ViewContacts:
			m.export = nil
			m.state = ViewContacts
		}
		return m, nil

	// Registry completion messages always reach the contacts model, even
	// when the export view is in front: a reload or mutation finishing in
	// the background must still settle the registry's state.
	case ContactsLoadedMsg, ContactsLoadFailedMsg,
		ContactSavedMsg, ContactSaveFailedMsg,
		ContactDeletedMsg, ContactDeleteFailedMsg:
		var cmd tea.Cmd
		m.contacts, cmd = m.contacts.Update(msg)
		return m, cmd

	case FeedbackMsg:
		return m, m.feedback.Emit(msg.Type, msg.Message)

	case FeedbackExpiredMsg:
		m.feedback.Expire(msg)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case ViewExport:
		if m.export != nil {
			m.export, cmd = m.export.Update(msg)
		}
	default:
		m.contacts, cmd = m.contacts.Update(msg)
	}

	return m, cmd
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string
	switch m.state {
	case ViewExport:
		if m.export != nil {
			content = m.export.View()
		}
	default:
		content = m.contacts.View()
	}

	if banner := m.feedback.View(); banner != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", banner)
	}

	return content
}
