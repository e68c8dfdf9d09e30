package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"nfctag/nfcTerm/internal/api"
	"nfctag/nfcTerm/internal/models"
	"nfctag/nfcTerm/internal/utils"
)

type contactView int

const (
	contactViewList contactView = iota
	contactViewForm
	contactViewDeleteConfirm
)

// Completion messages posted by the store commands. All registry state
// mutation happens in Update when one of these arrives, never inside the
// command goroutine itself.
type ContactsLoadedMsg struct {
	Contacts []models.Contact
	Gen      uint64
}

type ContactsLoadFailedMsg struct {
	Err error
	Gen uint64
}

type ContactSavedMsg struct {
	Contact *models.Contact
	Created bool
}

type ContactSaveFailedMsg struct {
	Err error
}

type ContactDeletedMsg struct {
	ID string
}

type ContactDeleteFailedMsg struct {
	Err error
}

type contactFormField int

const (
	formFieldName contactFormField = iota
	formFieldPhone
	formFieldText
	formFieldCount
)

// contactForm is the ephemeral draft buffer. It is decoupled from any
// record until submission; editingID distinguishes edit from create.
type contactForm struct {
	inputs    [formFieldCount]textinput.Model
	focused   contactFormField
	errors    map[string]string
	editingID string
}

func newContactForm() contactForm {
	var f contactForm

	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 100
		ti.Width = 40
		ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue))
		ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
		f.inputs[i] = ti
	}

	f.inputs[formFieldName].Placeholder = "Display name (optional)"
	f.inputs[formFieldName].CharLimit = 50
	f.inputs[formFieldPhone].Placeholder = "+49..."
	f.inputs[formFieldPhone].CharLimit = 20
	f.inputs[formFieldText].Placeholder = "Tag text"

	f.errors = make(map[string]string)
	f.inputs[formFieldName].Focus()

	return f
}

func (f *contactForm) seed(c models.Contact) {
	f.inputs[formFieldName].SetValue(c.Name)
	f.inputs[formFieldPhone].SetValue(c.PhoneNumber)
	f.inputs[formFieldText].SetValue(c.Text)
	f.editingID = c.ID
}

func (f *contactForm) draft() api.ContactRequest {
	return api.ContactRequest{
		Name:        strings.TrimSpace(f.inputs[formFieldName].Value()),
		PhoneNumber: strings.TrimSpace(f.inputs[formFieldPhone].Value()),
		Text:        strings.TrimSpace(f.inputs[formFieldText].Value()),
	}
}

// validate checks the required fields locally. An invalid draft never
// reaches the store.
func (f *contactForm) validate() bool {
	f.errors = make(map[string]string)

	if strings.TrimSpace(f.inputs[formFieldPhone].Value()) == "" {
		f.errors["phone_number"] = "Phone number is required"
	}
	if strings.TrimSpace(f.inputs[formFieldText].Value()) == "" {
		f.errors["text"] = "Text is required"
	}

	return len(f.errors) == 0
}

// errorSummary flattens the field errors into the banner line.
func (f *contactForm) errorSummary() string {
	_, phoneMissing := f.errors["phone_number"]
	_, textMissing := f.errors["text"]
	switch {
	case phoneMissing && textMissing:
		return "Phone number and text are required"
	case phoneMissing:
		return "Phone number is required"
	default:
		return "Text is required"
	}
}

func (f *contactForm) nextField() {
	if f.focused < formFieldCount-1 {
		f.focused++
	}
}

func (f *contactForm) prevField() {
	if f.focused > 0 {
		f.focused--
	}
}

func (f *contactForm) focusCurrent() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focused].Focus()
}

// ContactsModel owns the authoritative local view of the record set and
// drives all mutations against the remote store.
type ContactsModel struct {
	store api.ContactStore
	log   zerolog.Logger

	contacts []models.Contact
	selected int
	loading  bool
	spinner  *utils.Spinner

	view contactView
	form contactForm

	// mutationPending serializes mutations: while a write is in flight,
	// further submit/delete intents are ignored.
	mutationPending bool

	// loadGen tags each reload so a stale in-flight response can never
	// clobber the result of a newer one.
	loadGen uint64

	width  int
	height int
}

func NewContactsModel(store api.ContactStore, log zerolog.Logger) *ContactsModel {
	return &ContactsModel{
		store:   store,
		log:     log.With().Str("component", "contacts").Logger(),
		spinner: utils.NewSpinner(),
		form:    newContactForm(),
	}
}

func (m *ContactsModel) Init() tea.Cmd {
	return m.reload()
}

// reload fetches the full record set, replacing the local set wholesale on
// success. There is no incremental patching: the store computes payload
// sizes, so only a full re-fetch guarantees consistency.
func (m *ContactsModel) reload() tea.Cmd {
	m.loadGen++
	m.loading = true
	gen := m.loadGen

	return func() tea.Msg {
		contacts, err := m.store.ListContacts(context.Background())
		if err != nil {
			return ContactsLoadFailedMsg{Err: err, Gen: gen}
		}
		return ContactsLoadedMsg{Contacts: contacts, Gen: gen}
	}
}

func (m *ContactsModel) Update(msg tea.Msg) (*ContactsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case contactViewList:
			return m.updateListView(msg)
		case contactViewForm:
			return m.updateFormView(msg)
		case contactViewDeleteConfirm:
			return m.updateDeleteConfirmView(msg)
		}

	case ContactsLoadedMsg:
		if msg.Gen != m.loadGen {
			// A newer reload is already in flight or applied.
			return m, nil
		}
		m.contacts = msg.Contacts
		m.loading = false
		m.clampSelection()
		return m, nil

	case ContactsLoadFailedMsg:
		if msg.Gen != m.loadGen {
			return m, nil
		}
		// Stale-but-available: the previous set stays on screen.
		m.loading = false
		m.log.Warn().Err(msg.Err).Msg("reload failed")
		return m, emitFeedback(FeedbackError, api.UserMessage(msg.Err))

	case ContactSavedMsg:
		m.mutationPending = false
		m.view = contactViewList
		m.form = newContactForm()
		text := fmt.Sprintf("Contact '%s' updated", msg.Contact.DisplayName())
		if msg.Created {
			text = fmt.Sprintf("Contact '%s' created", msg.Contact.DisplayName())
		}
		// The write has completed; only now is the re-fetch issued.
		return m, tea.Batch(emitFeedback(FeedbackSuccess, text), m.reload())

	case ContactSaveFailedMsg:
		// Draft and form stay open so the user can correct and retry.
		m.mutationPending = false
		m.log.Warn().Err(msg.Err).Msg("save failed")
		return m, emitFeedback(FeedbackError, api.UserMessage(msg.Err))

	case ContactDeletedMsg:
		m.mutationPending = false
		m.view = contactViewList
		return m, tea.Batch(emitFeedback(FeedbackSuccess, "Contact deleted"), m.reload())

	case ContactDeleteFailedMsg:
		m.mutationPending = false
		m.view = contactViewList
		m.log.Warn().Err(msg.Err).Msg("delete failed")
		return m, emitFeedback(FeedbackError, api.UserMessage(msg.Err))
	}

	return m, nil
}

func (m *ContactsModel) updateListView(msg tea.KeyMsg) (*ContactsModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.contacts)-1 {
			m.selected++
		}

	case "n":
		m.form = newContactForm()
		m.view = contactViewForm
		return m, textinput.Blink

	case "e":
		if len(m.contacts) > 0 {
			m.form = newContactForm()
			m.form.seed(m.contacts[m.selected])
			m.view = contactViewForm
			return m, textinput.Blink
		}

	case "d", "delete":
		if len(m.contacts) > 0 {
			m.view = contactViewDeleteConfirm
		}

	case "enter", "x":
		if len(m.contacts) > 0 {
			contact := m.contacts[m.selected]
			return m, func() tea.Msg {
				return NavigateMsg{State: ViewExport, Contact: &contact}
			}
		}

	case "r":
		return m, m.reload()
	}

	return m, nil
}

func (m *ContactsModel) updateFormView(msg tea.KeyMsg) (*ContactsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = newContactForm()
		m.view = contactViewList
		return m, nil

	case "tab", "down":
		m.form.nextField()
		return m, m.form.focusCurrent()

	case "shift+tab", "up":
		m.form.prevField()
		return m, m.form.focusCurrent()

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focused], cmd = m.form.inputs[m.form.focused].Update(msg)
	return m, cmd
}

func (m *ContactsModel) submitForm() (*ContactsModel, tea.Cmd) {
	if m.mutationPending {
		return m, nil
	}

	if !m.form.validate() {
		return m, emitFeedback(FeedbackError, m.form.errorSummary())
	}

	req := m.form.draft()
	editingID := m.form.editingID
	m.mutationPending = true

	return m, func() tea.Msg {
		if editingID == "" {
			created, err := m.store.CreateContact(context.Background(), req)
			if err != nil {
				return ContactSaveFailedMsg{Err: err}
			}
			return ContactSavedMsg{Contact: created, Created: true}
		}

		updated, err := m.store.UpdateContact(context.Background(), editingID, req)
		if err != nil {
			return ContactSaveFailedMsg{Err: err}
		}
		return ContactSavedMsg{Contact: updated}
	}
}

func (m *ContactsModel) updateDeleteConfirmView(msg tea.KeyMsg) (*ContactsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if m.mutationPending || len(m.contacts) == 0 {
			return m, nil
		}
		id := m.contacts[m.selected].ID
		m.mutationPending = true
		return m, func() tea.Msg {
			if err := m.store.DeleteContact(context.Background(), id); err != nil {
				return ContactDeleteFailedMsg{Err: err}
			}
			return ContactDeletedMsg{ID: id}
		}

	case "n", "N", "esc":
		m.view = contactViewList
	}

	return m, nil
}

func (m *ContactsModel) clampSelection() {
	if len(m.contacts) == 0 {
		m.selected = 0
		return
	}
	if m.selected >= len(m.contacts) {
		m.selected = len(m.contacts) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *ContactsModel) View() string {
	switch m.view {
	case contactViewForm:
		return m.renderForm()
	case contactViewDeleteConfirm:
		return m.renderDeleteConfirm()
	default:
		return m.renderList()
	}
}

func (m *ContactsModel) renderList() string {
	var content strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1)

	content.WriteString(headerStyle.Render(fmt.Sprintf("NFC Tag Contacts (%d)", len(m.contacts))))
	content.WriteString("\n\n")

	switch {
	case m.loading && len(m.contacts) == 0:
		loadingStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Yellow)).
			Padding(1, 2)
		content.WriteString(loadingStyle.Render(m.spinner.View() + " Loading contacts..."))

	case len(m.contacts) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Overlay1)).
			Padding(1, 2)
		content.WriteString(emptyStyle.Render("No contacts yet. Press n to create your first tag contact."))

	default:
		for i, contact := range m.contacts {
			content.WriteString(m.renderContactItem(contact, i == m.selected))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	controlsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Padding(0, 1)
	content.WriteString(controlsStyle.Render("[↑/↓] Navigate [Enter] Export [N]ew [E]dit [D]elete [R]efresh [Q]uit"))

	return content.String()
}

func (m *ContactsModel) renderContactItem(contact models.Contact, isSelected bool) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Padding(0, 1)
	if isSelected {
		style = style.
			Background(lipgloss.Color(utils.Colours.Surface1)).
			Bold(true)
	}

	name := utils.TruncateMiddle(contact.DisplayName(), 24)
	nameCol := lipgloss.NewStyle().Width(26).Render(name)

	phoneCol := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Width(18).
		Render(utils.TruncateMiddle(contact.PhoneNumber, 16))

	badgeColour := utils.Colours.Green
	badge := contact.SizeBadge()
	if contact.OverCapacity() {
		badgeColour = utils.Colours.Red
		badge = "⚠ " + badge
	}
	badgeCol := lipgloss.NewStyle().
		Foreground(lipgloss.Color(badgeColour)).
		Render(badge)

	return style.Render(nameCol + phoneCol + badgeCol)
}

func (m *ContactsModel) renderForm() string {
	var content strings.Builder

	title := "New Contact"
	if m.form.editingID != "" {
		title = "Edit Contact"
	}
	if m.mutationPending {
		title += " " + m.spinner.View()
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1)
	content.WriteString(headerStyle.Render(title))
	content.WriteString("\n\n")

	labels := [formFieldCount]string{"Name:", "Phone: *Required", "Text: *Required"}
	errorKeys := [formFieldCount]string{"", "phone_number", "text"}
	fieldStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Padding(0, 2)

	for i := range m.form.inputs {
		label := "  " + labels[i]
		if contactFormField(i) == m.form.focused {
			label = lipgloss.NewStyle().
				Foreground(lipgloss.Color(utils.Colours.Blue)).
				Bold(true).
				Render("▶ " + labels[i])
		}
		content.WriteString(fieldStyle.Render(label))
		content.WriteString("\n")
		content.WriteString(fieldStyle.Render(m.form.inputs[i].View()))
		if key := errorKeys[i]; key != "" {
			if errText, exists := m.form.errors[key]; exists {
				errStyle := lipgloss.NewStyle().
					Foreground(lipgloss.Color(utils.Colours.Red)).
					Padding(0, 2)
				content.WriteString("\n")
				content.WriteString(errStyle.Render("✗ " + errText))
			}
		}
		content.WriteString("\n\n")
	}

	controlsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Padding(0, 1)
	content.WriteString(controlsStyle.Render("[Tab] Next Field [Enter] Save [Esc] Cancel"))

	return content.String()
}

func (m *ContactsModel) renderDeleteConfirm() string {
	if len(m.contacts) == 0 {
		return "No contact selected"
	}
	contact := m.contacts[m.selected]

	var content strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Red)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1)
	content.WriteString(headerStyle.Render("Delete Contact"))
	content.WriteString("\n\n")

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Red)).
		Padding(0, 2)
	content.WriteString(warningStyle.Render(
		fmt.Sprintf("Are you sure you want to delete '%s'?", contact.DisplayName())))
	content.WriteString("\n\n")

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Padding(0, 2)
	content.WriteString(infoStyle.Render(
		fmt.Sprintf("Phone: %s\nPayload: %s", contact.PhoneNumber, contact.SizeBadge())))
	content.WriteString("\n\n")

	content.WriteString(infoStyle.Render("This action cannot be undone."))
	content.WriteString("\n\n")

	controlsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Padding(0, 1)
	content.WriteString(controlsStyle.Render("[Y] Yes, Delete [N] Cancel"))

	return content.String()
}
