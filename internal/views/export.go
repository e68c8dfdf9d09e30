package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"nfctag/nfcTerm/internal/models"
	"nfctag/nfcTerm/internal/utils"
)

// Export pipeline completion messages.
type PayloadCopiedMsg struct {
	Payload string
}

type PayloadCopyFailedMsg struct {
	Err error
}

type ExportSavedMsg struct {
	Path string
}

type ExportFailedMsg struct {
	Err error
}

// ExportModel presents one record's encoded payload and produces the two
// derived artifacts: a clipboard copy of the payload and a decoded vCard
// file.
type ExportModel struct {
	contact   models.Contact
	exportDir string
	log       zerolog.Logger

	// copyFn and writeFn are swapped out in tests.
	copyFn  func(string) error
	writeFn func(dir, filename string, data []byte) (string, error)

	preview   []string
	decodeErr error

	width  int
	height int
}

func NewExportModel(contact models.Contact, exportDir string, log zerolog.Logger) *ExportModel {
	m := &ExportModel{
		contact:   contact,
		exportDir: exportDir,
		log:       log.With().Str("component", "export").Logger(),
		copyFn:    utils.CopyToClipboard,
		writeFn:   utils.WriteVCardFile,
	}

	raw, err := contact.DecodePayload()
	if err != nil {
		m.decodeErr = err
	} else {
		m.preview = strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	}

	return m
}

func (m *ExportModel) Init() tea.Cmd {
	return nil
}

func (m *ExportModel) Update(msg tea.Msg) (*ExportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg {
				return NavigateMsg{State: ViewContacts}
			}
		case "c":
			return m, m.copyPayload()
		case "s", "d":
			return m, m.saveFile()
		}

	case PayloadCopiedMsg:
		return m, emitFeedback(FeedbackSuccess, "Payload copied to clipboard")

	case PayloadCopyFailedMsg:
		m.log.Warn().Err(msg.Err).Msg("clipboard copy failed")
		return m, emitFeedback(FeedbackError, "Could not copy to clipboard")

	case ExportSavedMsg:
		m.log.Info().
			Str("path", msg.Path).
			Str("content_type", utils.VCardContentType).
			Msg("vcard exported")
		return m, emitFeedback(FeedbackSuccess, fmt.Sprintf("Saved %s", msg.Path))

	case ExportFailedMsg:
		m.log.Warn().Err(msg.Err).Msg("export failed")
		return m, emitFeedback(FeedbackError, fmt.Sprintf("Export failed: %v", msg.Err))
	}

	return m, nil
}

// copyPayload writes the encoded payload verbatim to the clipboard: NFC
// writer apps expect the base64 form, so nothing is decoded here.
func (m *ExportModel) copyPayload() tea.Cmd {
	return func() tea.Msg {
		if m.contact.NdefData == "" {
			return PayloadCopyFailedMsg{Err: models.ErrPayloadMissing}
		}
		if err := m.copyFn(m.contact.NdefData); err != nil {
			return PayloadCopyFailedMsg{Err: err}
		}
		return PayloadCopiedMsg{Payload: m.contact.NdefData}
	}
}

// saveFile decodes the payload and writes the raw vCard bytes to the export
// directory. A decode failure aborts before any file is touched.
func (m *ExportModel) saveFile() tea.Cmd {
	return func() tea.Msg {
		raw, err := m.contact.DecodePayload()
		if err != nil {
			return ExportFailedMsg{Err: err}
		}

		path, err := m.writeFn(m.exportDir, m.contact.ExportFilename(), raw)
		if err != nil {
			return ExportFailedMsg{Err: err}
		}
		return ExportSavedMsg{Path: path}
	}
}

func (m *ExportModel) View() string {
	var content strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1)
	content.WriteString(headerStyle.Render(fmt.Sprintf("Export: %s", m.contact.DisplayName())))
	content.WriteString("\n\n")

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Padding(0, 2)

	badgeColour := utils.Colours.Green
	capacityNote := fmt.Sprintf("fits NFC 215 tag (max %s)", utils.FormatBytes(models.TagCapacityBytes))
	if m.contact.OverCapacity() {
		badgeColour = utils.Colours.Red
		capacityNote = fmt.Sprintf("exceeds NFC 215 tag capacity of %s", utils.FormatBytes(models.TagCapacityBytes))
	}
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(badgeColour)).
		Bold(true).
		Render(m.contact.SizeBadge())

	content.WriteString(infoStyle.Render(fmt.Sprintf("Phone:   %s", m.contact.PhoneNumber)))
	content.WriteString("\n")
	content.WriteString(infoStyle.Render(fmt.Sprintf("Size:    %s — %s", badge, capacityNote)))
	content.WriteString("\n")
	content.WriteString(infoStyle.Render(fmt.Sprintf("Updated: %s", utils.FormatTimestamp(m.contact.UpdatedAt))))
	content.WriteString("\n\n")

	previewHeader := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Padding(0, 2).
		Render("Decoded payload:")
	content.WriteString(previewHeader)
	content.WriteString("\n")

	if m.decodeErr != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Red)).
			Padding(0, 2)
		content.WriteString(errStyle.Render("✗ payload cannot be decoded: " + m.decodeErr.Error()))
		content.WriteString("\n")
	} else {
		previewStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(utils.Colours.Teal)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
			Padding(0, 1).
			Margin(0, 2)
		content.WriteString(previewStyle.Render(strings.Join(m.preview, "\n")))
		content.WriteString("\n")
	}

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Subtext0)).
		Italic(true).
		Padding(0, 2)
	content.WriteString("\n")
	content.WriteString(hintStyle.Render("Copy the payload and write it to your tag with an NFC writer app."))
	content.WriteString("\n\n")

	controlsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1)).
		Padding(0, 1)
	content.WriteString(controlsStyle.Render("[C]opy payload [S]ave .vcf [Esc] Back"))

	return content.String()
}
