package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nfctag/nfcTerm/internal/utils"
)

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

// feedbackTTL is how long a signal stays visible before it expires on its
// own.
const feedbackTTL = 5 * time.Second

// FeedbackMsg asks the app to show a transient status signal. Any operation
// outcome, from either the registry or the export pipeline, is reported
// through this one channel.
type FeedbackMsg struct {
	Type    FeedbackType
	Message string
}

// FeedbackExpiredMsg clears the signal whose sequence number it carries.
type FeedbackExpiredMsg struct {
	Seq uint64
}

// FeedbackSignal is the currently visible status message.
type FeedbackSignal struct {
	Type    FeedbackType
	Message string
	Seq     uint64
}

// feedbackSlot holds at most one signal. A new emit replaces the old signal
// and bumps the sequence number, so the superseded signal's expiry tick can
// never clear its successor.
type feedbackSlot struct {
	current *FeedbackSignal
	seq     uint64
}

// Emit replaces the visible signal and schedules its expiry.
func (s *feedbackSlot) Emit(t FeedbackType, message string) tea.Cmd {
	s.seq++
	s.current = &FeedbackSignal{Type: t, Message: message, Seq: s.seq}

	seq := s.seq
	return tea.Tick(feedbackTTL, func(time.Time) tea.Msg {
		return FeedbackExpiredMsg{Seq: seq}
	})
}

// Expire clears the slot only when the expiry belongs to the signal still
// on display.
func (s *feedbackSlot) Expire(msg FeedbackExpiredMsg) {
	if s.current != nil && s.current.Seq == msg.Seq {
		s.current = nil
	}
}

func (s *feedbackSlot) Current() *FeedbackSignal {
	return s.current
}

func (s *feedbackSlot) View() string {
	if s.current == nil {
		return ""
	}

	var colour, prefix string
	switch s.current.Type {
	case FeedbackSuccess:
		colour = utils.Colours.Green
		prefix = "✓ "
	case FeedbackError:
		colour = utils.Colours.Red
		prefix = "✗ "
	case FeedbackWarning:
		colour = utils.Colours.Yellow
		prefix = "⚠ "
	default:
		colour = utils.Colours.Blue
		prefix = ""
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colour)).
		Background(lipgloss.Color(utils.Colours.Surface0)).
		Padding(0, 1).
		Bold(true)

	return style.Render(prefix + s.current.Message)
}

// emitFeedback wraps a signal in a command so sub-views can report outcomes
// without owning the slot.
func emitFeedback(t FeedbackType, message string) tea.Cmd {
	return func() tea.Msg {
		return FeedbackMsg{Type: t, Message: message}
	}
}
