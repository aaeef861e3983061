package theme

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
)

// Base16 color palette with orange, brown, yellow, and pink tones
// Based on Autumn theme with warm earth tones
var (
	// Base colors (backgrounds and text)
	ColorBase00 = lipgloss.Color("#1a1816") // Dark background
	ColorBase01 = lipgloss.Color("#282420") // Lighter background
	ColorBase02 = lipgloss.Color("#36302a") // Selection background
	ColorBase03 = lipgloss.Color("#5c5044") // Comments, invisibles
	ColorBase05 = lipgloss.Color("#ab937b") // Default foreground
	ColorBase07 = lipgloss.Color("#f5d7b9") // Lightest foreground

	// Accent colors
	ColorRed    = lipgloss.Color("#d95f5f")
	ColorOrange = lipgloss.Color("#eb8755")
	ColorYellow = lipgloss.Color("#f5b761")
	ColorGreen  = lipgloss.Color("#93b56b")
	ColorCyan   = lipgloss.Color("#61afaf")

	// UI specific colors
	ColorFocus   = ColorOrange
	ColorMuted   = ColorBase03
	ColorError   = ColorRed
	ColorWarning = ColorYellow
)

// TimestampLayout is how message times are printed on conversation pages.
const TimestampLayout = "2006-01-02 15:04:05"

// Styles defines the Lipgloss styles used inside page content
type Styles struct {
	Timestamp lipgloss.Style
	Sender    lipgloss.Style
	EventName lipgloss.Style
	EventCode lipgloss.Style
	Missing   lipgloss.Style
}

// DefaultStyles returns the default Lipgloss styles
func DefaultStyles() *Styles {
	return &Styles{
		Timestamp: lipgloss.NewStyle().
			Foreground(ColorYellow),

		Sender: lipgloss.NewStyle().
			Foreground(ColorCyan),

		EventName: lipgloss.NewStyle().
			Foreground(ColorYellow),

		EventCode: lipgloss.NewStyle().
			Foreground(ColorGreen),

		Missing: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),
	}
}

var styles = DefaultStyles()

// Timestamp renders a message time.
func Timestamp(t time.Time) string {
	return styles.Timestamp.Render(t.Format(TimestampLayout))
}

// Sender renders a sender id in the [id] form.
func Sender(id int64) string {
	return fmt.Sprintf("[%s]", styles.Sender.Render(fmt.Sprint(id)))
}

// EventName renders a resolved event name.
func EventName(name string) string {
	return styles.EventName.Render(name)
}

// EventCode renders a raw event code.
func EventCode(code int) string {
	return styles.EventCode.Render(fmt.Sprint(code))
}

// Missing renders placeholder text for content that could not be resolved.
func Missing(text string) string {
	return styles.Missing.Render(text)
}

// Screen styles are drawn directly with tcell rather than through ANSI.
var (
	TabActive   = tcell.StyleDefault.Foreground(Tcell(ColorBase00)).Background(Tcell(ColorFocus)).Bold(true)
	TabInactive = tcell.StyleDefault.Foreground(Tcell(ColorBase05)).Background(Tcell(ColorBase01))
	TabActivity = tcell.StyleDefault.Foreground(Tcell(ColorYellow)).Background(Tcell(ColorBase01))
	StatusBar   = tcell.StyleDefault.Foreground(Tcell(ColorBase07)).Background(Tcell(ColorBase02))
	StatusError = tcell.StyleDefault.Foreground(Tcell(ColorError)).Background(Tcell(ColorBase02)).Bold(true)
	InputPrompt = tcell.StyleDefault.Foreground(Tcell(ColorFocus)).Bold(true)
	Scrolled    = tcell.StyleDefault.Foreground(Tcell(ColorWarning)).Background(Tcell(ColorBase02))
)

// Tcell converts a palette color for direct screen drawing.
func Tcell(c lipgloss.Color) tcell.Color {
	return tcell.GetColor(string(c))
}
