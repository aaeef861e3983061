package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// TestScreen wraps SimulationScreen with additional test utilities
type TestScreen struct {
	tcell.SimulationScreen
}

// NewTestScreen creates an initialized simulation screen of the given size
func NewTestScreen(width, height int) (*TestScreen, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		return nil, err
	}
	sim.SetSize(width, height)
	return &TestScreen{SimulationScreen: sim}, nil
}

// CaptureContent returns the current screen content as a string
func (ts *TestScreen) CaptureContent() string {
	width, height := ts.Size()
	return ts.GetRegion(0, 0, width, height) + "\n"
}

// Row returns one screen row with trailing blanks removed
func (ts *TestScreen) Row(y int) string {
	width, _ := ts.Size()
	return strings.TrimRight(ts.GetRegion(0, y, width, 1), " ")
}

// FindInContent searches for text in the current screen content
func (ts *TestScreen) FindInContent(text string) bool {
	return strings.Contains(ts.CaptureContent(), text)
}

// StyleAt returns the style of the cell at (x, y)
func (ts *TestScreen) StyleAt(x, y int) tcell.Style {
	_, _, style, _ := ts.GetContent(x, y)
	return style
}

// GetRegion extracts content from a specific screen region
func (ts *TestScreen) GetRegion(x, y, width, height int) string {
	var content strings.Builder

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			ch, _, _, _ := ts.GetContent(col, row)
			if ch != 0 {
				content.WriteRune(ch)
			} else {
				content.WriteRune(' ')
			}
		}
		if row < y+height-1 {
			content.WriteRune('\n')
		}
	}

	return content.String()
}
