package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/killallgit/parley/pkg/page"
	"github.com/killallgit/parley/pkg/tui/theme"
	"github.com/mattn/go-runewidth"
)

const inputPrompt = "> "

// RenderPage draws the viewport of p into area.
func RenderPage(screen tcell.Screen, p *page.Page, area Rect) {
	if area.Empty() {
		return
	}

	clearArea(screen, area, tcell.StyleDefault)

	lines := p.Render(area.Width, area.Height)
	for i, line := range lines {
		RenderLine(screen, area.X, area.Y+i, area.Right(), line, tcell.StyleDefault)
	}
}

func RenderTabs(screen tcell.Screen, bar TabBar, area Rect) {
	if area.Empty() {
		return
	}

	clearArea(screen, area, theme.TabInactive)

	x := area.X
	for i := bar.FirstVisible(); i < len(bar.Tabs) && x < area.Right(); i++ {
		style := theme.TabInactive
		switch {
		case bar.Tabs[i].Active:
			style = theme.TabActive
		case bar.Tabs[i].Activity:
			style = theme.TabActivity
		}
		x = renderText(screen, x, area.Y, area.Right(), bar.Label(i), style)
	}
}

func RenderInput(screen tcell.Screen, input InputField, area Rect) {
	if area.Empty() {
		return
	}

	clearArea(screen, area, tcell.StyleDefault)

	x := renderText(screen, area.X, area.Y, area.Right(), inputPrompt, theme.InputPrompt)

	// Keep one cell free for the cursor at the end of the line.
	avail := area.Right() - x - 1
	runes := []rune(input.Content)
	cursor := min(max(input.Cursor, 0), len(runes))

	start := 0
	for start < cursor && runewidth.StringWidth(string(runes[start:cursor])) > avail {
		start++
	}

	cursorX := -1
	for i := start; i < len(runes); i++ {
		if i == cursor {
			cursorX = x
		}
		w := runewidth.RuneWidth(runes[i])
		if w == 0 {
			continue
		}
		if x+w > area.Right() {
			break
		}
		screen.SetContent(x, area.Y, runes[i], nil, tcell.StyleDefault)
		x += w
	}
	if cursor == len(runes) {
		cursorX = x
	}

	if cursorX >= 0 && cursorX < area.Right() {
		screen.ShowCursor(cursorX, area.Y)
	} else {
		screen.HideCursor()
	}
}

func RenderStatus(screen tcell.Screen, status StatusBar, area Rect) {
	if area.Empty() {
		return
	}

	clearArea(screen, area, theme.StatusBar)

	x := renderText(screen, area.X, area.Y, area.Right(), status.Left(), theme.StatusBar)
	if status.Error != "" {
		renderText(screen, x+1, area.Y, area.Right(), status.Error, theme.StatusError)
	}

	if right := status.Right(); right != "" {
		rx := area.Right() - runewidth.StringWidth(right)
		if rx > x {
			renderText(screen, rx, area.Y, area.Right(), right, theme.Scrolled)
		}
	}
}

func clearArea(screen tcell.Screen, area Rect, style tcell.Style) {
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// renderText draws plain text up to maxX and returns the next column.
func renderText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
