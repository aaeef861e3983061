package tui

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// InputField is the single-line editor. Cursor counts runes, not bytes.
type InputField struct {
	Content string
	Cursor  int
	Width   int
}

func NewInputField(width int) InputField {
	return InputField{
		Content: "",
		Cursor:  0,
		Width:   width,
	}
}

func (inf InputField) WithContent(content string) InputField {
	cursor := inf.Cursor
	if n := len([]rune(content)); cursor > n {
		cursor = n
	}
	return InputField{
		Content: content,
		Cursor:  cursor,
		Width:   inf.Width,
	}
}

func (inf InputField) WithCursor(cursor int) InputField {
	if cursor < 0 {
		cursor = 0
	}
	if n := len([]rune(inf.Content)); cursor > n {
		cursor = n
	}
	return InputField{
		Content: inf.Content,
		Cursor:  cursor,
		Width:   inf.Width,
	}
}

func (inf InputField) WithWidth(width int) InputField {
	return InputField{
		Content: inf.Content,
		Cursor:  inf.Cursor,
		Width:   width,
	}
}

func (inf InputField) InsertRune(r rune) InputField {
	runes := []rune(inf.Content)
	cursor := min(max(inf.Cursor, 0), len(runes))

	updated := make([]rune, 0, len(runes)+1)
	updated = append(updated, runes[:cursor]...)
	updated = append(updated, r)
	updated = append(updated, runes[cursor:]...)

	return InputField{
		Content: string(updated),
		Cursor:  cursor + 1,
		Width:   inf.Width,
	}
}

func (inf InputField) DeleteBackward() InputField {
	runes := []rune(inf.Content)
	cursor := min(inf.Cursor, len(runes))
	if cursor <= 0 {
		return inf
	}

	updated := append(runes[:cursor-1:cursor-1], runes[cursor:]...)
	return InputField{
		Content: string(updated),
		Cursor:  cursor - 1,
		Width:   inf.Width,
	}
}

func (inf InputField) DeleteForward() InputField {
	runes := []rune(inf.Content)
	if inf.Cursor >= len(runes) {
		return inf
	}

	updated := append(runes[:inf.Cursor:inf.Cursor], runes[inf.Cursor+1:]...)
	return InputField{
		Content: string(updated),
		Cursor:  inf.Cursor,
		Width:   inf.Width,
	}
}

func (inf InputField) MoveLeft() InputField  { return inf.WithCursor(inf.Cursor - 1) }
func (inf InputField) MoveRight() InputField { return inf.WithCursor(inf.Cursor + 1) }
func (inf InputField) Home() InputField      { return inf.WithCursor(0) }
func (inf InputField) End() InputField       { return inf.WithCursor(len([]rune(inf.Content))) }

func (inf InputField) IsEmpty() bool {
	return inf.Content == ""
}

func (inf InputField) Clear() InputField {
	return InputField{
		Content: "",
		Cursor:  0,
		Width:   inf.Width,
	}
}

// maxTabWidth caps a single tab label, in cells.
const maxTabWidth = 24

type Tab struct {
	Name     string
	Active   bool
	Activity bool
}

// TabBar lists the pages across the top row.
type TabBar struct {
	Tabs  []Tab
	Width int
}

func NewTabBar(width int) TabBar {
	return TabBar{Width: width}
}

func (tb TabBar) WithTabs(tabs []Tab) TabBar {
	return TabBar{Tabs: tabs, Width: tb.Width}
}

func (tb TabBar) WithWidth(width int) TabBar {
	return TabBar{Tabs: tb.Tabs, Width: width}
}

// Label returns the text drawn for tab i, numbered from 1 to match the
// Alt+digit bindings.
func (tb TabBar) Label(i int) string {
	label := fmt.Sprintf(" %d:%s ", i+1, tb.Tabs[i].Name)
	if runewidth.StringWidth(label) > maxTabWidth {
		label = truncate.StringWithTail(label, maxTabWidth-1, "…") + " "
	}
	return label
}

// FirstVisible returns the index of the leftmost tab to draw so that the
// active tab fits in Width.
func (tb TabBar) FirstVisible() int {
	active := 0
	for i, t := range tb.Tabs {
		if t.Active {
			active = i
		}
	}

	first := 0
	for first < active {
		used := 0
		for i := first; i <= active; i++ {
			used += runewidth.StringWidth(tb.Label(i))
		}
		if used <= tb.Width {
			break
		}
		first++
	}
	return first
}

// StatusBar is the bottom row.
type StatusBar struct {
	PageName   string
	Position   int
	PageCount  int
	Scrollback int
	Error      string
	Width      int
}

func NewStatusBar(width int) StatusBar {
	return StatusBar{Width: width}
}

func (sb StatusBar) WithPage(name string, position, count int) StatusBar {
	sb.PageName = name
	sb.Position = position
	sb.PageCount = count
	return sb
}

func (sb StatusBar) WithScrollback(lines int) StatusBar {
	sb.Scrollback = lines
	return sb
}

func (sb StatusBar) WithError(msg string) StatusBar {
	sb.Error = msg
	return sb
}

func (sb StatusBar) WithWidth(width int) StatusBar {
	sb.Width = width
	return sb
}

// Left is the page summary shown at the start of the row.
func (sb StatusBar) Left() string {
	return fmt.Sprintf(" %s [%d/%d]", sb.PageName, sb.Position+1, sb.PageCount)
}

// Right is the scroll indicator, empty at the bottom of the page.
func (sb StatusBar) Right() string {
	if sb.Scrollback == 0 {
		return ""
	}
	return fmt.Sprintf("-- scrolled %d -- ", sb.Scrollback)
}
