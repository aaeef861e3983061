package tui

import (
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/gdamore/tcell/v2"
)

var parsers = sync.Pool{
	New: func() any {
		p := ansi.NewParser()
		p.SetDataSize(256)
		return p
	},
}

// RenderLine draws text at (x, y) and stops before maxX. SGR escape
// sequences in text switch the style; everything else is skipped. It
// returns the column after the last drawn cell.
func RenderLine(screen tcell.Screen, x, y, maxX int, text string, base tcell.Style) int {
	p := parsers.Get().(*ansi.Parser)
	defer parsers.Put(p)

	var pen cellbuf.Style
	var state byte
	for len(text) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(text, state, p)
		state = newState
		text = text[n:]

		switch {
		case width > 0:
			if x+width > maxX {
				return x
			}
			runes := []rune(seq)
			screen.SetContent(x, y, runes[0], runes[1:], cellStyle(pen, base))
			x += width
		case ansi.HasCsiPrefix(seq) && p.Command() == 'm':
			cellbuf.ReadStyle(p.Params(), &pen)
		}
	}
	return x
}

// cellStyle layers a decoded pen over base. Unset pen colours keep the
// base colours.
func cellStyle(pen cellbuf.Style, base tcell.Style) tcell.Style {
	style := base
	if pen.Fg != nil {
		style = style.Foreground(tcellColor(pen.Fg))
	}
	if pen.Bg != nil {
		style = style.Background(tcellColor(pen.Bg))
	}

	attrs := pen.Attrs
	if attrs&cellbuf.BoldAttr != 0 {
		style = style.Bold(true)
	}
	if attrs&cellbuf.FaintAttr != 0 {
		style = style.Dim(true)
	}
	if attrs&cellbuf.ItalicAttr != 0 {
		style = style.Italic(true)
	}
	if attrs&(cellbuf.SlowBlinkAttr|cellbuf.RapidBlinkAttr) != 0 {
		style = style.Blink(true)
	}
	if attrs&cellbuf.ReverseAttr != 0 {
		style = style.Reverse(true)
	}
	if attrs&cellbuf.StrikethroughAttr != 0 {
		style = style.StrikeThrough(true)
	}
	if pen.UlStyle != cellbuf.NoUnderline {
		style = style.Underline(true)
	}
	return style
}

func tcellColor(c ansi.Color) tcell.Color {
	switch c := c.(type) {
	case ansi.BasicColor:
		return tcell.PaletteColor(int(c))
	case ansi.ExtendedColor:
		return tcell.PaletteColor(int(c))
	case ansi.TrueColor:
		return tcell.NewHexColor(int32(c))
	default:
		r, g, b, a := c.RGBA()
		if a == 0 {
			return tcell.ColorDefault
		}
		return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
	}
}
