package tui

type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func NewRect(x, y, width, height int) Rect {
	return Rect{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func (r Rect) Right() int {
	return r.X + r.Width
}

func (r Rect) Bottom() int {
	return r.Y + r.Height
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

type Layout struct {
	ScreenWidth  int
	ScreenHeight int
}

func NewLayout(width, height int) Layout {
	return Layout{
		ScreenWidth:  width,
		ScreenHeight: height,
	}
}

// CalculateAreas splits the screen into the tab row, the page viewport,
// the input row and the status row, top to bottom.
func (l Layout) CalculateAreas() (tabArea, pageArea, inputArea, statusArea Rect) {
	tabHeight := 1
	inputHeight := 1
	statusHeight := 1
	pageHeight := l.ScreenHeight - tabHeight - inputHeight - statusHeight

	if pageHeight < 0 {
		pageHeight = 0
	}

	tabArea = NewRect(0, 0, l.ScreenWidth, tabHeight)
	pageArea = NewRect(0, tabHeight, l.ScreenWidth, pageHeight)
	inputArea = NewRect(0, tabHeight+pageHeight, l.ScreenWidth, inputHeight)
	statusArea = NewRect(0, tabHeight+pageHeight+inputHeight, l.ScreenWidth, statusHeight)

	return tabArea, pageArea, inputArea, statusArea
}
