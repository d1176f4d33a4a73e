package main

import (
	"fmt"
	"image/color"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	topBarHeight    = 64.0
	statusBarHeight = 30.0
	gridMargin      = 14.0
	cellGap         = 3.0
)

type palette struct {
	background   color.Color
	cellFill     color.Color
	cellActive   color.Color
	cellStroke   color.Color
	label        color.Color
	keycap       color.Color
	barText      color.Color
	button       color.Color
	buttonActive color.Color
	buttonText   color.Color
}

var darkPalette = palette{
	background:   color.RGBA{0x18, 0x1a, 0x1f, 0xff},
	cellFill:     color.RGBA{0x2a, 0x2d, 0x36, 0xff},
	cellActive:   color.RGBA{0xe8, 0x9c, 0x30, 0xff},
	cellStroke:   color.RGBA{0x3c, 0x40, 0x4c, 0xff},
	label:        color.RGBA{0xd8, 0xda, 0xe0, 0xff},
	keycap:       color.RGBA{0x8a, 0x90, 0xa0, 0xff},
	barText:      color.RGBA{0xb0, 0xb4, 0xc0, 0xff},
	button:       color.RGBA{0x2a, 0x2d, 0x36, 0xff},
	buttonActive: color.RGBA{0x4a, 0x6f, 0xa5, 0xff},
	buttonText:   color.RGBA{0xe6, 0xe8, 0xee, 0xff},
}

var lightPalette = palette{
	background:   color.RGBA{0xf2, 0xf2, 0xf0, 0xff},
	cellFill:     color.RGBA{0xdf, 0xdf, 0xda, 0xff},
	cellActive:   color.RGBA{0xf0, 0xa0, 0x28, 0xff},
	cellStroke:   color.RGBA{0xc2, 0xc2, 0xbc, 0xff},
	label:        color.RGBA{0x28, 0x28, 0x2c, 0xff},
	keycap:       color.RGBA{0x70, 0x74, 0x80, 0xff},
	barText:      color.RGBA{0x48, 0x4a, 0x52, 0xff},
	button:       color.RGBA{0xdf, 0xdf, 0xda, 0xff},
	buttonActive: color.RGBA{0x5a, 0x86, 0xc2, 0xff},
	buttonText:   color.RGBA{0x20, 0x22, 0x28, 0xff},
}

var theme = &darkPalette

// gridGeom is the on-screen placement of the grid, recomputed from the
// live layout size every frame so pointer mapping stays correct at any
// window size.
type gridGeom struct {
	x, y float64
	cw   float64
	ch   float64
}

func computeGeom(w, h int) gridGeom {
	availW := float64(w) - 2*gridMargin
	availH := float64(h) - topBarHeight - statusBarHeight - 2*gridMargin
	side := availW
	if availH < side {
		side = availH
	}
	if side < gridSize {
		side = gridSize
	}
	cell := side / gridSize
	x := (float64(w) - cell*gridSize) / 2
	y := topBarHeight + gridMargin + (availH-cell*gridSize)/2
	return gridGeom{x: x, y: y, cw: cell, ch: cell}
}

// cellAt maps a screen position to a grid cell; ok is false outside the
// grid.
func (g gridGeom) cellAt(px, py int) (col, row int, ok bool) {
	fx := (float64(px) - g.x) / g.cw
	fy := (float64(py) - g.y) / g.ch
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	col, row = int(fx), int(fy)
	if col >= gridSize || row >= gridSize {
		return 0, 0, false
	}
	return col, row, true
}

func (g gridGeom) cellRect(col, row int) (x, y, w, h float32) {
	x = float32(g.x + float64(col)*g.cw + cellGap/2)
	y = float32(g.y + float64(row)*g.ch + cellGap/2)
	w = float32(g.cw - cellGap)
	h = float32(g.ch - cellGap)
	return x, y, w, h
}

type sourceButton struct {
	x, y, w, h float64
	label      string
	kind       sourceKind
}

func (b sourceButton) hit(px, py int) bool {
	fx, fy := float64(px), float64(py)
	return fx >= b.x && fx < b.x+b.w && fy >= b.y && fy < b.y+b.h
}

func sourceButtons(w int) []sourceButton {
	const bw, bh = 80.0, 28.0
	y := (topBarHeight - bh) / 2
	right := float64(w) - gridMargin
	return []sourceButton{
		{x: right - 2*bw - 8, y: y, w: bw, h: bh, label: "sine", kind: sourceSine},
		{x: right - bw, y: y, w: bw, h: bh, label: "piano", kind: sourcePiano},
	}
}

func formatFrequency(freq float64) string {
	return humanize.CommafWithDigits(freq, 2) + " Hz"
}

func drawScreen(screen *ebiten.Image, g *Game) {
	screen.Fill(theme.background)

	geom := computeGeom(g.w, g.h)
	active := g.disp.activeCells()
	keycaps := keycapForCells(g.disp.shift)

	drawTextAt(screen, "overtone", titleFace, gridMargin, (topBarHeight-24)/2, theme.label)

	selected := sourceKindFromString(gs.Source)
	for _, b := range sourceButtons(g.w) {
		fill := theme.button
		if b.kind == selected {
			fill = theme.buttonActive
		}
		vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), fill, false)
		vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 1, theme.cellStroke, false)
		drawTextCentered(screen, b.label, barFace, b.x+b.w/2, b.y+b.h/2, theme.buttonText)
	}

	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			idx := cellIndex(col, row)
			x, y, w, h := geom.cellRect(col, row)
			fill := theme.cellFill
			if active[idx] {
				fill = theme.cellActive
			}
			vector.DrawFilledRect(screen, x, y, w, h, fill, false)
			vector.StrokeRect(screen, x, y, w, h, 1, theme.cellStroke, false)

			cx := float64(x) + float64(w)/2
			cy := float64(y) + float64(h)/2
			drawTextCentered(screen, ratioLabel(idx), labelFace, cx, cy-4, theme.label)
			if kc, ok := keycaps[idx]; ok {
				drawTextCentered(screen, kc, keycapFace, cx, float64(y)+float64(h)-10, theme.keycap)
			}
		}
	}

	drawStatusBar(screen, g)
}

func drawStatusBar(screen *ebiten.Image, g *Game) {
	y := float64(g.h) - statusBarHeight + (statusBarHeight-14)/2

	left := fmt.Sprintf("source %s  ·  shift %+d", gs.Source, g.disp.shift)
	if gs.Mute {
		left += "  ·  muted"
	}
	drawTextAt(screen, left, barFace, gridMargin, y, theme.barText)

	var right string
	if g.disp.lastIndex >= 0 {
		right = fmt.Sprintf("%s  (%s)", formatFrequency(g.disp.lastFreq), ratioLabel(g.disp.lastIndex))
	} else {
		right = "drag the grid or play the keyboard · arrows shift rows · F1 help"
	}
	if gs.ShowFPS {
		right += fmt.Sprintf("  ·  %0.0f fps", ebiten.ActualFPS())
	}
	rw, _ := text.Measure(right, barFace, 0)
	drawTextAt(screen, right, barFace, float64(g.w)-gridMargin-rw, y, theme.barText)
}

func drawTextAt(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

func drawTextCentered(dst *ebiten.Image, s string, face text.Face, cx, cy float64, clr color.Color) {
	w, h := text.Measure(s, face, 0)
	drawTextAt(dst, s, face, cx-w/2, cy-h/2, clr)
}
