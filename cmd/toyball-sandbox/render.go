package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/toyball/input"
	"github.com/lixenwraith/toyball/particle"
	"github.com/lixenwraith/toyball/status"
	"github.com/lixenwraith/toyball/toyball"
	"github.com/lixenwraith/toyball/vmath"
)

const (
	hudRows    = 5
	hudColumns = 4
	hudWidth   = 26
)

var (
	styleFrame = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleHand  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHUD   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	stylePause = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
)

// pane is one projected view of the room
type pane struct {
	title   string
	x, y    int
	w, h    int
	project func(vmath.Vec3) (float64, float64) // world to pane-local meters, up is +
	originY float64                             // fraction of pane height where 0 sits, from the bottom
}

// renderer draws the room, hands and metrics each frame
type renderer struct {
	screen    tcell.Screen
	particles *particle.System
	hydra     *input.Hydra
	ctrl      *toyball.HandBallController
	reg       *status.Registry
	clock     interface{ IsPaused() bool }

	scale  float64
	floorY float64
}

// Update draws one frame
func (r *renderer) Update(time.Duration) {
	r.Draw()
}

// Draw renders the current state and flushes the screen
func (r *renderer) Draw() {
	r.screen.Clear()
	w, h := r.screen.Size()
	viewH := h - hudRows - 1
	if viewH < 4 || w < 8 {
		r.screen.Show()
		return
	}

	half := w / 2
	panes := []pane{
		{
			title: " front x/y ", x: 0, y: 0, w: half, h: viewH,
			project: func(p vmath.Vec3) (float64, float64) { return p.X, p.Y - r.floorY },
			originY: 0,
		},
		{
			title: " top x/z ", x: half, y: 0, w: w - half, h: viewH,
			project: func(p vmath.Vec3) (float64, float64) { return p.X, -p.Z },
			originY: 0.5,
		},
	}

	for _, p := range panes {
		r.drawFrame(p)
		if p.originY == 0 {
			r.drawFloor(p)
		}
		r.particles.Each(func(_ particle.ID, st particle.State) {
			glyph := 'o'
			if st.InHand {
				glyph = '@'
			}
			c := st.Color
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			r.plot(p, st.Position, glyph, style)
		})
		for _, side := range input.Sides {
			palm := r.hydra.SpatialPosition(input.MappingFor(side).Palm)
			r.plot(p, palm, handGlyph(side, r.ctrl.Hand(side).Held), styleHand)
		}
	}

	r.drawHUD(viewH, w)
	r.screen.Show()
}

// handGlyph is the side letter, uppercase while holding
func handGlyph(side input.Side, holding bool) rune {
	g := 'l'
	if side == input.Right {
		g = 'r'
	}
	if holding {
		g -= 'a' - 'A'
	}
	return g
}

// cell maps a world position into p, false when outside the pane interior
func (r *renderer) cell(p pane, pos vmath.Vec3) (int, int, bool) {
	u, v := p.project(pos)
	innerW, innerH := p.w-2, p.h-2

	cx := p.x + 1 + innerW/2 + int(math.Round(u*r.scale))
	base := p.y + p.h - 2 - int(math.Round(p.originY*float64(innerH-1)))
	cy := base - int(math.Round(v*r.scale/2))

	if cx <= p.x || cx >= p.x+p.w-1 || cy <= p.y || cy >= p.y+p.h-1 {
		return 0, 0, false
	}
	return cx, cy, true
}

func (r *renderer) plot(p pane, pos vmath.Vec3, glyph rune, style tcell.Style) {
	if x, y, ok := r.cell(p, pos); ok {
		r.screen.SetContent(x, y, glyph, nil, style)
	}
}

func (r *renderer) drawFrame(p pane) {
	right, bottom := p.x+p.w-1, p.y+p.h-1
	for x := p.x + 1; x < right; x++ {
		r.screen.SetContent(x, p.y, '─', nil, styleFrame)
		r.screen.SetContent(x, bottom, '─', nil, styleFrame)
	}
	for y := p.y + 1; y < bottom; y++ {
		r.screen.SetContent(p.x, y, '│', nil, styleFrame)
		r.screen.SetContent(right, y, '│', nil, styleFrame)
	}
	r.screen.SetContent(p.x, p.y, '┌', nil, styleFrame)
	r.screen.SetContent(right, p.y, '┐', nil, styleFrame)
	r.screen.SetContent(p.x, bottom, '└', nil, styleFrame)
	r.screen.SetContent(right, bottom, '┘', nil, styleFrame)
	r.drawText(p.x+2, p.y, p.title, styleFrame)
}

func (r *renderer) drawFloor(p pane) {
	y := p.y + p.h - 2
	for x := p.x + 1; x < p.x+p.w-1; x++ {
		r.screen.SetContent(x, y, '_', nil, styleFloor)
	}
}

func (r *renderer) drawHUD(top, w int) {
	metrics := r.reg.Snapshot()
	for i, m := range metrics {
		row, col := i%hudRows, i/hudRows
		if col >= hudColumns || (col+1)*hudWidth > w {
			break
		}
		r.drawText(col*hudWidth, top+row, fmt.Sprintf("%s %s", m.Key, m.Value), styleHUD)
	}

	line := top + hudRows
	help := "wasd/rf e c: left  ijkl/yh u n: right  p pause  m mute  q quit"
	if r.clock != nil && r.clock.IsPaused() {
		r.drawText(0, line, " PAUSED ", stylePause)
		r.drawText(9, line, help, styleHUD)
		return
	}
	r.drawText(0, line, help, styleHUD)
}

func (r *renderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
