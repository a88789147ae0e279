package render

import (
	"io"
	"math"
	"strings"

	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// Glyphs drawn by the terminal renderer, lowest layer first
const (
	GlyphEmpty     = ' '
	GlyphTrack     = '.'
	GlyphAllied    = 'A'
	GlyphHostile   = 'H'
	GlyphWreck     = 'x'
	GlyphShot      = '|'
	GlyphSmoke     = 'o'
	GlyphExplosion = '*'
)

const clearScreen = "\033[H\033[2J"

// TerminalRenderer provides a simple ASCII rendering of the battlefield.
// World y grows upwards, so row 0 is the top edge of the field.
type TerminalRenderer struct {
	out    io.Writer
	field  physics.Rect
	width  int
	height int
	buffer [][]rune
	ansi   bool
	err    error
}

// NewTerminalRenderer creates a renderer drawing field into a width x height
// character grid written to out on every Present.
func NewTerminalRenderer(out io.Writer, field physics.Rect, width, height int) *TerminalRenderer {
	width = max(width, 1)
	height = max(height, 1)

	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	r := &TerminalRenderer{
		out:    out,
		field:  field,
		width:  width,
		height: height,
		buffer: buffer,
	}
	r.Clear()
	return r
}

// SetANSI enables clearing the terminal before each frame
func (r *TerminalRenderer) SetANSI(enabled bool) {
	r.ansi = enabled
}

// Err returns the first write error, if any
func (r *TerminalRenderer) Err() error {
	return r.err
}

// worldToScreen converts world coordinates to a grid cell
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	col := int(math.Floor((pos.X - r.field.X) / r.field.Width * float64(r.width)))
	row := r.height - 1 - int(math.Floor((pos.Y-r.field.Y)/r.field.Height*float64(r.height)))
	return col, row
}

func (r *TerminalRenderer) inBounds(col, row int) bool {
	return col >= 0 && col < r.width && row >= 0 && row < r.height
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, glyph rune) {
	col, row := r.worldToScreen(pos)
	if r.inBounds(col, row) {
		r.buffer[row][col] = glyph
	}
}

// fill sets every cell whose center lies inside rect, or the cell under
// its center when the rectangle is smaller than a cell.
func (r *TerminalRenderer) fill(rect physics.Rect, glyph rune) {
	cellW := r.field.Width / float64(r.width)
	cellH := r.field.Height / float64(r.height)

	drawn := false
	for row := 0; row < r.height; row++ {
		cy := r.field.Y + (float64(r.height-1-row)+0.5)*cellH
		if cy < rect.Y || cy > rect.Y+rect.Height {
			continue
		}
		for col := 0; col < r.width; col++ {
			cx := r.field.X + (float64(col)+0.5)*cellW
			if cx < rect.X || cx > rect.X+rect.Width {
				continue
			}
			r.buffer[row][col] = glyph
			drawn = true
		}
	}
	if !drawn {
		r.plot(rect.Center(), glyph)
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = GlyphEmpty
		}
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	if r.err != nil {
		return
	}

	var sb strings.Builder
	if r.ansi {
		sb.WriteString(clearScreen)
	}

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	sb.WriteString(border)
	for y := range r.buffer {
		sb.WriteByte('|')
		sb.WriteString(string(r.buffer[y]))
		sb.WriteString("|\n")
	}
	sb.WriteString(border)

	_, r.err = io.WriteString(r.out, sb.String())
}

// String returns the current buffer without borders
func (r *TerminalRenderer) String() string {
	rows := make([]string, len(r.buffer))
	for y := range r.buffer {
		rows[y] = string(r.buffer[y])
	}
	return strings.Join(rows, "\n")
}

// RenderTrack implements entity.Renderer
func (r *TerminalRenderer) RenderTrack(track *entity.TrackPrint) {
	if track.Alpha() <= 0 {
		return
	}
	r.fill(track.Footprint, GlyphTrack)
}

// RenderTank implements entity.Renderer
func (r *TerminalRenderer) RenderTank(tank *entity.Tank) {
	glyph := GlyphAllied
	switch {
	case tank.Dead:
		glyph = GlyphWreck
	case tank.Side == entity.Hostile:
		glyph = GlyphHostile
	}
	r.fill(tank.Bounds(), glyph)
}

// RenderShot implements entity.Renderer
func (r *TerminalRenderer) RenderShot(shot *entity.Shot) {
	r.plot(shot.Position, GlyphShot)
}

// RenderExplosion implements entity.Renderer
func (r *TerminalRenderer) RenderExplosion(explosion *entity.Explosion) {
	glyph := GlyphExplosion
	if explosion.Kind == entity.SmokeExplosion {
		glyph = GlyphSmoke
	}
	r.plot(explosion.Position, glyph)
}

var _ entity.Renderer = (*TerminalRenderer)(nil)
