package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// testField maps 10 world units to one cell on a 10x10 grid
var testField = physics.Rect{Width: 100, Height: 100}

func newTestTank(side entity.Side, x, y float64) *entity.Tank {
	return entity.NewTank(entity.GenerateID(), side, entity.TankStats{Width: 18, Height: 18},
		physics.Vector2D{X: x, Y: y}, 0)
}

func TestNewTerminalRenderer_Dimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"small", 10, 5, 10, 5},
		{"medium", 80, 24, 80, 24},
		{"degenerate", 0, -3, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTerminalRenderer(&bytes.Buffer{}, testField, tt.width, tt.height)

			if r.width != tt.wantW || r.height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", r.width, r.height, tt.wantW, tt.wantH)
			}
			if len(r.buffer) != tt.wantH {
				t.Fatalf("buffer height = %d, want %d", len(r.buffer), tt.wantH)
			}
			for i, row := range r.buffer {
				if len(row) != tt.wantW {
					t.Errorf("row %d: width %d, want %d", i, len(row), tt.wantW)
				}
				for _, c := range row {
					if c != GlyphEmpty {
						t.Fatalf("new buffer not blank: %q", c)
					}
				}
			}
		})
	}
}

func TestTerminalRenderer_WorldToScreen(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, testField, 10, 10)

	tests := []struct {
		name     string
		pos      physics.Vector2D
		col, row int
	}{
		{"bottom left", physics.Vector2D{X: 0, Y: 0}, 0, 9},
		{"top right", physics.Vector2D{X: 99, Y: 99}, 9, 0},
		{"center", physics.Vector2D{X: 50, Y: 50}, 5, 4},
		{"below field", physics.Vector2D{X: 5, Y: -5}, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := r.worldToScreen(tt.pos)
			if col != tt.col || row != tt.row {
				t.Errorf("worldToScreen(%v) = (%d, %d), want (%d, %d)", tt.pos, col, row, tt.col, tt.row)
			}
		})
	}
}

func TestTerminalRenderer_Glyphs(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, testField, 10, 10)

	wreck := newTestTank(entity.Hostile, 85, 15)
	wreck.Dead = true

	r.RenderTank(newTestTank(entity.Allied, 15, 85))
	r.RenderTank(newTestTank(entity.Hostile, 85, 85))
	r.RenderTank(wreck)
	r.RenderShot(entity.NewShot(entity.GenerateID(), entity.Allied, physics.Vector2D{X: 55, Y: 5}, 2, 2, 100, 0, 1))
	r.RenderExplosion(entity.NewExplosion(entity.GenerateID(), entity.KillExplosion, physics.Vector2D{X: 95, Y: 95}, 5, 0.1))
	r.RenderExplosion(entity.NewExplosion(entity.GenerateID(), entity.SmokeExplosion, physics.Vector2D{X: 5, Y: 5}, 5, 0.1))

	tests := []struct {
		name     string
		col, row int
		want     rune
	}{
		{"allied tank", 1, 1, GlyphAllied},
		{"hostile tank", 8, 1, GlyphHostile},
		{"wreck", 8, 8, GlyphWreck},
		{"shot", 5, 9, GlyphShot},
		{"kill explosion", 9, 0, GlyphExplosion},
		{"smoke", 0, 9, GlyphSmoke},
		{"empty", 5, 5, GlyphEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.buffer[tt.row][tt.col]; got != tt.want {
				t.Errorf("cell (%d, %d) = %q, want %q\n%s", tt.col, tt.row, got, tt.want, r.String())
			}
		})
	}
}

func TestTerminalRenderer_LargeTankFillsCells(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, testField, 10, 10)
	tank := entity.NewTank(entity.GenerateID(), entity.Allied, entity.TankStats{Width: 30, Height: 30},
		physics.Vector2D{X: 52, Y: 52}, 0)

	r.RenderTank(tank)

	if n := strings.Count(r.String(), string(GlyphAllied)); n != 9 {
		t.Errorf("tank covers %d cells, want 9\n%s", n, r.String())
	}
}

func TestTerminalRenderer_Tracks(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, testField, 10, 10)

	fresh := entity.NewTrackPrint(entity.GenerateID(), physics.Rect{X: 40, Y: 40, Width: 20, Height: 20}, 0, 5)
	faded := entity.NewTrackPrint(entity.GenerateID(), physics.Rect{X: 0, Y: 0, Width: 20, Height: 20}, 0, 5)
	faded.Update(6)

	r.RenderTrack(fresh)
	r.RenderTrack(faded)

	if got := r.buffer[4][5]; got != GlyphTrack {
		t.Errorf("fresh track cell = %q, want %q", got, GlyphTrack)
	}
	if got := r.buffer[9][0]; got != GlyphEmpty {
		t.Errorf("faded track drawn as %q", got)
	}
}

func TestTerminalRenderer_OutOfBoundsIgnored(t *testing.T) {
	r := NewTerminalRenderer(&bytes.Buffer{}, testField, 10, 10)

	r.RenderShot(entity.NewShot(entity.GenerateID(), entity.Allied, physics.Vector2D{X: 50, Y: 150}, 2, 2, 1, 0, 1))
	r.RenderShot(entity.NewShot(entity.GenerateID(), entity.Allied, physics.Vector2D{X: -50, Y: 50}, 2, 2, 1, 0, 1))

	if strings.ContainsRune(r.String(), GlyphShot) {
		t.Errorf("off-field shot drawn:\n%s", r.String())
	}
}

func TestTerminalRenderer_ClearAndPresent(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, testField, 4, 2)

	r.RenderShot(entity.NewShot(entity.GenerateID(), entity.Allied, physics.Vector2D{X: 10, Y: 10}, 2, 2, 1, 0, 1))
	r.Present()

	want := "+----+\n|    |\n||   |\n+----+\n"
	if out.String() != want {
		t.Errorf("Present() wrote\n%q\nwant\n%q", out.String(), want)
	}

	out.Reset()
	r.Clear()
	r.SetANSI(true)
	r.Present()

	if !strings.HasPrefix(out.String(), clearScreen) {
		t.Errorf("ANSI frame does not start with the clear sequence: %q", out.String())
	}
	if strings.ContainsRune(out.String(), GlyphShot) {
		t.Error("Clear() left the shot in the buffer")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestTerminalRenderer_WriteError(t *testing.T) {
	r := NewTerminalRenderer(failingWriter{}, testField, 4, 2)

	r.Present()
	if r.Err() == nil {
		t.Fatal("Err() = nil after a failed write")
	}
	r.Present()
	if r.Err().Error() != "broken pipe" {
		t.Errorf("Err() = %v, want the first write error", r.Err())
	}
}
