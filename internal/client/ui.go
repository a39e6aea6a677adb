package client

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dice-conquest/internal/game"
)

// Colors used in the UI
var (
	ColorBackground     = color.RGBA{20, 20, 30, 255}
	ColorPanel          = color.RGBA{30, 35, 50, 255}
	ColorPanelLight     = color.RGBA{45, 50, 70, 255}
	ColorPrimary        = color.RGBA{70, 130, 180, 255} // Steel blue
	ColorPrimaryHover   = color.RGBA{100, 160, 210, 255}
	ColorSecondary      = color.RGBA{60, 60, 80, 255}
	ColorSecondaryHover = color.RGBA{80, 80, 100, 255}
	ColorSuccess        = color.RGBA{50, 150, 80, 255}
	ColorDanger         = color.RGBA{180, 60, 60, 255}
	ColorText           = color.RGBA{220, 220, 230, 255}
	ColorTextMuted      = color.RGBA{140, 140, 160, 255}
	ColorBorder         = color.RGBA{60, 65, 80, 255}
	ColorHexEdge        = color.RGBA{10, 10, 15, 255}
)

// PlayerColors maps seat colors to fills.
var PlayerColors = map[game.PlayerColor]color.RGBA{
	game.ColorOrange: {255, 140, 0, 255},
	game.ColorCyan:   {0, 200, 200, 255},
	game.ColorGreen:  {50, 180, 50, 255},
	game.ColorYellow: {220, 200, 50, 255},
	game.ColorPurple: {160, 80, 200, 255},
	game.ColorRed:    {200, 50, 50, 255},
	game.ColorBlue:   {80, 100, 200, 255},
}

// playerFill returns the fill of a seat color, grey for unknown colors.
func playerFill(c game.PlayerColor) color.RGBA {
	if rgba, ok := PlayerColors[c]; ok {
		return rgba
	}
	return color.RGBA{100, 100, 100, 255}
}

// lighten brightens c by amount on every channel.
func lighten(c color.RGBA, amount uint8) color.RGBA {
	add := func(v uint8) uint8 {
		if int(v)+int(amount) > 255 {
			return 255
		}
		return v + amount
	}
	return color.RGBA{add(c.R), add(c.G), add(c.B), c.A}
}

// Button represents a clickable button.
type Button struct {
	X, Y, W, H int
	Text       string
	OnClick    func()
	Disabled   bool
	Primary    bool
	hovered    bool
}

// Update handles button input.
func (b *Button) Update() {
	if b.Disabled {
		b.hovered = false
		return
	}

	mx, my := ebiten.CursorPosition()
	b.hovered = mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H

	if b.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if b.OnClick != nil {
			b.OnClick()
		}
	}
}

// Draw renders the button.
func (b *Button) Draw(screen *ebiten.Image) {
	var bgColor color.RGBA
	switch {
	case b.Disabled:
		bgColor = ColorSecondary
	case b.Primary && b.hovered:
		bgColor = ColorPrimaryHover
	case b.Primary:
		bgColor = ColorPrimary
	case b.hovered:
		bgColor = ColorSecondaryHover
	default:
		bgColor = ColorSecondary
	}

	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bgColor, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, ColorBorder, false)

	textColor := ColorText
	if b.Disabled {
		textColor = ColorTextMuted
	}
	DrawTextCentered(screen, b.Text, b.X+b.W/2, b.Y+b.H/2-6, textColor)
}

// Slider picks an integer in [Min, Max] by dragging along a track.
type Slider struct {
	X, Y, W, H int
	Min, Max   int
	Value      int
	Label      string
	OnChange   func(int)
	dragging   bool
}

// SetRange changes the bounds and clamps the value into them.
func (s *Slider) SetRange(lo, hi int) {
	s.Min, s.Max = lo, max(lo, hi)
	s.Value = min(max(s.Value, s.Min), s.Max)
}

// valueAt maps a cursor x position onto the slider range.
func (s *Slider) valueAt(x int) int {
	if s.W <= 0 || s.Max <= s.Min {
		return s.Min
	}
	pos := min(max(x-s.X, 0), s.W)
	span := s.Max - s.Min
	return s.Min + (pos*span+s.W/2)/s.W
}

// Update handles slider input.
func (s *Slider) Update() {
	mx, my := ebiten.CursorPosition()
	inBounds := mx >= s.X && mx < s.X+s.W && my >= s.Y && my < s.Y+s.H

	if inBounds && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.dragging = true
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.dragging = false
	}
	if !s.dragging {
		return
	}

	if v := s.valueAt(mx); v != s.Value {
		s.Value = v
		if s.OnChange != nil {
			s.OnChange(v)
		}
	}
}

// Draw renders the slider with its label above the track.
func (s *Slider) Draw(screen *ebiten.Image) {
	DrawText(screen, s.Label+": "+strconv.Itoa(s.Value), s.X, s.Y, ColorText)

	trackY := float32(s.Y + s.H - 8)
	vector.DrawFilledRect(screen, float32(s.X), trackY, float32(s.W), 4, ColorPanelLight, false)

	knobX := float32(s.X)
	if s.Max > s.Min {
		knobX += float32(s.W) * float32(s.Value-s.Min) / float32(s.Max-s.Min)
	}
	vector.DrawFilledRect(screen, float32(s.X), trackY, knobX-float32(s.X), 4, ColorPrimary, false)

	knobColor := ColorPrimary
	if s.dragging {
		knobColor = ColorPrimaryHover
	}
	vector.DrawFilledCircle(screen, knobX, trackY+2, 6, knobColor, true)
}

// DrawPanel draws a panel background.
func DrawPanel(screen *ebiten.Image, x, y, w, h int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), ColorPanel, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, ColorBorder, false)
}

// DrawText draws text at a position.
func DrawText(screen *ebiten.Image, text string, x, y int, clr color.Color) {
	ebitenutil.DebugPrintAt(screen, text, x, y)
}

// DrawTextCentered draws text centered at a position.
func DrawTextCentered(screen *ebiten.Image, text string, x, y int, clr color.Color) {
	w := len(text) * 6
	ebitenutil.DebugPrintAt(screen, text, x-w/2, y)
}
