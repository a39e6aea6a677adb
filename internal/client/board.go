package client

import (
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dice-conquest/internal/game"
	"dice-conquest/pkg/maps"
)

var (
	emptyImage    = ebiten.NewImage(3, 3)
	emptySubImage = emptyImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	emptyImage.Fill(color.White)
}

// drawBoard renders every territory left of the side panel.
func (g *Game) drawBoard(screen *ebiten.Image) {
	grid := g.engine.Grid()
	players := g.engine.Players()
	combat := g.engine.Combat()

	for _, t := range grid.CellsInViewport(g.boundaryX(), g.height) {
		fill := playerFill(players[t.Owner].Color)
		if t == combat.Attacker || t == combat.Defender {
			fill = lighten(fill, 70)
		}
		drawHex(screen, t, fill)
	}

	// Outline pass after all fills so shared edges are not overdrawn
	for _, t := range grid.CellsInViewport(g.boundaryX(), g.height) {
		edge, width := color.Color(ColorHexEdge), float32(1)
		if t == combat.Attacker || t == combat.Defender {
			edge, width = ColorText, 3
		}
		strokeHex(screen, t, edge, width)
		DrawTextCentered(screen, strconv.Itoa(t.Dice), t.Center.X, t.Center.Y-6, ColorText)
	}

	if combat.Stage == game.CombatResolving {
		g.drawRoll(screen, combat)
	}
}

// drawHex fills a territory's hexagon.
func drawHex(screen *ebiten.Image, t *maps.Territory, fill color.RGBA) {
	path := vector.Path{}
	path.MoveTo(float32(t.Boundary[0].X), float32(t.Boundary[0].Y))
	for _, v := range t.Boundary[1:] {
		path.LineTo(float32(v.X), float32(v.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(fill.R) / 255
		vs[i].ColorG = float32(fill.G) / 255
		vs[i].ColorB = float32(fill.B) / 255
		vs[i].ColorA = 1
	}
	screen.DrawTriangles(vs, is, emptySubImage, nil)
}

func strokeHex(screen *ebiten.Image, t *maps.Territory, clr color.Color, width float32) {
	for i, a := range t.Boundary {
		b := t.Boundary[(i+1)%len(t.Boundary)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}

// drawRoll shows both rolls between the attacker and the defender.
func (g *Game) drawRoll(screen *ebiten.Image, c game.Combat) {
	a, d := c.Attacker.Center, c.Defender.Center
	vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(d.X), float32(d.Y), 2, ColorText, true)

	label := strconv.Itoa(c.AttackPower) + " vs " + strconv.Itoa(c.DefendPower)
	x, y := (a.X+d.X)/2, (a.Y+d.Y)/2
	w := len(label)*6 + 10
	bg := ColorDanger
	if c.AttackPower > c.DefendPower {
		bg = ColorSuccess
	}
	vector.DrawFilledRect(screen, float32(x-w/2), float32(y-10), float32(w), 20, bg, false)
	DrawTextCentered(screen, label, x, y-7, ColorText)
}
