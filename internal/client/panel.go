package client

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dice-conquest/internal/game"
	"dice-conquest/pkg/maps"
)

const (
	panelPadding = 12
	buttonHeight = 32
	sliderHeight = 34
	playerRowH   = 18
)

// layoutPanel positions the panel widgets along the right edge.
func (g *Game) layoutPanel() {
	x := g.boundaryX() + panelPadding
	w := g.panelWidth - 2*panelPadding

	// Widgets stack up from the bottom
	y := g.height - panelPadding
	for _, b := range []*Button{g.copySeedBtn, g.newMapBtn, g.endTurnBtn} {
		y -= buttonHeight
		b.X, b.Y, b.W, b.H = x, y, w, buttonHeight
		y -= 6
	}
	y -= 6
	for _, s := range []*Slider{g.diceSlider, g.cellsSlider, g.playersSlider} {
		y -= sliderHeight
		s.X, s.Y, s.W, s.H = x, y, w, sliderHeight
		y -= 4
	}
}

func (g *Game) updatePanel() {
	st := g.engine.Status()
	_, over := g.engine.Winner()
	idle := st == game.StatusHumanTurn && !g.engine.Settings().Autoplay

	g.endTurnBtn.Disabled = !idle || over
	g.newMapBtn.Disabled = !idle && !over

	g.endTurnBtn.Update()
	g.newMapBtn.Update()
	g.copySeedBtn.Update()
	g.playersSlider.Update()
	g.cellsSlider.Update()
	g.diceSlider.Update()
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	x0 := g.boundaryX()
	DrawPanel(screen, x0, 0, g.panelWidth, g.height)

	x := x0 + panelPadding
	y := panelPadding

	DrawText(screen, "DICE CONQUEST", x, y, ColorText)
	y += 20
	DrawText(screen, fmt.Sprintf("Round %d", g.engine.Round()), x, y, ColorTextMuted)
	y += 16

	players := g.engine.Players()
	winner, over := g.engine.Winner()
	if over {
		DrawText(screen, strings.ToUpper(string(players[winner].Color))+" WINS", x, y, ColorSuccess)
	} else {
		DrawText(screen, statusText(g.engine.Status(), g.engine.Current(), players), x, y, ColorText)
	}
	y += 24

	y = g.drawPlayers(screen, x, y)

	y += 10
	DrawText(screen, "Seed "+strconv.FormatInt(g.engine.Seed(), 10), x, y, ColorTextMuted)
	y += 16
	DrawText(screen, fmt.Sprintf("Side %d", g.engine.Grid().SideLength()), x, y, ColorTextMuted)
	y += 24

	if g.lastEvent != "" {
		DrawText(screen, g.lastEvent, x, y, ColorText)
		y += 16
	}
	if g.notice != "" && time.Now().Before(g.noticeUntil) {
		DrawText(screen, g.notice, x, y, ColorDanger)
	}

	g.playersSlider.Draw(screen)
	g.cellsSlider.Draw(screen)
	g.diceSlider.Draw(screen)
	g.endTurnBtn.Draw(screen)
	g.newMapBtn.Draw(screen)
	g.copySeedBtn.Draw(screen)
}

// drawPlayers lists every seat with its board totals and returns the next
// free y.
func (g *Game) drawPlayers(screen *ebiten.Image, x, y int) int {
	grid := g.engine.Grid()
	current := g.engine.Current()

	for i, p := range g.engine.Players() {
		owned := grid.Owned(i)
		dice := 0
		for _, t := range owned {
			dice += t.Dice
		}

		if i == current {
			vector.DrawFilledRect(screen, float32(x-4), float32(y-2), float32(g.panelWidth-2*panelPadding+8), playerRowH, ColorPanelLight, false)
		}
		vector.DrawFilledRect(screen, float32(x), float32(y+2), 10, 10, playerFill(p.Color), false)

		line := fmt.Sprintf("%-7s %2d cells %3d dice", p.Color, len(owned), dice)
		switch {
		case p.Eliminated:
			line = fmt.Sprintf("%-7s out", p.Color)
		case p.Reserve > 0:
			line += fmt.Sprintf(" +%d", p.Reserve)
		}
		DrawText(screen, line, x+16, y, ColorText)
		DrawText(screen, "group "+strconv.Itoa(maps.LargestGroup(grid, i)), x+16, y+12, ColorTextMuted)
		y += playerRowH + 12
	}
	return y
}

// statusText describes whose turn it is.
func statusText(st game.Status, current int, players []*game.Player) string {
	name := "?"
	if current >= 0 && current < len(players) {
		name = string(players[current].Color)
	}
	switch st {
	case game.StatusHumanTurn:
		if current == 0 {
			return "Your turn"
		}
		return name + " to move"
	case game.StatusAIActing:
		return name + " is thinking"
	case game.StatusCombatPending, game.StatusCombatResolving:
		return name + " attacks"
	}
	return st.String()
}

// describeEvent renders an engine event as a one-line message, or "" for
// events not worth showing.
func describeEvent(e game.Event, players []*game.Player) string {
	name := func(seat int) string {
		if seat >= 0 && seat < len(players) {
			return string(players[seat].Color)
		}
		return "seat " + strconv.Itoa(seat)
	}

	switch e.Type {
	case game.EventMapGenerated:
		return fmt.Sprintf("New map, %d cells", e.Count)
	case game.EventAttackSuccess:
		return fmt.Sprintf("%s took %s (%d vs %d)", name(e.Player), e.To, e.AttackPower, e.DefendPower)
	case game.EventAttackFailed:
		return fmt.Sprintf("%s held %s (%d vs %d)", name(e.Defender), e.To, e.AttackPower, e.DefendPower)
	case game.EventReinforce:
		return fmt.Sprintf("%s gets %d dice", name(e.Player), e.Dice)
	case game.EventPlayerEliminated:
		return name(e.Player) + " is out"
	case game.EventGameEnd:
		return name(e.Player) + " wins"
	}
	return ""
}
