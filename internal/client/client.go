// Package client is the Ebitengine desktop front end of a local match.
package client

import (
	"errors"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"dice-conquest/internal/config"
	"dice-conquest/internal/game"
	"dice-conquest/pkg/maps"
)

// ResizeStep is the side length change of one mouse wheel notch.
const ResizeStep = 2

const noticeDuration = 3 * time.Second

// Game is the main Ebitengine game struct. It owns the engine and drives
// it from Update, so the engine is only touched on the game loop.
type Game struct {
	config *config.Config
	engine *game.Game

	width, height int
	panelWidth    int

	// Panel widgets
	endTurnBtn    *Button
	newMapBtn     *Button
	copySeedBtn   *Button
	playersSlider *Slider
	cellsSlider   *Slider
	diceSlider    *Slider

	// Right-drag panning
	dragging     bool
	dragX, dragY int

	lastEvent   string
	notice      string
	noticeUntil time.Time
}

// NewGame wraps an engine in a window sized from cfg.
func NewGame(cfg *config.Config, engine *game.Game) *Game {
	InitClipboard()

	g := &Game{
		config:     cfg,
		engine:     engine,
		width:      cfg.View.Width,
		height:     cfg.View.Height,
		panelWidth: cfg.View.PanelWidth,
	}
	engine.Subscribe(g.onEvent)

	gen := engine.GeneratorOptions()
	g.endTurnBtn = &Button{Text: "End turn (Space)", Primary: true, OnClick: g.endTurn}
	g.newMapBtn = &Button{Text: "New map (A)", OnClick: g.newMap}
	g.copySeedBtn = &Button{Text: "Copy seed (C)", OnClick: g.copySeed}

	g.playersSlider = &Slider{Label: "Players", Min: 2, Max: game.MaxPlayers, Value: gen.Players}
	g.cellsSlider = &Slider{Label: "Cells", Min: gen.Players, Max: cfg.Grid.Rows * cfg.Grid.Cols, Value: gen.Cells}
	g.diceSlider = &Slider{Label: "Avg dice", Min: 3, Max: gen.MaxDice - 2, Value: gen.AverageDice}
	g.playersSlider.OnChange = func(n int) {
		g.cellsSlider.SetRange(n, g.cellsSlider.Max)
	}

	g.layoutPanel()
	return g
}

// boundaryX is the right edge of the board area.
func (g *Game) boundaryX() int {
	return g.width - g.panelWidth
}

func (g *Game) onEvent(e game.Event) {
	if text := describeEvent(e, g.engine.Players()); text != "" {
		g.lastEvent = text
	}
}

// Update handles input and advances the engine one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.updatePanel()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.endTurn()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.newMap()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copySeed()
	}

	g.handleWheel()
	g.handleDrag()
	g.handleClick()

	g.engine.Tick()
	return nil
}

func (g *Game) handleWheel() {
	_, dy := ebiten.Wheel()
	switch {
	case dy > 0:
		g.engine.ResizeRequest(ResizeStep)
	case dy < 0:
		g.engine.ResizeRequest(-ResizeStep)
	}
}

func (g *Game) handleDrag() {
	mx, my := ebiten.CursorPosition()
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		g.dragging = false
		return
	}
	if g.dragging && (mx != g.dragX || my != g.dragY) {
		g.engine.PanRequest(maps.Point{X: mx - g.dragX, Y: my - g.dragY})
	}
	g.dragging = true
	g.dragX, g.dragY = mx, my
}

func (g *Game) handleClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx >= g.boundaryX() {
		return
	}

	err := g.engine.Select(maps.Point{X: mx, Y: my})
	switch {
	case err == nil:
	case errors.Is(err, game.ErrInvalidTarget), errors.Is(err, game.ErrNoAttackSource):
		g.engine.CancelAttack()
	default:
		log.Debug().Err(err).Int("x", mx).Int("y", my).Msg("Selection rejected")
	}
}

func (g *Game) endTurn() {
	if err := g.engine.RequestTurnEnd(); err != nil {
		g.showNotice(err.Error())
	}
}

func (g *Game) newMap() {
	opts := g.engine.GeneratorOptions()
	opts.Players = g.playersSlider.Value
	opts.Cells = g.cellsSlider.Value
	opts.AverageDice = g.diceSlider.Value

	if err := g.engine.RequestNewMapWith(opts); err != nil {
		log.Warn().Err(err).Msg("New map rejected")
		g.showNotice(err.Error())
	}
}

func (g *Game) copySeed() {
	seed := strconv.FormatInt(g.engine.Seed(), 10)
	if CopyToClipboard(seed) {
		g.showNotice("Seed " + seed + " copied")
		return
	}
	g.showNotice("Clipboard unavailable")
}

func (g *Game) showNotice(text string) {
	g.notice = text
	g.noticeUntil = time.Now().Add(noticeDuration)
}

// Draw renders the board and the side panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)
	g.drawBoard(screen)
	g.drawPanel(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
