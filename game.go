package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/firstperson/ecs/system"
	"github.com/milk9111/firstperson/game"
	"github.com/milk9111/firstperson/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var backgroundColor = color.RGBA{R: 0x1b, G: 0x1d, B: 0x24, A: 0xff}

type Game struct {
	frames int
	debug  bool

	session *game.Session
	watcher *prefabs.Watcher
	logger  *zap.Logger
}

func NewGame(levelName, characterName string, debug bool, logger *zap.Logger) (*Game, error) {
	session, err := game.NewSession(game.Options{
		Level:     levelName,
		Character: characterName,
		Input:     system.NewInputSystem(),
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	return &Game{
		debug:   debug,
		session: session,
		logger:  logger,
	}, nil
}

func (g *Game) Update() error {
	g.frames++

	g.applyPrefabChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	// click captures the mouse for look input; escape releases it
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else if ebiten.CursorMode() != ebiten.CursorModeCaptured && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	g.session.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// applyPrefabChanges drains the watcher without blocking.
func (g *Game) applyPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.session.Reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("prefab watcher", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	system.DrawPhysicsDebug(g.session.Physics.Space(), g.session.World, screen)
	if g.debug {
		system.DrawCharacterDebug(g.session.World, screen)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 10, baseHeight-20)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
