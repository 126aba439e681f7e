package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/firstperson/game"
	"github.com/milk9111/firstperson/logging"
	"github.com/milk9111/firstperson/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and development logging")
	watch := flag.Bool("watch", false, "reload prefabs from disk when they change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", game.DefaultLevel, "level prefab (e.g. level.yaml)")
	characterName := flag.String("character", game.DefaultCharacter, "character prefab")
	flag.Parse()

	logger, err := logging.New(logging.FromEnv(*debug))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("firstperson")

	g, err := NewGame(*levelName, *characterName, *debug, logger)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}

	if *watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.Warn("prefab watcher disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		} else {
			defer w.Close()
			g.watcher = w
		}
	}

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}
