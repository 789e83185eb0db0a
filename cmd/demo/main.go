package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/scenetween/animation"
	"github.com/milk9111/scenetween/scene"
)

func main() {
	scenePath := flag.String("scene", "assets/scene.yaml", "scene spec to load")
	watch := flag.Bool("watch", true, "reload the scene when its files change")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	animation.Register()
	if err := scene.Register(materialDef); err != nil {
		logger.Fatal("register material", zap.Error(err))
	}

	if err := writeEmbeddedAssets(filepath.Dir(*scenePath)); err != nil {
		logger.Fatal("extract assets", zap.Error(err))
	}

	game, err := NewGame(logger, *scenePath, *watch)
	if err != nil {
		logger.Fatal("load scene", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("scenetween demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
