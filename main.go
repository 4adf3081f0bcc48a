package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/floorknight/prefabs"
	"github.com/milk9111/floorknight/settings"
)

func main() {
	configPath := flag.String("config", "", "game yaml file (defaults to prefabs/game.yaml)")
	assetsDir := flag.String("assets", "", "asset directory (overrides game.yaml)")
	storeKind := flag.String("store", "", "settings store: yaml, badger or memory (overrides game.yaml)")
	storePath := flag.String("store-path", "", "settings file or badger directory (overrides game.yaml)")
	demo := flag.String("demo", "", "tengo script in prefabs/scripts that plays the game")
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.String("watch", "", "prefabs directory to load from and hot reload")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *watch != "" {
		prefabs.SetDir(*watch)
	}

	gameSpec, err := loadGameSpec(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal(err)
	}
	floorSpec, err := prefabs.LoadFloorSpec()
	if err != nil {
		log.Fatal(err)
	}

	kind, path := gameSpec.Settings.Store, gameSpec.Settings.Path
	if *storeKind != "" {
		kind = *storeKind
	}
	if *storePath != "" {
		path = *storePath
	}
	store, err := settings.Open(kind, path)
	if err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(Options{
		Game:      gameSpec,
		Player:    playerSpec,
		Floor:     floorSpec,
		Store:     store,
		AssetsDir: *assetsDir,
		Demo:      *demo,
		WatchDir:  *watch,
		Debug:     *debug,
	})
	if err != nil {
		_ = store.Close()
		log.Fatal(err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := gameSpec.Window.Width, gameSpec.Window.Height
	if w <= 0 || h <= 0 {
		w, h = ebiten.Monitor().Size()
	}
	ebiten.SetWindowSize(w, h)
	title := gameSpec.Title
	if title == "" {
		title = "floorknight"
	}
	ebiten.SetWindowTitle(title)

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}

func loadGameSpec(path string) (*prefabs.GameSpec, error) {
	if path == "" {
		return prefabs.LoadGameSpec()
	}
	spec, err := prefabs.LoadSpecFile[prefabs.GameSpec](path)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
