package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"shmup/internal/config"
	"shmup/internal/enemy"
	"shmup/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	// Load configuration
	cfg := config.MustLoadConfig(envOr("SHMUP_CONFIG", "config.yaml"))

	// Load enemy definitions
	defs := enemy.MustLoadEnemyConfig(envOr("SHMUP_ENEMIES", "assets/enemies.yaml"))

	seed := time.Now().UnixNano()
	if s := os.Getenv("SHMUP_SEED"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			log.Fatalf("invalid SHMUP_SEED %q: %v", s, err)
		}
		seed = v
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.GetTPS())
	ebiten.SetWindowClosingHandled(true)

	g, err := game.NewGame(cfg, defs, seed, game.NewHighScoreStore(game.OpenStorage()))
	if err != nil {
		log.Fatal(err)
	}
	g.EnablePerfDebug(os.Getenv("SHMUP_PERF_DEBUG") != "")

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
