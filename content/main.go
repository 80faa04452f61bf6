package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"dog-tennis-catch/content/app"
	"dog-tennis-catch/content/config"
)

var (
	configPath = flag.String("config", "", "TOML tuning file, empty for defaults")
	seed       = flag.Int64("seed", 0, "random seed, 0 uses the current time")
)

func main() {
	flag.Parse()

	t, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	g := app.NewGame(t, *seed)
	ebiten.SetWindowSize(int(t.Width), int(t.Height))
	ebiten.SetWindowTitle("Dog Tennis Catch")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
