package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/PunithVT/livekit-voice-agent/config"
	"github.com/PunithVT/livekit-voice-agent/internal/app"
	"github.com/PunithVT/livekit-voice-agent/internal/command"
)

var (
	configPath    = flag.String("config", "config.json", "service configuration file")
	printCommands = flag.Bool("commands", false, "print the voice command reference and exit")
)

func main() {
	flag.Parse()
	if *printCommands {
		fmt.Print(command.MustSystem().Help())
		return
	}

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		*configPath = envPath
	}

	cfg := config.MustReadConfig(*configPath)

	tutor, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	// Block until Stop is called or an error occurs
	if err := tutor.Start(); err != nil {
		panic(err)
	}
}
