package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"mino/config"
	"mino/editor"
	"mino/terminal"
	"mino/version"
)

var (
	initConfig  = flag.Bool("init-config", false, "Create a default config file and exit.")
	showVersion = flag.Bool("version", false, "Show version information and exit.")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("mino %s\n", version.GetFullVersion())
		os.Exit(0)
	}

	if *initConfig {
		if err := config.SaveConfig(config.DefaultConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cfg := config.LoadConfig()

	if cfg.EnableLogger {
		f, err := os.OpenFile("mino.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.Println("--- mino started ---")
	} else {
		log.SetOutput(io.Discard)
	}

	var filename string
	args := flag.Args()
	if len(args) > 1 {
		fmt.Println("Usage: mino [filename]")
		os.Exit(1)
	}
	if len(args) == 1 {
		filename = args[0]
	}

	term := terminal.New()
	defer term.Close()

	e, err := editor.NewEditor(term, nil, cfg, filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing editor: %v\n", err)
		log.Printf("init failed: %v", err)
		os.Exit(1)
	}

	if err := e.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running editor: %v\n", err)
		log.Printf("run failed: %v", err)
		os.Exit(1)
	}

	log.Println("--- mino exited cleanly ---")
}
