package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"vselect/internal/config"
	"vselect/internal/domain"
	"vselect/internal/eventbus"
	"vselect/internal/source"
	"vselect/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		optionFile string
		count      int
		multiple   bool
	)
	flag.StringVar(&configPath, "config", "", "Config file (default "+config.DefaultFileName+")")
	flag.StringVar(&configPath, "c", "", "Config file (shorthand)")
	flag.StringVar(&optionFile, "file", "", "Read options from a file, one per line")
	flag.StringVar(&optionFile, "f", "", "Read options from a file (shorthand)")
	flag.IntVar(&count, "count", -1, "Number of generated options")
	flag.IntVar(&count, "n", -1, "Number of generated options (shorthand)")
	flag.BoolVar(&multiple, "multiple", false, "Allow selecting several options")
	flag.BoolVar(&multiple, "m", false, "Allow selecting several options (shorthand)")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("vselect.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create event bus
	bus := eventbus.New()
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(domain.ConfigLoadedEvent); ok {
			log.Printf("Loaded config from %s", event.Path)
		}
	})

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the config file
	if optionFile != "" {
		cfg.Source.File = optionFile
	}
	if count >= 0 {
		cfg.Source.Count = count
		if optionFile == "" {
			cfg.Source.File = ""
		}
	}
	if multiple {
		cfg.Field.Multiple = true
	}

	opts, err := source.Load(ctx, cfg.Source)
	if err != nil {
		fmt.Printf("Error loading options: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Starting with %d options (multiple=%v)", len(opts), cfg.Field.Multiple)

	model := ui.NewModel(bus, cfg, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	model.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
			p.Quit()
		case <-ctx.Done():
		}
	}()

	// Run the UI
	log.Printf("Starting UI...")
	final, err := p.Run()
	if err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	if m, ok := final.(*ui.Model); ok {
		for _, v := range m.Field().Value() {
			fmt.Println(v)
		}
	}
}
