package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"carosearch/internal/api"
	"carosearch/internal/config"
	"carosearch/internal/eventbus"
	"carosearch/internal/logic"
	"carosearch/internal/router"
	"carosearch/internal/search"
	"carosearch/internal/ui"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-config path] [location]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "location is a listing query such as 'make=Toyota&year_min=2015'\n")
		fmt.Fprintf(os.Stderr, "or a page such as '/vehicle/42'.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Printf("Error loading .env: %v\n", err)
		os.Exit(1)
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(bus, configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	start := flag.Arg(0)
	if start == "" && cfg.UISettings.AutosaveOnExit {
		start = cfg.LastLocation
	}
	listing, startPath, err := startLocation(start)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	history, err := router.NewHistory(listing)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	client, err := api.New(api.Options{
		BaseURL:     cfg.API.BaseURL,
		Environment: api.Environment(cfg.API.Environment),
		Token:       cfg.API.Token,
		Timeout:     cfg.Timeout(),
		RateLimit:   cfg.API.RateLimit,
	})
	if err != nil {
		fmt.Printf("Error creating API client: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Using API at %s", client.BaseURL())

	// Search service subscribes to request events automatically
	_ = search.NewSearchService(bus, client, logic.NewMemoryListingStore(cfg.CacheTTL(), nil), cfg.Timeout())

	// Persist saved searches as they change. The UI owns cfg, so save a copy.
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			saved := *cfg
			saved.SavedSearches = maps.Clone(event.SavedSearches)
			if err := configSvc.Save(&saved); err != nil {
				log.Printf("Failed to save config: %v", err)
			} else {
				log.Printf("Config saved")
			}
		}
	})

	log.Printf("Creating UI model...")
	uiModel := ui.NewModel(ui.Options{
		Bus:       bus,
		Config:    cfg,
		Store:     logic.NewMemoryFilterStore(),
		History:   history,
		StartPath: startPath,
	})

	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Results arrive on the bus goroutine; hand them to the program
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventVehicleLoaded,
		eventbus.EventDealerLoaded,
		eventbus.EventFacetsLoaded,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, forwardEvent)
	}
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	uiModel.Close()
	log.Printf("UI exited normally")

	location := uiModel.Location()
	if cfg.UISettings.AutosaveOnExit {
		cfg.LastLocation = location
		if err := configSvc.Save(cfg); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	}
	fmt.Println(location)
}

// startLocation splits the command line location into the listing entry
// the history starts from and an optional page opened on top of it.
func startLocation(arg string) (listing, page string, err error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return router.ListingPath, "", nil
	}
	if !strings.HasPrefix(arg, "/") && !strings.Contains(arg, "://") {
		arg = router.ListingPath + "?" + strings.TrimPrefix(arg, "?")
	}
	loc, err := router.ParseLocation(arg)
	if err != nil {
		return "", "", err
	}

	switch router.Match(loc.Path).Page {
	case router.PageListing:
		return router.ListingPath + queryPart(loc.Query), "", nil
	case router.PageVehicle, router.PageDealer:
		return router.ListingPath, loc.String(), nil
	}
	return "", "", fmt.Errorf("no page at %q", loc.Path)
}

func queryPart(query string) string {
	if query == "" {
		return ""
	}
	return "?" + query
}
