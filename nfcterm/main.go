package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"nfctag/nfcTerm/internal/api"
	"nfctag/nfcTerm/internal/config"
	"nfctag/nfcTerm/internal/logging"
	"nfctag/nfcTerm/internal/views"
)

var version = "dev"

func main() {
	configPath := pflag.String("config", config.DefaultPath(), "path to the config file")
	apiURL := pflag.String("api-url", "", "contact store base URL (overrides config)")
	exportDir := pflag.String("export-dir", "", "directory for exported .vcf files (overrides config)")
	debug := pflag.Bool("debug", false, "enable debug logging")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("nfcterm %s\n", version)
		return
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *exportDir != "" {
		cfg.ExportDir = *exportDir
	}
	if *debug {
		cfg.Debug = true
	}

	log := logging.New(cfg.LogFile, cfg.Debug)
	log.Info().Str("version", version).Str("api_url", cfg.APIURL).Msg("starting")

	client, err := api.NewClient(api.Config{
		BaseURL:    cfg.APIURL,
		Timeout:    cfg.Timeout,
		RetryCount: cfg.RetryCount,
	}, log)
	if err != nil {
		fmt.Printf("Error initializing store client: %v\n", err)
		os.Exit(1)
	}

	app := views.NewAppModel(client, cfg.ExportDir, log)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
