package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fraud-tools/scam-report-builder/pkg/server"
	"github.com/fraud-tools/scam-report-builder/pkg/services/odt"
	"github.com/fraud-tools/scam-report-builder/pkg/services/report"
	"github.com/fraud-tools/scam-report-builder/pkg/services/template"
	"github.com/fraud-tools/scam-report-builder/pkg/store/config"
	"github.com/fraud-tools/scam-report-builder/pkg/store/snapshot"
	"github.com/fraud-tools/scam-report-builder/pkg/store/templates"
)

var homeDir string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the scam report builder",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&homeDir, "home", "d", "",
		"Directory holding the config file, snapshots and custom templates (default is the working directory)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	home := homeDir
	if home == "" {
		home = os.Getenv("SCAM_REPORT_HOME")
	}
	if home == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
		home = cwd
	}

	cfg := config.NewStore(filepath.Join(home, "scam_report_config.json"), logger)

	templateStore, err := templates.NewStore(filepath.Join(home, "custom_templates"))
	if err != nil {
		return fmt.Errorf("failed to create template store: %w", err)
	}
	registry := template.NewRegistry(templateStore, logger)

	snapshots, err := snapshot.NewStore(filepath.Join(home, ".report_data"), logger)
	if err != nil {
		return fmt.Errorf("failed to create snapshot store: %w", err)
	}

	reports := report.NewService(cfg, registry, odt.NewAssembler(logger), snapshots, logger)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Reports:   reports,
			Templates: registry,
		},
	})

	return api.Start()
}
