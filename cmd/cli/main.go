package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/fraud-tools/scam-report-builder/pkg/runtime/terminal"
	"github.com/fraud-tools/scam-report-builder/pkg/services/odt"
	"github.com/fraud-tools/scam-report-builder/pkg/services/report"
	"github.com/fraud-tools/scam-report-builder/pkg/services/template"
	"github.com/fraud-tools/scam-report-builder/pkg/store/config"
	"github.com/fraud-tools/scam-report-builder/pkg/store/snapshot"
	"github.com/fraud-tools/scam-report-builder/pkg/store/templates"
)

const (
	configFileName  = "scam_report_config.json"
	snapshotDirName = ".report_data"
	templateDirName = "custom_templates"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	home := os.Getenv("SCAM_REPORT_HOME")
	if home == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		home = cwd
	}

	cfg := config.NewStore(filepath.Join(home, configFileName), logger)

	templateStore, err := templates.NewStore(filepath.Join(home, templateDirName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	registry := template.NewRegistry(templateStore, logger)

	snapshots, err := snapshot.NewStore(filepath.Join(home, snapshotDirName), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reports := report.NewService(cfg, registry, odt.NewAssembler(logger), snapshots, logger)

	cli := terminal.NewCLI(terminal.Options{
		Reports:   reports,
		Templates: registry,
		Config:    cfg,
		Output:    os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
