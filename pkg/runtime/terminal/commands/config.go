package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fraud-tools/scam-report-builder/pkg/store/config"
)

func NewConfigCmd(cfg *config.Store, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change application settings",
	}

	cmd.AddCommand(newConfigShowCmd(cfg, out))
	cmd.AddCommand(newConfigSetFolderCmd(cfg, out))
	cmd.AddCommand(newConfigSetFormatCmd(cfg, out))

	return cmd
}

func newConfigShowCmd(cfg *config.Store, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := cfg.Settings()
			encoded, err := json.MarshalIndent(map[string]any{
				"last_report_number": settings.LastReportNumber,
				"numbering_format":   settings.NumberingFormat,
				"report_folder":      settings.ReportFolder,
				"last_used_folder":   settings.LastUsedFolder,
				"last_template_key":  settings.LastTemplateKey,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(encoded))
			return nil
		},
	}
}

func newConfigSetFolderCmd(cfg *config.Store, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "set-folder <dir>",
		Short: "Set the reports folder, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create reports folder: %w", err)
			}
			cfg.SetReportFolder(dir)
			fmt.Fprintf(out, "Reports will be saved to %s\n", dir)
			return nil
		},
	}
}

func newConfigSetFormatCmd(cfg *config.Store, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "set-format <format>",
		Short: "Set the numbering format, e.g. \"{number:04d}\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]
			if !strings.Contains(format, "{number") {
				return fmt.Errorf("numbering format %q has no {number} placeholder", format)
			}
			cfg.UpdateReportNumber(cfg.Settings().LastReportNumber, format)
			fmt.Fprintf(out, "Numbering format set to %s\n", format)
			return nil
		},
	}
}
