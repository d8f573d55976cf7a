package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
	"github.com/fraud-tools/scam-report-builder/pkg/services/template"
)

func NewTemplatesCmd(registry *template.Registry, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage report templates",
	}

	cmd.AddCommand(newTemplatesListCmd(registry, out))
	cmd.AddCommand(newTemplatesShowCmd(registry, out))
	cmd.AddCommand(newTemplatesSaveCmd(registry, out))
	cmd.AddCommand(newTemplatesDeleteCmd(registry, out))

	return cmd
}

func newTemplatesListCmd(registry *template.Registry, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates, built-ins first",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tpl := range registry.List() {
				kind := "custom"
				if tpl.Builtin {
					kind = "builtin"
				}
				fmt.Fprintf(out, "%-28s %-8s %s - %s\n", tpl.Key, kind, tpl.Name, tpl.Description)
			}
			return nil
		},
	}
}

func newTemplatesShowCmd(registry *template.Registry, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Print a template definition as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := registry.Get(args[0])
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(tpl, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(encoded))
			return nil
		},
	}
}

// templateFile is the JSON shape accepted by "templates save".
type templateFile struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Fields      map[string]domain.FieldDef `json:"fields"`
	Sections    []domain.TemplateSection   `json:"sections,omitempty"`
}

func newTemplatesSaveCmd(registry *template.Registry, out io.Writer) *cobra.Command {
	var filePath string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create a custom template from a definition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("read template definition: %w", err)
			}
			var def templateFile
			if err := json.Unmarshal(raw, &def); err != nil {
				return fmt.Errorf("parse template definition: %w", err)
			}

			key, err := registry.Save(def.Name, def.Description, def.Fields, def.Sections)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Template saved as %s\n", key)
			return nil
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "Path to the template definition JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newTemplatesDeleteCmd(registry *template.Registry, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a custom template (built-ins cannot be deleted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := registry.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Template %s deleted\n", args[0])
			return nil
		},
	}
}
