package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fraud-tools/scam-report-builder/pkg/services/report"
)

type ModifyCmd struct {
	snapshotPath string
	inputPath    string
	outputPath   string
	attachments  []string
	reports      *report.Service
	out          io.Writer
}

// NewModifyCmd regenerates a previously exported report from its snapshot,
// optionally with replaced data or extra attachments. Numbering and the
// original output path are preserved.
func NewModifyCmd(reports *report.Service, out io.Writer) *cobra.Command {
	mc := &ModifyCmd{reports: reports, out: out}
	cmd := &cobra.Command{
		Use:   "modify",
		Short: "Re-export a previously generated report from its snapshot",
		RunE:  mc.run,
	}

	cmd.Flags().StringVar(&mc.snapshotPath, "snapshot", "", "Path to the report's snapshot JSON file")
	cmd.Flags().StringVar(&mc.inputPath, "input", "", "Replacement report data JSON file (default: snapshot contents)")
	cmd.Flags().StringVar(&mc.outputPath, "out", "", "Destination .odt path (default: the report's original location)")
	cmd.Flags().StringArrayVar(&mc.attachments, "attach", nil, "Attach an additional evidence image as category=path")

	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

func (mc *ModifyCmd) run(cmd *cobra.Command, args []string) error {
	req, err := mc.reports.Reopen(mc.snapshotPath)
	if err != nil {
		return err
	}

	if mc.inputPath != "" {
		content, images, templateKey, err := readReportFile(mc.inputPath)
		if err != nil {
			return err
		}
		req.Content = content
		req.Images = images
		if templateKey != "" {
			req.TemplateKey = templateKey
		}
	}
	if err := attachImages(req.Images, mc.attachments); err != nil {
		return err
	}
	if mc.outputPath != "" {
		req.OutputPath = mc.outputPath
	}

	result, err := mc.reports.Export(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(mc.out, "Report #%d regenerated at %s\n", result.Number, result.DocumentPath)
	return nil
}

func fileBase(path string) string {
	return filepath.Base(path)
}
