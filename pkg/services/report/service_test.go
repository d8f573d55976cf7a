package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
	"github.com/fraud-tools/scam-report-builder/pkg/services/odt"
	"github.com/fraud-tools/scam-report-builder/pkg/services/template"
	"github.com/fraud-tools/scam-report-builder/pkg/store/config"
	"github.com/fraud-tools/scam-report-builder/pkg/store/snapshot"
	"github.com/fraud-tools/scam-report-builder/pkg/store/templates"
)

type fixture struct {
	service    *Service
	config     *config.Store
	snapshots  *snapshot.Store
	reportsDir string
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	base := t.TempDir()

	cfg := config.NewStore(filepath.Join(base, "scam_report_config.json"), logger)
	reportsDir := filepath.Join(base, "reports")
	templateStore, err := templates.NewStore(filepath.Join(base, "custom_templates"))
	require.NoError(t, err)
	registry := template.NewRegistry(templateStore, logger)
	snapshots, err := snapshot.NewStore(filepath.Join(base, ".report_data"), logger)
	require.NoError(t, err)

	service := NewService(cfg, registry, odt.NewAssembler(logger), snapshots, logger)

	return &fixture{
		service:    service,
		config:     cfg,
		snapshots:  snapshots,
		reportsDir: reportsDir,
	}
}

func (f *fixture) configureReportsFolder(t *testing.T) {
	t.Helper()
	require.NoError(t, os.MkdirAll(f.reportsDir, 0o755))
	f.config.SetReportFolder(f.reportsDir)
}

func testContent() domain.ReportContent {
	return domain.ReportContent{
		domain.FieldType:    domain.Text("Advance-Fee Scam"),
		domain.FieldSummary: domain.Text("Fee to be paid to receive an inheritance"),
		domain.FieldAlias:   domain.List("John Okafor"),
	}
}

func TestService_Export(t *testing.T) {
	t.Run("first export takes the next number", func(t *testing.T) {
		f := setupFixture(t)
		f.configureReportsFolder(t)

		result, err := f.service.Export(ExportRequest{
			Content:     testContent(),
			TemplateKey: "advance-fee",
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Number)
		assert.Equal(t, filepath.Join(f.reportsDir, "1_Scammer report John Okafor.odt"), result.DocumentPath)
		assert.FileExists(t, result.DocumentPath)
		assert.FileExists(t, result.SnapshotPath)

		assert.Equal(t, 1, f.config.Settings().LastReportNumber)
		assert.Equal(t, "advance-fee", f.config.Settings().LastTemplateKey)
	})

	t.Run("explicit output path bypasses the reports folder", func(t *testing.T) {
		f := setupFixture(t)
		out := filepath.Join(t.TempDir(), "custom.odt")

		result, err := f.service.Export(ExportRequest{
			Content:    testContent(),
			OutputPath: out,
		})
		require.NoError(t, err)
		assert.Equal(t, out, result.DocumentPath)
		assert.FileExists(t, out)
	})

	t.Run("no reports folder and no path fails", func(t *testing.T) {
		f := setupFixture(t)

		_, err := f.service.Export(ExportRequest{Content: testContent()})
		assert.ErrorIs(t, err, ErrNoReportsFolder)
	})

	t.Run("unknown template rejected before any file is written", func(t *testing.T) {
		f := setupFixture(t)
		f.configureReportsFolder(t)

		_, err := f.service.Export(ExportRequest{
			Content:     testContent(),
			TemplateKey: "no-such-template",
		})
		assert.ErrorIs(t, err, template.ErrTemplateNotFound)
		assert.Equal(t, 0, f.config.Settings().LastReportNumber)
	})

	t.Run("formatted number injected into content", func(t *testing.T) {
		f := setupFixture(t)
		f.configureReportsFolder(t)

		result, err := f.service.Export(ExportRequest{
			Content: testContent(),
			Number:  7,
			Format:  "{number:04d}",
		})
		require.NoError(t, err)

		snap, err := f.snapshots.Read(result.SnapshotPath)
		require.NoError(t, err)
		assert.Equal(t, "0007", snap.ReportData.Text(domain.FieldReportNumber))
	})

	t.Run("caller content not mutated", func(t *testing.T) {
		f := setupFixture(t)
		f.configureReportsFolder(t)

		content := testContent()
		_, err := f.service.Export(ExportRequest{Content: content})
		require.NoError(t, err)
		assert.False(t, content.Has(domain.FieldReportNumber))
	})
}

func TestService_ReopenAndAmend(t *testing.T) {
	f := setupFixture(t)
	f.configureReportsFolder(t)

	first, err := f.service.Export(ExportRequest{
		Content:     testContent(),
		TemplateKey: "advance-fee",
		Format:      "{number:04d}",
	})
	require.NoError(t, err)
	require.Equal(t, 1, first.Number)

	reopened, err := f.service.Reopen(first.SnapshotPath)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Number)
	assert.Equal(t, "{number:04d}", reopened.Format)
	assert.Equal(t, first.DocumentPath, reopened.OutputPath)
	assert.Equal(t, "advance-fee", reopened.TemplateKey)
	assert.Equal(t, "John Okafor", reopened.Content.MainAlias())

	reopened.Content[domain.FieldSummary] = domain.Text("Amended summary")
	amended, err := f.service.Export(reopened)
	require.NoError(t, err)

	assert.Equal(t, 1, amended.Number, "amendments keep the original number")
	assert.Equal(t, first.DocumentPath, amended.DocumentPath)
	assert.Equal(t, first.SnapshotPath, amended.SnapshotPath)

	number, _ := f.config.NextReportNumber()
	assert.Equal(t, 2, number, "amendments do not advance the sequence")

	snap, err := f.snapshots.Read(amended.SnapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "Amended summary", snap.ReportData.Text(domain.FieldSummary))
}

func TestService_Reopen_Errors(t *testing.T) {
	f := setupFixture(t)

	_, err := f.service.Reopen(filepath.Join(f.snapshots.Dir(), "missing.json"))
	assert.ErrorIs(t, err, snapshot.ErrNotFound)
}

func TestService_NumberSequence(t *testing.T) {
	f := setupFixture(t)
	f.configureReportsFolder(t)

	for want := 1; want <= 3; want++ {
		result, err := f.service.Export(ExportRequest{
			Content: domain.ReportContent{
				domain.FieldType:  domain.Text("Advance-Fee Scam"),
				domain.FieldAlias: domain.List("Alias"),
				domain.FieldFilenameName: domain.Text(
					// Distinct filenames keep the three documents apart.
					"Target " + string(rune('A'+want-1))),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, want, result.Number)
	}
}
