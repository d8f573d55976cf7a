package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
	"github.com/fraud-tools/scam-report-builder/pkg/models/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), ".report_data"), zerolog.New(zerolog.NewTestWriter(t)))
	require.NoError(t, err)
	return s
}

func TestNewStore(t *testing.T) {
	t.Run("creates the data folder", func(t *testing.T) {
		s := newTestStore(t)
		assert.DirExists(t, s.Dir())
	})

	t.Run("empty folder rejected", func(t *testing.T) {
		_, err := NewStore("  ", zerolog.New(zerolog.NewTestWriter(t)))
		assert.Error(t, err)
	})
}

func TestStore_PathForDocument(t *testing.T) {
	s := newTestStore(t)

	path := s.PathForDocument("/reports/12_Scammer report John.odt")
	assert.Equal(t, filepath.Join(s.Dir(), "12_Scammer report John.json"), path)
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	snap := store.ReportSnapshot{
		ReportData: domain.ReportContent{
			domain.FieldType:  domain.Text("Advance-Fee Scam"),
			domain.FieldAlias: domain.List("John Okafor", "Barrister J."),
			domain.FieldOtherPayments: domain.Payments(
				domain.PaymentRecord{Type: "Bitcoin", Details: "bc1qxyz"},
			),
		},
		Images: map[string][]store.ImageBlob{
			"scammer_photos": {{Name: "photo.jpg", Data: "aGVsbG8="}},
		},
		TemplateKey:        "advance-fee",
		ReportNumber:       12,
		ReportFormat:       "{number:04d}",
		OriginalOutputPath: "/reports/12_Scammer report John.odt",
	}

	path := s.PathForDocument(snap.OriginalOutputPath)
	require.NoError(t, s.Write(path, snap))

	got, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, snap.ReportData, got.ReportData)
	assert.Equal(t, snap.Images, got.Images)
	assert.Equal(t, 12, got.ReportNumber)
	assert.Equal(t, "{number:04d}", got.ReportFormat)
	assert.Equal(t, snap.OriginalOutputPath, got.OutputPath())
}

func TestStore_WriteOverwritesExisting(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.Dir(), "report.json")

	require.NoError(t, s.Write(path, store.ReportSnapshot{ReportNumber: 1}))
	require.NoError(t, s.Write(path, store.ReportSnapshot{ReportNumber: 2}))

	got, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReportNumber)
}

func TestStore_ReadErrors(t *testing.T) {
	s := newTestStore(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := s.Read(filepath.Join(s.Dir(), "nope.json"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(s.Dir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

		_, err := s.Read(path)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestStore_ReadLegacyOutputPath(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.Dir(), "legacy.json")

	raw := `{
  "report_data": {"type": "Advance-Fee Scam"},
  "images": {},
  "template_key": "advance-fee",
  "report_number": 3,
  "report_format": "{number}",
  "original_odt_path": "/old/3_Scammer report X.odt"
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	got, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "/old/3_Scammer report X.odt", got.OutputPath())
}
