package odt

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraud-tools/scam-report-builder/pkg/models/domain"
)

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestNormalizeJPEG(t *testing.T) {
	t.Run("png is re-encoded to jpeg", func(t *testing.T) {
		out := NormalizeJPEG(makePNG(t, 10, 10))
		_, format, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("jpeg passes through unchanged", func(t *testing.T) {
		in := makeJPEG(t, 10, 10)
		assert.Equal(t, in, NormalizeJPEG(in))
	})

	t.Run("undecodable bytes pass through unchanged", func(t *testing.T) {
		in := []byte("definitely not an image")
		assert.Equal(t, in, NormalizeJPEG(in))
	})
}

func TestDisplaySize(t *testing.T) {
	tests := []struct {
		name   string
		px     [2]int
		width  string
		height string
	}{
		{"native size below cap", [2]int{96, 96}, "1.00in", "1.00in"},
		{"portrait below cap", [2]int{192, 480}, "2.00in", "5.00in"},
		{"wide image scaled to cap", [2]int{1920, 1080}, "6.00in", "3.38in"},
		{"square image scaled to cap", [2]int{1200, 1200}, "6.00in", "6.00in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width, height, err := displaySize(makeJPEG(t, tt.px[0], tt.px[1]))
			require.NoError(t, err)
			assert.Equal(t, tt.width, width)
			assert.Equal(t, tt.height, height)
		})
	}

	t.Run("decode error reported", func(t *testing.T) {
		_, _, err := displaySize([]byte("garbage"))
		assert.Error(t, err)
	})
}

func TestOrderedCategories(t *testing.T) {
	images := domain.ImageSet{
		domain.CategoryOthers:        {},
		domain.CategoryPassportIDs:   {},
		domain.ImageCategory("chat"): {},
		domain.CategoryVictimIDs:     {},
	}

	got := orderedCategories(images)
	assert.Equal(t, []domain.ImageCategory{
		domain.CategoryPassportIDs,
		domain.CategoryVictimIDs,
		domain.CategoryOthers,
		domain.ImageCategory("chat"),
	}, got, "known categories keep the fixed order, unknown ones trail")
}
