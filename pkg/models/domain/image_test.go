package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageSet_Count(t *testing.T) {
	images := ImageSet{
		CategoryPassportIDs: {
			{Name: "passport.jpg", Data: []byte("jpeg")},
			{Name: "placeholder row"},
		},
		CategoryOthers: {
			{Name: "screen.jpg", Data: []byte("jpeg")},
		},
	}

	assert.Equal(t, 2, images.Count(), "placeholder rows without data are not counted")
	assert.Equal(t, 0, ImageSet{}.Count())
}

func TestImageCategory_Label(t *testing.T) {
	assert.Equal(t, "Scammers passport/ID:", CategoryPassportIDs.Label())
	assert.Equal(t, "chat_logs:", ImageCategory("chat_logs").Label())
}
