package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareLink(t *testing.T) {
	assert.Equal(t, "https://scanmark.app/?sync=428913", ShareLink("https://scanmark.app", "428913"))
	assert.Equal(t, "https://scanmark.app/?sync=428913", ShareLink("https://scanmark.app/", "428913"))
}

func TestCodeFromLink(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		want    string
		matched bool
	}{
		{"share link", "https://scanmark.app/?sync=428913", "428913", true},
		{"extra params", "https://scanmark.app/?tab=roster&sync=100000", "100000", true},
		{"surrounding whitespace", "  https://scanmark.app/?sync=428913  ", "428913", true},
		{"no sync param", "https://scanmark.app/?code=428913", "", false},
		{"short code", "https://scanmark.app/?sync=12345", "", false},
		{"non-digit code", "https://scanmark.app/?sync=12a456", "", false},
		{"bare code", "428913", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CodeFromLink(tt.rawURL)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripSyncParam(t *testing.T) {
	assert.Equal(t, "https://scanmark.app/", StripSyncParam("https://scanmark.app/?sync=428913"))
	assert.Equal(t, "https://scanmark.app/?tab=roster", StripSyncParam("https://scanmark.app/?sync=428913&tab=roster"))

	// no sync parameter: returned unchanged
	assert.Equal(t, "https://scanmark.app/?tab=roster", StripSyncParam("https://scanmark.app/?tab=roster"))
}
