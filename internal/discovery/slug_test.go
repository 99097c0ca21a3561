package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"intro", "intro"},
		{"Getting Started", "getting-started"},
		{"Café Crème", "cafe-creme"},
		{"  spaces -- and  dashes ", "spaces-and-dashes"},
		{"snake_case", "snake_case"},
		{"v1.2 notes!", "v1-2-notes"},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Getting Started", TitleFromSlug("getting-started", "en"))
	assert.Equal(t, "Setup Guide", TitleFromSlug("docs/setup_guide", "en"))
	assert.Equal(t, "Intro", TitleFromSlug("intro", "not a tag!"))
}
