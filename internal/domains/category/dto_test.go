package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputSlug(t *testing.T) {
	tests := []struct {
		slug string
		ok   bool
	}{
		{"lectures", true},
		{"live-2024", true},
		{" lectures", false},
		{"lectures ", false},
		{"\tlectures\n", false},
		{"Lectures", false},
		{"live--talks", false},
		{"-live", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			in, errs := ParseInput(map[string]interface{}{"name": " Lectures ", "slug": tt.slug})
			if tt.ok {
				require.Empty(t, errs)
				assert.Equal(t, tt.slug, in.Slug)
				assert.Equal(t, "Lectures", in.Name)
				return
			}
			assert.True(t, errs.Has("slug"), "slug %q accepted", tt.slug)
		})
	}
}

func TestParsePatchKeepsSlugConstraint(t *testing.T) {
	_, errs := ParsePatch(map[string]interface{}{"slug": "lectures "})
	assert.True(t, errs.Has("slug"))

	patch, errs := ParsePatch(map[string]interface{}{"name": "Talks"})
	require.Empty(t, errs)
	assert.Nil(t, patch.Slug)
	assert.Equal(t, "Talks", *patch.Name)
}
