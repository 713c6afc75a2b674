package graphil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rlch/graphil"
)

func TestCategory_Translated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category graphil.Category
		want     bool
		short    string
	}{
		{graphil.CategoryNotCypher, false, "invalid"},
		{graphil.CategoryCompliant, true, "compliant"},
		{graphil.CategoryMusked, true, "musked"},
		{graphil.CategoryNotSupported, false, "unsupported"},
		{graphil.CategoryTranslatable, true, "lifted"},
		{graphil.CategoryNoStandard, false, "no-standard"},
		{graphil.Category("other"), false, "other"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.category.Translated())
			assert.Equal(t, tt.short, tt.category.Short())
		})
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	categories := graphil.Categories()
	assert.Len(t, categories, 6)
	assert.Equal(t, graphil.CategoryNotCypher, categories[0])
	assert.Equal(t, graphil.CategoryNoStandard, categories[5])
	assert.Equal(t, "Unable to Translate to GQL", graphil.Unable)
}
