package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlegate/oscalcat/pkg/render"
	"github.com/castlegate/oscalcat/pkg/xref"
)

func TestCatalog_Shape(t *testing.T) {
	cat := Catalog(3, 4)

	require.Len(t, cat.Groups, 3)
	assert.Equal(t, 12, cat.TotalControls())
	assert.NotEmpty(t, cat.UUID)
	require.NotNil(t, cat.BackMatter)
	require.Len(t, cat.BackMatter.Resources, 1)
	assert.NotEmpty(t, cat.Params, "catalog should define global parameters")
}

func TestCatalog_ClampsArguments(t *testing.T) {
	cat := Catalog(0, 0)
	assert.Len(t, cat.Groups, 1)
	assert.Equal(t, 1, cat.TotalControls())

	huge := Catalog(100, 1)
	assert.LessOrEqual(t, len(huge.Groups), 10)
}

// Every placeholder in generated prose must resolve, and related links must
// point at real controls.
func TestCatalog_RendersCleanly(t *testing.T) {
	cat := Catalog(4, 3)

	out := render.HTML(cat)
	assert.NotContains(t, out, "Unknown param:")
	assert.NotContains(t, out, "Unknown Reference")

	resolver := xref.NewResolver(cat)
	for _, group := range cat.Groups {
		for _, ctrl := range group.Controls {
			for _, link := range ctrl.Links {
				if strings.HasPrefix(link.Href, "#") {
					ref := resolver.Resolve(link)
					assert.Equal(t, xref.StatusInternal, ref.Status, "link %s on %s", link.Href, ctrl.ID)
				}
			}
		}
	}
}

func TestCatalog_StatusVariety(t *testing.T) {
	summary := render.Summarize(Catalog(2, 4))
	assert.Equal(t, 8, summary.Total)
	assert.Positive(t, summary.Implemented)
	assert.Positive(t, summary.InProgress)
	assert.Positive(t, summary.NotApplicable)
}
