package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/geomlayers/internal/model"
)

func TestBuild(t *testing.T) {
	m := model.NewGraph()
	m.Entities["Spec"] = &model.EntityType{
		Name:       "Spec",
		References: []string{"Scheme"},
	}
	m.Entities["DivisorGroup"] = &model.EntityType{
		Name:       "DivisorGroup",
		References: []string{"Divisor"},
		Deferred:   []string{"ToricDivisor"},
	}

	g := Build(context.Background(), m)

	t.Run("reference targets get nodes even without their own block", func(t *testing.T) {
		assert.Equal(t, []string{"Divisor", "DivisorGroup", "Scheme", "Spec"}, g.Nodes())
	})

	t.Run("eager references become edges", func(t *testing.T) {
		refs, err := g.References("Spec")
		require.NoError(t, err)
		assert.Equal(t, []string{"Scheme"}, refs)
	})

	t.Run("deferred references never become edges", func(t *testing.T) {
		assert.NotContains(t, g.Nodes(), "ToricDivisor")

		refs, err := g.References("DivisorGroup")
		require.NoError(t, err)
		assert.Equal(t, []string{"Divisor"}, refs)
	})
}

func TestBuildSelfReference(t *testing.T) {
	m := model.NewGraph()
	m.Entities["Homset"] = &model.EntityType{
		Name:       "Homset",
		References: []string{"Homset", "Morphism"},
	}

	// A self-reference is a layer violation, reported by the validator; the
	// graph builder just skips the edge rather than failing construction.
	g := Build(context.Background(), m)
	refs, err := g.References("Homset")
	require.NoError(t, err)
	assert.Equal(t, []string{"Morphism"}, refs)
}
