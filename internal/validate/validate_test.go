package validate

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/geomlayers/internal/model"
	"github.com/vk/geomlayers/internal/registry"
)

func newGraph(entities ...*model.EntityType) *model.Graph {
	g := model.NewGraph()
	for _, ent := range entities {
		g.Entities[ent.Name] = ent
	}
	return g
}

func TestValidateCorrectlyLayeredGraph(t *testing.T) {
	g := newGraph(
		&model.EntityType{Name: "Scheme", Deferred: []string{"Spec"}},
		&model.EntityType{Name: "Spec", References: []string{"Scheme"}},
		&model.EntityType{Name: "Morphism", References: []string{"Scheme", "Point"}},
		&model.EntityType{Name: "Homset", References: []string{"Morphism"}},
		&model.EntityType{Name: "Divisor", References: []string{"Hypersurface", "AlgebraicScheme"}},
		&model.EntityType{Name: "ToricDivisor", References: []string{"DivisorGroup", "Divisor"}},
	)

	report := Validate(context.Background(), g, registry.New())
	assert.True(t, report.Empty(), "expected empty report, got:\n%s", report)
}

func TestValidateOrderingViolations(t *testing.T) {
	t.Run("reference to a higher layer is a violation", func(t *testing.T) {
		// DivisorGroup (9) eagerly referencing ToricDivisor (10): 10 is not < 9.
		g := newGraph(&model.EntityType{Name: "DivisorGroup", References: []string{"ToricDivisor"}})

		report := Validate(context.Background(), g, registry.New())
		want := []Violation{{
			Kind:      KindLayerOrder,
			FromType:  "DivisorGroup",
			ToType:    "ToricDivisor",
			FromLayer: 9,
			ToLayer:   10,
		}}
		if diff := cmp.Diff(want, report.Violations); diff != "" {
			t.Errorf("unexpected violations (-want +got):\n%s", diff)
		}
	})

	t.Run("reverse direction is valid", func(t *testing.T) {
		// ToricDivisor (10) eagerly referencing DivisorGroup (9): 9 < 10.
		g := newGraph(&model.EntityType{Name: "ToricDivisor", References: []string{"DivisorGroup"}})
		report := Validate(context.Background(), g, registry.New())
		assert.True(t, report.Empty())
	})

	t.Run("same-layer reference is a violation", func(t *testing.T) {
		// Strictly lower, never equal: Scheme and Point share layer 1.
		g := newGraph(&model.EntityType{Name: "Scheme", References: []string{"Point"}})

		report := Validate(context.Background(), g, registry.New())
		require.Len(t, report.Violations, 1)
		v := report.Violations[0]
		assert.Equal(t, KindLayerOrder, v.Kind)
		assert.Equal(t, 1, v.FromLayer)
		assert.Equal(t, 1, v.ToLayer)
	})

	t.Run("self-reference is a violation", func(t *testing.T) {
		g := newGraph(&model.EntityType{Name: "Homset", References: []string{"Homset"}})
		report := Validate(context.Background(), g, registry.New())
		require.Len(t, report.Violations, 1)
		assert.Equal(t, KindLayerOrder, report.Violations[0].Kind)
	})
}

func TestValidateCollectsAllViolations(t *testing.T) {
	// Several independent violations must all surface in one run, none
	// omitted, none duplicated, in deterministic order.
	g := newGraph(
		&model.EntityType{Name: "DivisorGroup", References: []string{"ToricDivisor"}},
		&model.EntityType{Name: "Point", References: []string{"Morphism"}},
		&model.EntityType{Name: "Spec", References: []string{"Scheme"}}, // valid
	)

	report := Validate(context.Background(), g, registry.New())
	want := []Violation{
		{Kind: KindLayerOrder, FromType: "DivisorGroup", ToType: "ToricDivisor", FromLayer: 9, ToLayer: 10},
		{Kind: KindLayerOrder, FromType: "Point", ToType: "Morphism", FromLayer: 1, ToLayer: 2},
	}
	if diff := cmp.Diff(want, report.Violations); diff != "" {
		t.Errorf("unexpected violations (-want +got):\n%s", diff)
	}
}

func TestValidateDoesNotDuplicateRepeatedReferences(t *testing.T) {
	g := newGraph(&model.EntityType{
		Name:       "Point",
		References: []string{"Morphism", "Morphism"},
	})

	report := Validate(context.Background(), g, registry.New())
	assert.Len(t, report.Violations, 1)
}

func TestValidateDeferredReferencesExcluded(t *testing.T) {
	t.Run("deferred back-reference is not flagged", func(t *testing.T) {
		// The documented case: Scheme (1) needs Spec (2) as a default base
		// scheme. Declared eagerly it would violate the ordering; declared
		// deferred it is invisible to the eager check.
		g := newGraph(&model.EntityType{Name: "Scheme", Deferred: []string{"Spec"}})
		report := Validate(context.Background(), g, registry.New())
		assert.True(t, report.Empty(), "deferred references must be excluded from eager validation, got:\n%s", report)
	})

	t.Run("same name in both sets is flagged", func(t *testing.T) {
		g := newGraph(&model.EntityType{
			Name:       "Spec",
			References: []string{"Scheme"},
			Deferred:   []string{"Scheme"},
		})

		report := Validate(context.Background(), g, registry.New())
		require.Len(t, report.Violations, 1)
		assert.Equal(t, KindDualReference, report.Violations[0].Kind)
	})
}

func TestValidateLayerMismatch(t *testing.T) {
	g := newGraph(&model.EntityType{Name: "Divisor", DeclaredLayer: 3})

	report := Validate(context.Background(), g, registry.New())
	want := []Violation{{
		Kind:      KindLayerMismatch,
		FromType:  "Divisor",
		FromLayer: 8,
		ToLayer:   3,
	}}
	if diff := cmp.Diff(want, report.Violations); diff != "" {
		t.Errorf("unexpected violations (-want +got):\n%s", diff)
	}
}

func TestValidateUnknownTypes(t *testing.T) {
	t.Run("unknown entity name", func(t *testing.T) {
		g := newGraph(&model.EntityType{Name: "Sheaf"})
		report := Validate(context.Background(), g, registry.New())
		require.Len(t, report.Violations, 1)
		assert.Equal(t, KindUnknownType, report.Violations[0].Kind)
		assert.Equal(t, "Sheaf", report.Violations[0].FromType)
	})

	t.Run("unknown reference target", func(t *testing.T) {
		g := newGraph(&model.EntityType{Name: "Divisor", References: []string{"Sheaf"}})
		report := Validate(context.Background(), g, registry.New())
		require.Len(t, report.Violations, 1)
		assert.Equal(t, KindUnknownType, report.Violations[0].Kind)
		assert.Equal(t, "Sheaf", report.Violations[0].ToType)
	})

	t.Run("unknown deferred target", func(t *testing.T) {
		g := newGraph(&model.EntityType{Name: "Scheme", Deferred: []string{"Sheaf"}})
		report := Validate(context.Background(), g, registry.New())
		require.Len(t, report.Violations, 1)
		assert.Equal(t, KindUnknownType, report.Violations[0].Kind)
	})
}

func TestValidateCycleBackstop(t *testing.T) {
	// Two unknown types referencing each other: the ordering check cannot see
	// the cycle, so the structural pass must.
	g := newGraph(
		&model.EntityType{Name: "Foo", References: []string{"Bar"}},
		&model.EntityType{Name: "Bar", References: []string{"Foo"}},
	)

	report := Validate(context.Background(), g, registry.New())
	require.False(t, report.Empty())

	kinds := make(map[Kind]int)
	for _, v := range report.Violations {
		kinds[v.Kind]++
	}
	assert.Equal(t, 1, kinds[KindCycle], "expected exactly one cycle violation, got:\n%s", report)
	assert.GreaterOrEqual(t, kinds[KindUnknownType], 2)
}

func TestReportString(t *testing.T) {
	report := &Report{Violations: []Violation{
		{Kind: KindLayerOrder, FromType: "DivisorGroup", ToType: "ToricDivisor", FromLayer: 9, ToLayer: 10},
		{Kind: KindUnknownType, FromType: "Sheaf"},
	}}

	out := report.String()
	assert.Contains(t, out, "'DivisorGroup' (layer 9) eagerly references 'ToricDivisor' (layer 10)")
	assert.Contains(t, out, "'Sheaf' is not in the layer table")
	assert.Len(t, report.Violations, 2)
}
