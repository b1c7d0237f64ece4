package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/geomlayers/internal/model"
	"github.com/vk/geomlayers/internal/schema"
)

// translateEntity converts the HCL-specific entity schema into the agnostic
// model, evaluating the raw attribute expressions into concrete values.
func translateEntity(ent *schema.Entity, sourceFile string) (*model.EntityType, error) {
	out := &model.EntityType{
		Name:       ent.Name,
		SourceFile: sourceFile,
	}

	layer, err := evalLayer(ent.Layer)
	if err != nil {
		return nil, fmt.Errorf("entity '%s' in %s: %w", ent.Name, sourceFile, err)
	}
	out.DeclaredLayer = layer

	out.References, err = evalNameList(ent.References, "references")
	if err != nil {
		return nil, fmt.Errorf("entity '%s' in %s: %w", ent.Name, sourceFile, err)
	}

	out.Deferred, err = evalNameList(ent.Deferred, "deferred")
	if err != nil {
		return nil, fmt.Errorf("entity '%s' in %s: %w", ent.Name, sourceFile, err)
	}

	return out, nil
}

// evalLayer evaluates an optional `layer` attribute into an int. A missing or
// null expression yields zero, meaning "not restated".
func evalLayer(expr hcl.Expression) (int, error) {
	val, present, err := evalAttr(expr, "layer")
	if err != nil || !present {
		return 0, err
	}

	converted, convErr := convert.Convert(val, cty.Number)
	if convErr != nil {
		return 0, fmt.Errorf("attribute 'layer' must be a number: %w", convErr)
	}

	var layer int
	if err := gocty.FromCtyValue(converted, &layer); err != nil {
		return 0, fmt.Errorf("attribute 'layer' must be a whole number: %w", err)
	}
	if layer < 1 {
		return 0, fmt.Errorf("attribute 'layer' must be positive, got %d", layer)
	}
	return layer, nil
}

// evalNameList evaluates an optional list attribute into a slice of entity
// type names.
func evalNameList(expr hcl.Expression, attrName string) ([]string, error) {
	val, present, err := evalAttr(expr, attrName)
	if err != nil || !present {
		return nil, err
	}

	if !val.CanIterateElements() {
		return nil, fmt.Errorf("attribute '%s' must be a list of entity type names", attrName)
	}

	var names []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		converted, convErr := convert.Convert(elem, cty.String)
		if convErr != nil || converted.IsNull() {
			return nil, fmt.Errorf("attribute '%s' must contain only strings", attrName)
		}
		names = append(names, converted.AsString())
	}
	return names, nil
}

// evalAttr evaluates an optional attribute expression. Absent and null
// attributes both report present=false so callers can treat them the same.
func evalAttr(expr hcl.Expression, attrName string) (cty.Value, bool, error) {
	if expr == nil {
		return cty.NilVal, false, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, false, fmt.Errorf("failed to evaluate attribute '%s': %w", attrName, diags)
	}
	if val.IsNull() {
		return cty.NilVal, false, nil
	}
	return val, true, nil
}
