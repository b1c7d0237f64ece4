package registry

// canonicalTable enumerates every known entity type and its load layer.
// Layer 1 is the most fundamental and loads first. The table is the single
// authoritative input to the registry; manifests may restate a layer but the
// restated value is advisory and cross-checked against this table.
var canonicalTable = map[int][]string{
	1:  {"Scheme", "Point"},
	2:  {"Spec", "AmbientSpace", "Morphism"},
	3:  {"ToricMorphism", "Glue"},
	4:  {"Homset"},
	5:  {"AffineScheme", "ProjectiveScheme", "ToricVariety"},
	6:  {"AlgebraicScheme", "FanoToricVariety"},
	7:  {"Hypersurface"},
	8:  {"Divisor"},
	9:  {"DivisorGroup"},
	10: {"ToricDivisor"},
}
