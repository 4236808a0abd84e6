// Package shapejson is a schema-driven JSON codec. A small set of composable
// descriptors declares how an in-memory value of a given shape maps to and
// from JSON text; a parser and a stringifier walk a value and its descriptor
// together, recursively, to produce or consume JSON.
//
// Descriptors are built once per schema and are immutable and shareable
// afterwards. The type parameter on Descriptor is the compatibility contract:
// pairing a descriptor with a member type it cannot describe is a compile
// error, never a runtime check.
//
// Typical usage:
//
//	type point struct{ X, Y int }
//
//	var pointDesc = shapejson.Fields(
//		shapejson.Named("x", func(p *point) *int { return &p.X }, shapejson.Number[int]()),
//		shapejson.Named("y", func(p *point) *int { return &p.Y }, shapejson.Number[int]()),
//	)
//
//	text := shapejson.Stringify(point{3, 4}, pointDesc) // {"x":3,"y":4}
//
//	var p point
//	end, err := shapejson.Parse(text, &p, pointDesc)
package shapejson

// JSON literal constants shared by the parser and the stringifier.
const (
	litNull  = "null"
	litTrue  = "true"
	litFalse = "false"
)
