package effect

import (
	"sort"

	"github.com/okra-platform/effectschema/internal/codegen/ast"
	"github.com/okra-platform/effectschema/internal/schema"
)

// AttributeKind is the recognized variant of a field attribute
type AttributeKind int

const (
	AttrUnknown AttributeKind = iota
	AttrLength
	AttrContains
	AttrStartsWith
	AttrEndsWith
	AttrRegex
	AttrGreaterThan
	AttrGreaterThanOrEqual
	AttrLessThan
	AttrLessThanOrEqual
	AttrLower
	AttrUpper
	AttrTrim
	AttrURL
	AttrUUID
)

var attributeKinds = map[string]AttributeKind{
	"length":     AttrLength,
	"contains":   AttrContains,
	"startsWith": AttrStartsWith,
	"endsWith":   AttrEndsWith,
	"regex":      AttrRegex,
	"gt":         AttrGreaterThan,
	"gte":        AttrGreaterThanOrEqual,
	"lt":         AttrLessThan,
	"lte":        AttrLessThanOrEqual,
	"lower":      AttrLower,
	"upper":      AttrUpper,
	"trim":       AttrTrim,
	"url":        AttrURL,
	"uuid":       AttrUUID,
}

// ParseAttributeKind returns the variant for an attribute name. Names that
// are not recognized map to AttrUnknown.
func ParseAttributeKind(name string) AttributeKind {
	return attributeKinds[name]
}

func (k AttributeKind) String() string {
	switch k {
	case AttrLength:
		return "length"
	case AttrContains:
		return "contains"
	case AttrStartsWith:
		return "startsWith"
	case AttrEndsWith:
		return "endsWith"
	case AttrRegex:
		return "regex"
	case AttrGreaterThan:
		return "gt"
	case AttrGreaterThanOrEqual:
		return "gte"
	case AttrLessThan:
		return "lt"
	case AttrLessThanOrEqual:
		return "lte"
	case AttrLower:
		return "lower"
	case AttrUpper:
		return "upper"
	case AttrTrim:
		return "trim"
	case AttrURL:
		return "url"
	case AttrUUID:
		return "uuid"
	default:
		return "unknown"
	}
}

// Rank orders modifiers inside a pipeline
type Rank int

const (
	// RankPreserving modifiers keep the value a string/number
	RankPreserving Rank = iota
	// RankTransforming modifiers change the value's shape for later steps
	RankTransforming
	// RankOptional is reserved for the optional wrapper, always last
	RankOptional
)

// Modifier is one step of a field's pipe(...)
type Modifier struct {
	Name string
	Rank Rank
	Expr ast.Expr
}

// composeTargets are the canonical sub-schemas composed for directive attributes
var composeTargets = map[AttributeKind]struct {
	schema string
	rank   Rank
}{
	AttrLower: {"Lowercase", RankPreserving},
	AttrUpper: {"Uppercase", RankPreserving},
	AttrTrim:  {"Trim", RankPreserving},
	AttrUUID:  {"UUID", RankPreserving},
	AttrURL:   {"URL", RankTransforming},
}

// textFilters take a single string argument
var textFilters = map[AttributeKind]struct {
	filter string
	arg    string
}{
	AttrContains:   {"includes", "text"},
	AttrStartsWith: {"startsWith", "text"},
	AttrEndsWith:   {"endsWith", "text"},
}

// comparisons take a single numeric bound
var comparisons = map[AttributeKind]string{
	AttrGreaterThan:        "greaterThan",
	AttrGreaterThanOrEqual: "greaterThanOrEqualTo",
	AttrLessThan:           "lessThan",
	AttrLessThanOrEqual:    "lessThanOrEqualTo",
}

// MapAttribute maps one attribute to a modifier for a field whose base scalar
// is scalar (empty for references). It reports false when the attribute is
// not recognized, is missing required arguments, or does not apply to the scalar.
func MapAttribute(attr schema.Attribute, scalar schema.BuiltinType) (Modifier, bool) {
	kind := ParseAttributeKind(attr.Name)

	switch kind {
	case AttrLength:
		if scalar != schema.BuiltinString {
			return Modifier{}, false
		}
		return lengthModifier(attr)

	case AttrContains, AttrStartsWith, AttrEndsWith:
		if scalar != schema.BuiltinString {
			return Modifier{}, false
		}
		tf := textFilters[kind]
		text, ok := attr.Arg(tf.arg)
		if !ok || text.Kind != schema.ValueString {
			return Modifier{}, false
		}
		return filter(attr, tf.filter, ast.Str(text.Raw)), true

	case AttrRegex:
		if scalar != schema.BuiltinString {
			return Modifier{}, false
		}
		pattern, ok := attr.Arg("pattern")
		if !ok || pattern.Kind != schema.ValueString {
			return Modifier{}, false
		}
		return filter(attr, "pattern", &ast.RegexLit{Pattern: pattern.Raw}), true

	case AttrGreaterThan, AttrGreaterThanOrEqual, AttrLessThan, AttrLessThanOrEqual:
		if !scalar.IsNumeric() {
			return Modifier{}, false
		}
		bound, ok := attr.Arg("value")
		if !ok || !bound.IsNumber() {
			return Modifier{}, false
		}
		name := comparisons[kind]
		if scalar == schema.BuiltinBigInt {
			if bound.Kind != schema.ValueInt {
				return Modifier{}, false
			}
			return filter(attr, name+"BigInt", &ast.BigIntLit{Raw: bound.Raw}), true
		}
		return filter(attr, name, ast.Num(bound.Raw)), true

	case AttrLower, AttrUpper, AttrTrim, AttrURL, AttrUUID:
		if scalar != schema.BuiltinString {
			return Modifier{}, false
		}
		target := composeTargets[kind]
		return Modifier{
			Name: "compose" + target.schema,
			Rank: target.rank,
			Expr: ast.CallOf(ast.Sel(SchemaIdent, "compose"), ast.Sel(SchemaIdent, target.schema)),
		}, true

	default:
		return Modifier{}, false
	}
}

func lengthModifier(attr schema.Attribute) (Modifier, bool) {
	minValue, hasMin := attr.Arg("min")
	maxValue, hasMax := attr.Arg("max")
	hasMin = hasMin && minValue.Kind == schema.ValueInt
	hasMax = hasMax && maxValue.Kind == schema.ValueInt

	switch {
	case hasMin && hasMax:
		bounds := &ast.ObjectLit{Props: []ast.Property{
			{Name: "min", Value: ast.Num(minValue.Raw)},
			{Name: "max", Value: ast.Num(maxValue.Raw)},
		}}
		return filter(attr, "length", bounds), true
	case hasMin:
		return filter(attr, "minLength", ast.Num(minValue.Raw)), true
	case hasMax:
		return filter(attr, "maxLength", ast.Num(maxValue.Raw)), true
	default:
		return Modifier{}, false
	}
}

// filter builds Schema.<name>(arg) with a trailing { message } when the
// attribute carries a custom message
func filter(attr schema.Attribute, name string, arg ast.Expr) Modifier {
	args := []ast.Expr{arg}
	if msg, ok := attr.Arg("message"); ok && msg.Kind == schema.ValueString {
		args = append(args, &ast.ObjectLit{Props: []ast.Property{
			{Name: "message", Value: &ast.Func{Body: ast.Str(msg.Raw)}},
		}})
	}

	return Modifier{
		Name: name,
		Rank: RankPreserving,
		Expr: ast.CallOf(ast.Sel(SchemaIdent, name), args...),
	}
}

// optionalModifier marks a field as optional
func optionalModifier() Modifier {
	return Modifier{
		Name: "optional",
		Rank: RankOptional,
		Expr: ast.Sel(SchemaIdent, "optional"),
	}
}

// sortModifiers orders by rank, keeping attribute order within a rank
func sortModifiers(mods []Modifier) {
	sort.SliceStable(mods, func(i, j int) bool {
		return mods[i].Rank < mods[j].Rank
	})
}
