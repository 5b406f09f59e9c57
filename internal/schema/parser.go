package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

var (
	// ErrEmptySchema is returned when the input contains no declarations
	ErrEmptySchema = errors.New("schema is empty")

	// ErrDuplicateDeclaration is returned when two declarations share a name
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
)

// ParseSchema parses a schema file (after preprocessing) into our Schema model
func ParseSchema(input string) (*Schema, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptySchema
	}

	// First preprocess the input
	preprocessed := PreprocessGraphQL(input)

	// Parse the GraphQL document
	doc, report := astparser.ParseGraphqlDocumentString(preprocessed)
	if report.HasErrors() {
		return nil, fmt.Errorf("failed to parse schema: %v", report)
	}

	schema := &Schema{
		Models:   []ObjectType{},
		TypeDefs: []ObjectType{},
		Enums:    []EnumType{},
	}

	seen := make(map[string]struct{})
	declare := func(name string) error {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateDeclaration, name)
		}
		seen[name] = struct{}{}
		return nil
	}

	// Walk through definitions
	for i := range doc.RootNodes {
		node := &doc.RootNodes[i]
		switch node.Kind {
		case ast.NodeKindObjectTypeDefinition:
			obj := parseObjectType(&doc, node.Ref)
			if err := declare(obj.Name); err != nil {
				return nil, err
			}
			if obj.Kind == DeclModel {
				schema.Models = append(schema.Models, obj)
			} else {
				schema.TypeDefs = append(schema.TypeDefs, obj)
			}
		case ast.NodeKindEnumTypeDefinition:
			enum := parseEnumType(&doc, node.Ref)
			if err := declare(enum.Name); err != nil {
				return nil, err
			}
			schema.Enums = append(schema.Enums, enum)
		}
	}

	if len(seen) == 0 {
		return nil, ErrEmptySchema
	}

	return schema, nil
}

func parseObjectType(doc *ast.Document, ref int) ObjectType {
	typeDef := doc.ObjectTypeDefinitions[ref]
	typeName := doc.Input.ByteSliceString(typeDef.Name)

	obj := ObjectType{
		Name:   typeName,
		Doc:    getDescription(doc, typeDef.Description),
		Kind:   DeclTypeDef,
		Fields: []Field{},
	}

	// Models were rewritten to type Model_X during preprocessing
	if strings.HasPrefix(typeName, ModelPrefix) {
		obj.Name = strings.TrimPrefix(typeName, ModelPrefix)
		obj.Kind = DeclModel
	}

	for _, fieldRef := range typeDef.FieldsDefinition.Refs {
		obj.Fields = append(obj.Fields, parseField(doc, fieldRef))
	}

	return obj
}

func parseEnumType(doc *ast.Document, ref int) EnumType {
	enumDef := doc.EnumTypeDefinitions[ref]

	enumType := EnumType{
		Name:   doc.Input.ByteSliceString(enumDef.Name),
		Doc:    getDescription(doc, enumDef.Description),
		Values: []EnumValue{},
	}

	for _, valueRef := range enumDef.EnumValuesDefinition.Refs {
		valueDef := doc.EnumValueDefinitions[valueRef]
		enumType.Values = append(enumType.Values, EnumValue{
			Name: doc.Input.ByteSliceString(valueDef.EnumValue),
			Doc:  getDescription(doc, valueDef.Description),
		})
	}

	return enumType
}

func parseField(doc *ast.Document, fieldRef int) Field {
	fieldDef := doc.FieldDefinitions[fieldRef]

	return Field{
		Name:       doc.Input.ByteSliceString(fieldDef.Name),
		Doc:        getDescription(doc, fieldDef.Description),
		Type:       parseType(doc, fieldDef.Type),
		Attributes: parseAttributes(doc, fieldDef.Directives),
	}
}

// parseType unwraps NonNull and List wrappers. Only the outermost NonNull
// decides optionality; nested lists are flattened into a single array.
func parseType(doc *ast.Document, typeRef int) TypeRef {
	ref := TypeRef{Optional: true}
	currentRef := typeRef

	if doc.Types[currentRef].TypeKind == ast.TypeKindNonNull {
		ref.Optional = false
		currentRef = doc.Types[currentRef].OfType
	}

	for doc.Types[currentRef].TypeKind != ast.TypeKindNamed {
		if doc.Types[currentRef].TypeKind == ast.TypeKindList {
			ref.Array = true
		}
		currentRef = doc.Types[currentRef].OfType
		if currentRef < 0 {
			ref.Name = "Unknown"
			return ref
		}
	}

	ref.Name = doc.Input.ByteSliceString(doc.Types[currentRef].Name)
	if builtin, ok := LookupBuiltin(ref.Name); ok {
		ref.Name = string(builtin)
		ref.Builtin = builtin
	}

	return ref
}

func parseAttributes(doc *ast.Document, directives ast.DirectiveList) []Attribute {
	result := []Attribute{}

	for _, directiveRef := range directives.Refs {
		directive := doc.Directives[directiveRef]

		result = append(result, Attribute{
			Name: doc.Input.ByteSliceString(directive.Name),
			Args: parseAttributeArgs(doc, directive),
		})
	}

	return result
}

func parseAttributeArgs(doc *ast.Document, directive ast.Directive) map[string]Value {
	args := make(map[string]Value)

	for _, argRef := range directive.Arguments.Refs {
		arg := doc.Arguments[argRef]
		argName := doc.Input.ByteSliceString(arg.Name)

		if value, ok := parseValue(doc, doc.ArgumentValue(argRef)); ok {
			args[argName] = value
		}
	}

	return args
}

// parseValue converts a literal argument. Lists, objects, variables and null
// are not meaningful attribute arguments and are skipped.
func parseValue(doc *ast.Document, value ast.Value) (Value, bool) {
	switch value.Kind {
	case ast.ValueKindString:
		return Value{Kind: ValueString, Raw: doc.StringValueContentString(value.Ref)}, true

	case ast.ValueKindEnum:
		if value.Ref >= 0 && value.Ref < len(doc.EnumValues) {
			return Value{Kind: ValueEnum, Raw: doc.Input.ByteSliceString(doc.EnumValues[value.Ref].Name)}, true
		}

	case ast.ValueKindBoolean:
		// The Ref is either 0 (false) or 1 (true)
		if value.Ref >= 0 && value.Ref < len(doc.BooleanValues) {
			return Value{Kind: ValueBoolean, Raw: strconv.FormatBool(bool(doc.BooleanValues[value.Ref]))}, true
		}

	// Numbers keep their source digits; BigInt bounds may exceed int64
	case ast.ValueKindInteger:
		return Value{Kind: ValueInt, Raw: signed(doc.IntValueIsNegative(value.Ref), doc.IntValueRaw(value.Ref))}, true

	case ast.ValueKindFloat:
		return Value{Kind: ValueFloat, Raw: signed(doc.FloatValueIsNegative(value.Ref), doc.FloatValueRaw(value.Ref))}, true
	}

	return Value{}, false
}

func signed(negative bool, digits ast.ByteSlice) string {
	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}

func getDescription(doc *ast.Document, desc ast.Description) string {
	if !desc.IsDefined {
		return ""
	}

	return strings.TrimSpace(doc.Input.ByteSliceString(desc.Content))
}
