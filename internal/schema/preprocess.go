package schema

import (
	"regexp"
)

// ModelPrefix marks object types that were declared with the `model` keyword
const ModelPrefix = "Model_"

// modelStartRegex matches model declarations at the start of a line.
// Captures the model name which must be a valid GraphQL identifier.
var modelStartRegex = regexp.MustCompile(`(?m)^model\s+(\w+)\s*{`)

// blockAttributeRegex matches block-level attributes such as @@index([email])
// or @@allow('read', true). They carry no field validation and are not GraphQL.
var blockAttributeRegex = regexp.MustCompile(`(?m)^[ \t]*@@\w+(\(.*\))?[ \t]*$`)

// lineCommentRegex matches `//` and `///` comments that start a line.
var lineCommentRegex = regexp.MustCompile(`(?m)^([ \t]*)///?`)

// PreprocessGraphQL rewrites `model` blocks, block attributes and line comments
// into valid GraphQL.
func PreprocessGraphQL(input string) string {
	// 1. Line comments become GraphQL comments
	input = lineCommentRegex.ReplaceAllString(input, "$1#")

	// 2. Drop block attributes
	input = blockAttributeRegex.ReplaceAllString(input, "")

	// 3. Rewrite model blocks to type Model_X {
	input = modelStartRegex.ReplaceAllStringFunc(input, func(match string) string {
		modelName := modelStartRegex.FindStringSubmatch(match)[1]
		return `type ` + ModelPrefix + modelName + ` {`
	})

	return input
}
