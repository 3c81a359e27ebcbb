// Package schemas embeds the JSON Schemas for scorebench input files.
package schemas

import _ "embed"

// SuitesSchemaJSON is the schema for suite definition files.
//
//go:embed suites.schema.json
var SuitesSchemaJSON string
