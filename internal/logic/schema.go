package logic

import "github.com/xeipuuv/gojsonschema"

// Operators supported by field comparison nodes.
const (
	OpEq         = "eq"
	OpNeq        = "neq"
	OpGt         = "gt"
	OpGte        = "gte"
	OpLt         = "lt"
	OpLte        = "lte"
	OpIn         = "in"
	OpNotIn      = "not_in"
	OpContains   = "contains"
	OpStartsWith = "starts_with"
	OpEndsWith   = "ends_with"
	OpExists     = "exists"
	OpNotExists  = "not_exists"
)

const logicSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "when": { "$ref": "#/definitions/condition" },
    "then": { "$ref": "#/definitions/steps" },
    "else": { "$ref": "#/definitions/steps" }
  },
  "required": ["then"],
  "additionalProperties": false,
  "definitions": {
    "steps": {
      "type": "array",
      "items": { "$ref": "#/definitions/step" }
    },
    "step": {
      "type": "object",
      "oneOf": [
        {
          "required": ["action"],
          "properties": {
            "action": { "type": "string", "minLength": 1 },
            "params": { "type": "object" }
          },
          "additionalProperties": false
        },
        {
          "required": ["then"],
          "properties": {
            "when": { "$ref": "#/definitions/condition" },
            "then": { "$ref": "#/definitions/steps" },
            "else": { "$ref": "#/definitions/steps" }
          },
          "additionalProperties": false
        }
      ]
    },
    "condition": {
      "type": "object",
      "oneOf": [
        {
          "required": ["all"],
          "properties": {
            "all": { "type": "array", "minItems": 1, "items": { "$ref": "#/definitions/condition" } }
          },
          "additionalProperties": false
        },
        {
          "required": ["any"],
          "properties": {
            "any": { "type": "array", "minItems": 1, "items": { "$ref": "#/definitions/condition" } }
          },
          "additionalProperties": false
        },
        {
          "required": ["not"],
          "properties": {
            "not": { "$ref": "#/definitions/condition" }
          },
          "additionalProperties": false
        },
        {
          "required": ["field", "op"],
          "properties": {
            "field": { "type": "string", "minLength": 1 },
            "op": {
              "enum": ["eq", "neq", "gt", "gte", "lt", "lte", "in", "not_in",
                       "contains", "starts_with", "ends_with", "exists", "not_exists"]
            },
            "value": {},
            "value_field": { "type": "string", "minLength": 1 }
          },
          "additionalProperties": false
        },
        {
          "required": ["expr"],
          "properties": {
            "expr": { "type": "string", "minLength": 1 }
          },
          "additionalProperties": false
        }
      ]
    }
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(logicSchema))
	if err != nil {
		panic("logic: invalid embedded schema: " + err.Error())
	}
	return schema
}
