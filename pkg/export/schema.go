package export

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/coolbeans/katiba/pkg/extract"
)

const (
	schemaDraft = "https://json-schema.org/draft/2020-12/schema"
	schemaID    = "https://github.com/coolbeans/katiba/schema/document.json"

	typeObject  = "object"
	typeArray   = "array"
	typeString  = "string"
	typeInteger = "integer"
	typeBoolean = "boolean"
	typeNull    = "null"
)

// Schema returns the JSON Schema of the JSON encoding of a document.
func Schema() *jsonschema.Schema {
	defs := map[string]*jsonschema.Schema{
		"miniClause": object("A roman-numbered subdivision of a sub-clause.",
			props{"label": str(), "number": integer(), "text": str()},
			"label", "number", "text"),
		"subClause": object("A lettered subdivision of a clause.",
			props{"label": str(), "text": str(), "miniClauses": array(ref("miniClause"))},
			"label", "text"),
		"clause": object("A numbered subdivision of an article. An empty number marks unnumbered text.",
			props{"number": str(), "text": str(), "textOnly": boolean(), "subClauses": array(ref("subClause"))},
			"number", "text"),
		"article": object("A single article.",
			props{
				"number":       integer(),
				"title":        str(),
				"numberSource": enum(extract.NumberExplicit, extract.NumberTable, extract.NumberPrefix, extract.NumberFallback),
				"clauses":      array(ref("clause")),
			},
			"number", "title", "numberSource"),
		"part": object("A group of articles within a chapter.",
			props{"number": integer(), "title": str(), "articles": array(ref("article"))},
			"number", "title"),
		"chapter": object("A chapter of the constitution.",
			props{"number": integer(), "title": str(), "parts": array(ref("part")), "articles": array(ref("article"))},
			"number", "title"),
		"counties": object("First Schedule content.",
			props{"counties": array(object("", props{"number": integer(), "name": str()}, "number", "name"))},
			"counties"),
		"nationalSymbols": nationalSymbolsSchema(),
		"oaths": object("Third Schedule content.",
			props{"oaths": array(object("", props{"title": str(), "text": str()}, "title", "text"))},
			"oaths"),
		"functions": object("Fourth Schedule content.",
			props{"parts": array(object("",
				props{
					"number": integer(),
					"title":  str(),
					"functions": array(object("",
						props{"number": integer(), "text": str(), "subFunctions": array(ref("subClause"))},
						"number", "text")),
				},
				"number", "title"))},
			"parts"),
		"legislation": object("Fifth Schedule content.",
			props{"groups": array(object("",
				props{
					"chapter": str(),
					"items": array(object("",
						props{"description": str(), "article": str(), "duration": str()},
						"description", "article")),
				},
				"chapter", "items"))},
			"groups"),
		"transitional": object("Sixth Schedule content.",
			props{"parts": array(object("",
				props{
					"number": integer(),
					"title":  str(),
					"sections": array(object("",
						props{"number": integer(), "title": str(), "text": str(), "truncated": boolean(), "clauses": array(ref("clause"))},
						"number", "title")),
				},
				"number", "title"))},
			"parts"),
	}

	kinds := []extract.ScheduleKind{
		extract.KindCounties, extract.KindSymbols, extract.KindOaths,
		extract.KindFunctions, extract.KindLegislation, extract.KindTransitional,
	}
	contentDefs := []string{"counties", "nationalSymbols", "oaths", "functions", "legislation", "transitional"}

	variants := make([]*jsonschema.Schema, 0, len(kinds))
	for i, kind := range kinds {
		variants = append(variants, &jsonschema.Schema{
			Properties: props{"type": enum(kind), "content": ref(contentDefs[i])},
		})
	}
	schedule := object("One of the six schedules. The type selects the content shape.",
		props{"number": integer(), "title": str(), "reference": str(), "type": enum(kinds...), "content": {}},
		"number", "title", "type", "content")
	schedule.OneOf = variants
	defs["schedule"] = schedule

	root := object("A parsed constitution.",
		props{
			"preamble": object("Introductory text as ordered paragraphs.",
				props{"paragraphs": array(str())}, "paragraphs"),
			"chapters":  array(ref("chapter")),
			"schedules": array(ref("schedule")),
		},
		"chapters", "schedules")
	root.Schema = schemaDraft
	root.ID = schemaID
	root.Title = "Constitution"
	root.Defs = defs
	return root
}

// SchemaJSON returns the indented JSON encoding of Schema.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}
	return data, nil
}

func nationalSymbolsSchema() *jsonschema.Schema {
	symbol := object("", props{"description": str()}, "description")
	verse := object("", props{"number": integer(), "kiswahili": str(), "english": str()}, "number", "kiswahili", "english")
	return object("Second Schedule content.",
		props{
			"flag":       symbol,
			"anthem":     object("", props{"description": str(), "verses": array(verse)}, "verses"),
			"coatOfArms": symbol,
			"publicSeal": symbol,
			"sections":   array(object("", props{"label": str(), "title": str(), "text": str()}, "label", "title", "text")),
		},
		"flag", "anthem", "coatOfArms", "publicSeal")
}

type props map[string]*jsonschema.Schema

func object(description string, properties props, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 typeObject,
		Description:          description,
		Properties:           properties,
		Required:             required,
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}

// array allows null because nil slices encode as null.
func array(items *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Types: []string{typeArray, typeNull}, Items: items}
}

func str() *jsonschema.Schema     { return &jsonschema.Schema{Type: typeString} }
func integer() *jsonschema.Schema { return &jsonschema.Schema{Type: typeInteger} }
func boolean() *jsonschema.Schema { return &jsonschema.Schema{Type: typeBoolean} }

func ref(name string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: "#/$defs/" + name}
}

func enum[T ~string](values ...T) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: typeString}
	for _, v := range values {
		s.Enum = append(s.Enum, string(v))
	}
	return s
}
