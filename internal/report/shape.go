package report

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Shape is a recognised report layout.
type Shape int

const (
	ShapeAgents Shape = iota + 1
	ShapeInteractions
	ShapeItemUsage
	ShapeItemDamage
)

func (s Shape) String() string {
	switch s {
	case ShapeAgents:
		return "agents"
	case ShapeInteractions:
		return "interactions"
	case ShapeItemUsage:
		return "item-usage"
	case ShapeItemDamage:
		return "item-damage"
	}
	return "unknown"
}

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const schemaBase = "https://graphs.local/schemas/"

// Classifier detects report shapes by validating documents against the
// embedded key-presence schemas.
type Classifier struct {
	schemas map[Shape]*jsonschema.Schema
}

// NewClassifier compiles the embedded shape schemas.
func NewClassifier() (*Classifier, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	shapes := []Shape{ShapeAgents, ShapeInteractions, ShapeItemUsage, ShapeItemDamage}
	for _, s := range shapes {
		data, err := schemaFS.ReadFile("schemas/" + s.String() + ".schema.json")
		if err != nil {
			return nil, err
		}
		if err := c.AddResource(schemaBase+s.String()+".schema.json", bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", s, err)
		}
	}
	out := &Classifier{schemas: make(map[Shape]*jsonschema.Schema, len(shapes))}
	for _, s := range shapes {
		sch, err := c.Compile(schemaBase + s.String() + ".schema.json")
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", s, err)
		}
		out.schemas[s] = sch
	}
	return out, nil
}

// Matches reports whether doc has the keys of shape s.
func (c *Classifier) Matches(doc *Document, s Shape) bool {
	sch, ok := c.schemas[s]
	if !ok {
		return false
	}
	return sch.Validate(doc.tree) == nil
}

// Classify returns the shapes to render, in render order. Agent and
// interaction data may both be present; the item shapes are only
// considered when neither is, and the usage shape wins over damage.
// An empty result means the document has no recognised layout.
func (c *Classifier) Classify(doc *Document) []Shape {
	var shapes []Shape
	if c.Matches(doc, ShapeAgents) {
		shapes = append(shapes, ShapeAgents)
	}
	if c.Matches(doc, ShapeInteractions) {
		shapes = append(shapes, ShapeInteractions)
	}
	if len(shapes) > 0 {
		return shapes
	}
	switch {
	case c.Matches(doc, ShapeItemUsage):
		return []Shape{ShapeItemUsage}
	case c.Matches(doc, ShapeItemDamage):
		return []Shape{ShapeItemDamage}
	}
	return nil
}
