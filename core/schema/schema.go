// Package schema holds the structural contract of every collection: the
// $jsonSchema validator installed on the store and the indexes created with it.
package schema

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson"
)

// Type is a BSON type alias as understood by $jsonSchema's bsonType keyword.
type Type string

const (
	TypeObject Type = "object"
	TypeArray  Type = "array"
	TypeString Type = "string"
	TypeBool   Type = "bool"
	TypeInt    Type = "int"
	TypeLong   Type = "long"
	TypeDouble Type = "double"
	TypeDate   Type = "date"
	TypeNull   Type = "null"
)

// Property constrains a single field.
type Property struct {
	Types       []Type
	Enum        []string
	Minimum     *float64
	Maximum     *float64
	Pattern     string
	Items       *Property
	Required    []string
	Properties  map[string]Property
	Description string
}

// Index describes an ascending index over one or more fields.
type Index struct {
	Name   string
	Keys   []string
	Unique bool
}

// Schema is the contract of one collection.
type Schema struct {
	Collection string
	Required   []string
	Properties map[string]Property
	Indexes    []Index
}

// JSONSchema renders the validator document for the store's collMod/create commands.
func (s Schema) JSONSchema() bson.M {
	root := Property{Types: []Type{TypeObject}, Required: s.Required, Properties: s.Properties}
	return root.jsonSchema()
}

// Validator wraps JSONSchema in the `validator` option expected by the store.
func (s Schema) Validator() bson.M {
	return bson.M{"$jsonSchema": s.JSONSchema()}
}

// UniqueIndexes returns the indexes with the unique option set.
func (s Schema) UniqueIndexes() []Index {
	var idxs []Index
	for _, idx := range s.Indexes {
		if idx.Unique {
			idxs = append(idxs, idx)
		}
	}
	return idxs
}

func (p Property) jsonSchema() bson.M {
	m := bson.M{}
	switch len(p.Types) {
	case 0:
	case 1:
		m["bsonType"] = string(p.Types[0])
	default:
		types := make(bson.A, 0, len(p.Types))
		for _, t := range p.Types {
			types = append(types, string(t))
		}
		m["bsonType"] = types
	}
	if len(p.Enum) > 0 {
		enum := make(bson.A, 0, len(p.Enum))
		for _, e := range p.Enum {
			enum = append(enum, e)
		}
		m["enum"] = enum
	}
	if p.Minimum != nil {
		m["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		m["maximum"] = *p.Maximum
	}
	if p.Pattern != "" {
		m["pattern"] = p.Pattern
	}
	if p.Items != nil {
		m["items"] = p.Items.jsonSchema()
	}
	if len(p.Required) > 0 {
		req := make(bson.A, 0, len(p.Required))
		for _, r := range p.Required {
			req = append(req, r)
		}
		m["required"] = req
	}
	if len(p.Properties) > 0 {
		props := bson.M{}
		for name, prop := range p.Properties {
			props[name] = prop.jsonSchema()
		}
		m["properties"] = props
	}
	if p.Description != "" {
		m["description"] = p.Description
	}
	return m
}

func (p Property) sortedNames() []string {
	names := make([]string, 0, len(p.Properties))
	for name := range p.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Property) allows(t Type) bool {
	if len(p.Types) == 0 {
		return true
	}
	for _, pt := range p.Types {
		if pt == t {
			return true
		}
	}
	return false
}

func (p Property) inEnum(s string) bool {
	for _, e := range p.Enum {
		if e == s {
			return true
		}
	}
	return false
}

func bound(v float64) *float64 { return &v }

func types(ts ...Type) []Type { return ts }
