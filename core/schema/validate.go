package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduhub/eduhub/core"
)

var (
	patternsMu sync.Mutex
	patterns   = map[string]*regexp.Regexp{}
)

// Validate checks doc against the contract of s and reports every violation.
func Validate(s Schema, doc bson.M) error {
	root := Property{Types: types(TypeObject), Required: s.Required, Properties: s.Properties}
	var flds []core.FieldError
	root.check("", doc, &flds)
	if len(flds) == 0 {
		return nil
	}
	return core.NewValidationError(errors.Errorf("document failed validation for %s", s.Collection), flds...)
}

// ValidateValue renders v the way the store would persist it and validates the result.
func ValidateValue(s Schema, v interface{}) error {
	doc, err := ToDocument(v)
	if err != nil {
		return err
	}
	return Validate(s, doc)
}

// ToDocument round-trips v through BSON.
func ToDocument(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding document")
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding document")
	}
	return doc, nil
}

// TypeOf reports the BSON type alias of a decoded value.
func TypeOf(v interface{}) Type {
	switch v.(type) {
	case nil, primitive.Null:
		return TypeNull
	case string:
		return TypeString
	case bool:
		return TypeBool
	case int32:
		return TypeInt
	case int64:
		return TypeLong
	case float64:
		return TypeDouble
	case primitive.DateTime, time.Time:
		return TypeDate
	case primitive.M, primitive.D, map[string]interface{}:
		return TypeObject
	case primitive.A, []interface{}:
		return TypeArray
	default:
		return Type(fmt.Sprintf("%T", v))
	}
}

func (p Property) check(path string, v interface{}, flds *[]core.FieldError) {
	fail := func(msg string) {
		*flds = append(*flds, core.FieldError{Field: path, Error: msg})
	}

	t := TypeOf(v)
	if !p.allows(t) {
		fail("must be of type " + joinTypes(p.Types))
		return
	}
	if len(p.Enum) > 0 {
		s, ok := v.(string)
		if !ok || !p.inEnum(s) {
			fail("must be one of " + strings.Join(p.Enum, ", "))
			return
		}
	}
	if n, ok := number(v); ok {
		if p.Minimum != nil && n < *p.Minimum {
			fail("must be >= " + strconv.FormatFloat(*p.Minimum, 'f', -1, 64))
		}
		if p.Maximum != nil && n > *p.Maximum {
			fail("must be <= " + strconv.FormatFloat(*p.Maximum, 'f', -1, 64))
		}
	}
	if s, ok := v.(string); ok && p.Pattern != "" {
		if !compile(p.Pattern).MatchString(s) {
			fail("must match pattern " + p.Pattern)
		}
	}

	switch t {
	case TypeArray:
		if p.Items == nil {
			return
		}
		for i, item := range elements(v) {
			p.Items.check(join(path, strconv.Itoa(i)), item, flds)
		}
	case TypeObject:
		fields := fieldsOf(v)
		for _, name := range p.Required {
			if _, ok := fields[name]; !ok {
				*flds = append(*flds, core.FieldError{Field: join(path, name), Error: "is required"})
			}
		}
		for _, name := range p.sortedNames() {
			fv, ok := fields[name]
			if !ok {
				continue
			}
			p.Properties[name].check(join(path, name), fv, flds)
		}
	}
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func elements(v interface{}) []interface{} {
	switch a := v.(type) {
	case primitive.A:
		return a
	case []interface{}:
		return a
	}
	return nil
}

func fieldsOf(v interface{}) map[string]interface{} {
	switch d := v.(type) {
	case primitive.M:
		return d
	case map[string]interface{}:
		return d
	case primitive.D:
		return d.Map()
	}
	return nil
}

func compile(pattern string) *regexp.Regexp {
	patternsMu.Lock()
	defer patternsMu.Unlock()
	re, ok := patterns[pattern]
	if !ok {
		re = regexp.MustCompile(pattern)
		patterns[pattern] = re
	}
	return re
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func joinTypes(ts []Type) string {
	ss := make([]string, 0, len(ts))
	for _, t := range ts {
		ss = append(ss, string(t))
	}
	return strings.Join(ss, " or ")
}
