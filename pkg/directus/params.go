package directus

import (
	"fmt"
	"maps"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Params are the options passed to read verbs. Remote clients send them as
// query parameters; local clients decode them into a Query.
type Params map[string]any

// With returns a copy of p with key set to value.
func (p Params) With(key string, value any) Params {
	out := maps.Clone(p)
	if out == nil {
		out = Params{}
	}
	out[key] = value
	return out
}

// Filter operators understood by the local gateway.
const (
	OpEqual = "eq"
	OpIn    = "in"
)

// Condition is a single filter on a column.
type Condition struct {
	Column   string
	Operator string
	Value    any
}

// Query is the decoded form of Params used against the database.
type Query struct {
	ID        any            `mapstructure:"id"`
	Status    any            `mapstructure:"status"`
	Filters   map[string]any `mapstructure:"filters"`
	Filter    map[string]any `mapstructure:"filter"`
	Sort      string         `mapstructure:"sort"`
	SortOrder string         `mapstructure:"sort_order"`
	Limit     int            `mapstructure:"limit"`
	Offset    int            `mapstructure:"offset"`
	Columns   []string       `mapstructure:"columns"`
}

// DecodeQuery decodes params into a Query. Unknown keys are ignored.
func DecodeQuery(params Params) (Query, error) {
	var q Query
	if len(params) == 0 {
		return q, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &q,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return q, fmt.Errorf("error creating params decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(params)); err != nil {
		return q, fmt.Errorf("%w: invalid params: %v", ErrValidation, err)
	}
	return q, nil
}

// Conditions flattens the filter maps into a list of conditions. A filter
// value may be a plain value (equality) or a map of operator to value.
func (q Query) Conditions() ([]Condition, error) {
	var out []Condition
	for _, filters := range []map[string]any{q.Filter, q.Filters} {
		for column, raw := range filters {
			ops, ok := raw.(map[string]any)
			if !ok {
				out = append(out, Condition{Column: column, Operator: OpEqual, Value: raw})
				continue
			}
			for op, value := range ops {
				op = strings.ToLower(op)
				if op != OpEqual && op != OpIn {
					return nil, fmt.Errorf("%w: unsupported filter operator %q on %s", ErrValidation, op, column)
				}
				out = append(out, Condition{Column: column, Operator: op, Value: value})
			}
		}
	}
	return out, nil
}

// Descending reports whether the sort order asks for descending results.
func (q Query) Descending() bool {
	return strings.EqualFold(q.SortOrder, "desc")
}
