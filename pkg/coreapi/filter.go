package coreapi

import (
	"encoding"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrEmptyPredicate   = errors.New("empty predicate expression")
	ErrInvalidPredicate = errors.New("invalid predicate expression")
)

// Operator is the comparison performed by a Predicate.
type Operator int

const (
	// OpSmaller matches field values lower than the operand (key<value).
	OpSmaller Operator = iota
	// OpBigger matches field values greater than the operand (key>value).
	OpBigger
	// OpEq matches field values equal to the operand (key=value).
	OpEq
	// OpSmallerEq matches field values lower than or equal to the operand (key<=value).
	OpSmallerEq
	// OpBiggerEq matches field values greater than or equal to the operand (key>=value).
	OpBiggerEq
	// OpExists matches documents where the field is present (_exists_:key).
	OpExists
	// OpHasValue matches documents whose field contains the operand (key:value).
	OpHasValue
)

// String returns the operator name.
func (o Operator) String() string {
	switch o {
	case OpSmaller:
		return "smaller"
	case OpBigger:
		return "bigger"
	case OpEq:
		return "eq"
	case OpSmallerEq:
		return "smaller-eq"
	case OpBiggerEq:
		return "bigger-eq"
	case OpExists:
		return "exists"
	case OpHasValue:
		return "has-value"
	default:
		return fmt.Sprintf("operator(%d)", int(o))
	}
}

// Predicate is a single comparison between a field and a value.
//
// Keys and values are rendered to text when the predicate is built, so a
// chain can freely mix numeric, date and textual operands. Nothing is escaped:
// the rendered text is placed into the query as-is.
type Predicate struct {
	op    Operator
	key   string
	value string
}

// Smaller builds key<value.
func Smaller[K, V any](key K, value V) Predicate {
	return newPredicate(OpSmaller, key, value)
}

// Bigger builds key>value.
func Bigger[K, V any](key K, value V) Predicate {
	return newPredicate(OpBigger, key, value)
}

// Eq builds key=value.
func Eq[K, V any](key K, value V) Predicate {
	return newPredicate(OpEq, key, value)
}

// SmallerEq builds key<=value.
func SmallerEq[K, V any](key K, value V) Predicate {
	return newPredicate(OpSmallerEq, key, value)
}

// BiggerEq builds key>=value.
func BiggerEq[K, V any](key K, value V) Predicate {
	return newPredicate(OpBiggerEq, key, value)
}

// Exists builds _exists_:key.
func Exists[K any](key K) Predicate {
	return Predicate{op: OpExists, key: Render(key)}
}

// HasValue builds key:value.
func HasValue[K, V any](key K, value V) Predicate {
	return newPredicate(OpHasValue, key, value)
}

func newPredicate[K, V any](op Operator, key K, value V) Predicate {
	return Predicate{op: op, key: Render(key), value: Render(value)}
}

// Operator returns the comparison kind.
func (p Predicate) Operator() Operator { return p.op }

// Key returns the rendered field name.
func (p Predicate) Key() string { return p.key }

// Value returns the rendered operand. It is empty for Exists.
func (p Predicate) Value() string { return p.value }

// String renders the predicate in the search syntax.
func (p Predicate) String() string {
	switch p.op {
	case OpSmaller:
		return p.key + "<" + p.value
	case OpBigger:
		return p.key + ">" + p.value
	case OpEq:
		return p.key + "=" + p.value
	case OpSmallerEq:
		return p.key + "<=" + p.value
	case OpBiggerEq:
		return p.key + ">=" + p.value
	case OpExists:
		return "_exists_:" + p.key
	case OpHasValue:
		return p.key + ":" + p.value
	default:
		return ""
	}
}

// Render converts a key or operand to its textual form.
// Times are formatted as RFC 3339 in UTC.
func Render(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case *time.Time:
		if val == nil {
			return ""
		}

		return val.UTC().Format(time.RFC3339)
	case encoding.TextMarshaler:
		text, err := val.MarshalText()
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(text)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

type operatorToken struct {
	token string
	op    Operator
}

// operatorTokens is ordered so that two-character operators are tried first.
var operatorTokens = []operatorToken{
	{"<=", OpSmallerEq},
	{">=", OpBiggerEq},
	{"<", OpSmaller},
	{">", OpBigger},
	{"=", OpEq},
	{":", OpHasValue},
}

// ParsePredicate parses the textual form produced by Predicate.String.
func ParsePredicate(expr string) (Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Predicate{}, ErrEmptyPredicate
	}

	if key, ok := strings.CutPrefix(expr, "_exists_:"); ok {
		if key == "" {
			return Predicate{}, fmt.Errorf("%w: %q has no field", ErrInvalidPredicate, expr)
		}

		return Exists(key), nil
	}

	idx, tok := firstOperator(expr)
	if idx <= 0 {
		return Predicate{}, fmt.Errorf("%w: %q", ErrInvalidPredicate, expr)
	}

	key := strings.TrimSpace(expr[:idx])
	value := strings.TrimSpace(expr[idx+len(tok.token):])

	return Predicate{op: tok.op, key: key, value: value}, nil
}

// firstOperator finds the leftmost operator in expr, preferring the longer
// token when two start at the same position.
func firstOperator(expr string) (int, operatorToken) {
	best := -1

	var found operatorToken

	for _, candidate := range operatorTokens {
		idx := strings.Index(expr, candidate.token)
		if idx < 0 {
			continue
		}

		if best == -1 || idx < best {
			best = idx
			found = candidate
		}
	}

	return best, found
}

// Connector joins a predicate to the expression accumulated before it.
type Connector int

const (
	// And requires both sides to match.
	And Connector = iota
	// Or requires either side to match.
	Or
)

// Token returns the URL-encoded connector emitted into the query string.
func (c Connector) Token() string {
	if c == Or {
		return "%20OR%20"
	}

	return "%20AND%20"
}

// String returns the connector keyword.
func (c Connector) String() string {
	if c == Or {
		return "OR"
	}

	return "AND"
}

// ParseConnector accepts "and" or "or" in any case.
func ParseConnector(s string) (Connector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "and":
		return And, nil
	case "or":
		return Or, nil
	default:
		return And, fmt.Errorf("%w: unknown connector %q", ErrInvalidPredicate, s)
	}
}

// Filter is one entry of a filter chain.
type Filter struct {
	Connector Connector
	Predicate Predicate
}

// String renders the connector token followed by the predicate.
func (f Filter) String() string {
	return f.Connector.Token() + f.Predicate.String()
}
