package filter

import (
	"regexp"
	"strconv"
	"strings"
)

// ValueType is the inferred type of a keyword value or the declared type of
// a filterable column.
type ValueType int

const (
	TypeUnknown ValueType = iota
	TypeString
	TypeInteger
	TypeDouble
)

var valueTypeNames = map[ValueType]string{
	TypeUnknown: "unknown",
	TypeString:  "string",
	TypeInteger: "integer",
	TypeDouble:  "double",
}

func (t ValueType) String() string {
	return valueTypeNames[t]
}

// Numeric reports whether the type allows numeric comparison.
func (t ValueType) Numeric() bool {
	return t == TypeInteger || t == TypeDouble
}

// Relation is the comparison a keyword requests against its column.
type Relation int

const (
	RelNone Relation = iota
	RelEqual
	RelApprox
	RelAbove
	RelBelow
	RelRegexp
	// RelWordApprox marks a free-text term with no column.
	RelWordApprox
)

var relationSymbols = map[Relation]string{
	RelEqual:  "=",
	RelApprox: "~",
	RelAbove:  ">",
	RelBelow:  "<",
	RelRegexp: ":",
}

// Symbol returns the operator character used in filter term syntax, or ""
// for relations that have none.
func (r Relation) Symbol() string {
	return relationSymbols[r]
}

// Keyword is one parsed unit of a filter term. Keywords are immutable after
// the splitter produces them and are owned by the returned slice.
type Keyword struct {
	// Column is empty for free-text terms and logical operators.
	Column string
	// Value is the literal text of the keyword value.
	Value string
	// Integer and Double hold the numeric parse of Value, valid only when
	// Type says so.
	Integer int
	Double  float64

	Type     ValueType
	Relation Relation
	// Quoted records whether the value was quote delimited in the input.
	Quoted bool
	// Equal records a bare leading "=", the exact free-text marker.
	Equal bool
}

var integerPattern = regexp.MustCompile(`^-?\d+$`)

// typeValue infers the value type of a keyword and fills the numeric
// fields. Quoting does not suppress numeric typing; it only affects
// reserved-word and literal handling.
func (k *Keyword) typeValue() {
	if integerPattern.MatchString(k.Value) {
		if n, err := strconv.Atoi(k.Value); err == nil {
			k.Integer = n
			k.Type = TypeInteger
			return
		}
	}
	if d, err := strconv.ParseFloat(k.Value, 64); err == nil && k.Value != "" {
		k.Double = d
		k.Type = TypeDouble
		return
	}
	k.Type = TypeString
}

// reserved words that act as logical operators when they appear bare and
// unquoted.
var logicalWords = map[string]struct{}{
	"and":    {},
	"or":     {},
	"not":    {},
	"re":     {},
	"regexp": {},
}

// logicalOp returns the lowercased operator word when the keyword is a bare
// logical operator.
func (k *Keyword) logicalOp() (string, bool) {
	if k.Column != "" || k.Quoted || k.Equal || k.Relation != RelWordApprox {
		return "", false
	}
	word := strings.ToLower(k.Value)
	if _, ok := logicalWords[word]; !ok {
		return "", false
	}
	return word, true
}

// control reports whether the keyword is a pagination or sort directive
// rather than part of the boolean clause.
func (k *Keyword) control() bool {
	switch k.Column {
	case "first", "rows", "sort", "sort-reverse":
		return true
	}
	return false
}
