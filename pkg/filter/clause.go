package filter

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultRowCap bounds the page size of any listing query unless the
	// caller explicitly opts out.
	DefaultRowCap = 1000
	// FallbackPageSize resolves the rows=-2 sentinel when no settings
	// lookup is wired in.
	FallbackPageSize = 10
)

// Clause is the compiled form of a filter term, ready to embed in a listing
// or counting query.
type Clause struct {
	// Where is a syntactically complete boolean expression, or empty when
	// no keyword produced output.
	Where string
	// Order is a complete ORDER BY clause, possibly multi-term, or empty.
	Order string
	// First is the zero-based offset of the first row, always >= 0.
	First int
	// Max is the row limit: -1 means unlimited, otherwise a positive
	// integer within the row cap.
	Max int
	// Permissions collects the values of permission= keywords.
	Permissions []string
	// Owner is the value of the first owner= keyword. Ownership is
	// enforced by the access-control layer, never by the WHERE clause.
	Owner string
}

// Request describes one resource type listing to compile a filter for.
type Request struct {
	// Type is the resource type name, e.g. "task". It selects the table
	// correlated by tag predicates and, with Trash, its trash twin.
	Type   string
	Filter string
	// FilterColumns are the filter-facing names free-text terms expand
	// over.
	FilterColumns []string
	SelectColumns []ColumnDecl
	WhereColumns  []ColumnDecl
	// Trash redirects table references to the *_trash tables.
	Trash bool
	// IgnoreRowCap bypasses the system row cap for this request.
	IgnoreRowCap bool
	// DefaultSort is the field sorted on when the term has no sort
	// directive. Empty means "name".
	DefaultSort string
}

// Compiler turns filter terms into SQL fragments. The zero value is usable;
// all fields refine behavior. Compilers are stateless between calls and
// safe for concurrent use.
type Compiler struct {
	// RowCap overrides DefaultRowCap when positive.
	RowCap int
	// DefaultRows resolves the rows=-2 sentinel, typically from the
	// "rows per page" setting.
	DefaultRows func() int
	// KnownType reports whether a name is a valid resource type; it gates
	// the foreign *_id UUID rewrite.
	KnownType func(string) bool
}

// Compile translates a filter term into a Clause. It never fails on user
// input: unparseable or unresolvable keywords degrade to skipped terms.
func (c *Compiler) Compile(req Request) Clause {
	defaultSort := req.DefaultSort
	if defaultSort == "" {
		defaultSort = "name"
	}
	keywords := split(req.Filter, defaultSort)

	clause := Clause{Max: -2}
	order := newOrderBuilder(req)

	var where strings.Builder
	firstKeyword := true
	lastAnd, lastNot, lastRe := false, false, false

	// A skipped term must not leak its pending join state into the next
	// real term.
	skip := func() { lastAnd, lastNot, lastRe = false, false, false }
	emit := func(term string, distributedNot bool) {
		where.WriteString(joinPrefix(firstKeyword, lastAnd, lastNot && !distributedNot))
		where.WriteString(term)
		firstKeyword, lastAnd, lastNot, lastRe = false, false, false, false
	}

	for _, k := range keywords {
		if op, ok := k.logicalOp(); ok {
			switch op {
			case "and":
				lastAnd = true
			case "not":
				lastNot = true
			case "re", "regexp":
				lastRe = true
			}
			// "or" is the implicit join between terms
			continue
		}

		switch k.Column {
		case "sort":
			order.add(k.Value, true)
			continue
		case "sort-reverse":
			order.add(k.Value, false)
			continue
		case "first":
			clause.First = k.Integer - 1
			if clause.First < 0 {
				clause.First = 0
			}
			continue
		case "rows":
			clause.Max = k.Integer
			continue
		case "permission":
			clause.Permissions = append(clause.Permissions, k.Value)
			continue
		case "owner":
			if clause.Owner == "" {
				clause.Owner = k.Value
			}
			continue
		case "tag", "tag_id":
			term, ok := tagClause(req, k)
			if !ok {
				skip()
				continue
			}
			emit(term, false)
			continue
		}

		if k.Column != "" {
			term, ok := c.columnClause(req, k)
			if !ok {
				skip()
				continue
			}
			emit(term, false)
			continue
		}

		term, ok := freeTextClause(req, k, lastNot, lastRe)
		if !ok {
			skip()
			continue
		}
		// Negation is already distributed over the per-column terms.
		emit(term, true)
	}

	clause.Where = strings.TrimSpace(where.String())
	clause.Order = order.clause()
	clause.Max = c.rowLimit(clause.Max, req.IgnoreRowCap)

	return clause
}

// joinPrefix fixes left-to-right evaluation with no explicit grouping: the
// first term gets no prefix, later terms join with the connective requested
// by the preceding logical keywords.
func joinPrefix(first, and, not bool) string {
	switch {
	case first && not:
		return "NOT "
	case first:
		return ""
	case and && not:
		return " AND NOT "
	case and:
		return " AND "
	case not:
		return " OR NOT "
	default:
		return " OR "
	}
}

// rowLimit resolves the rows sentinel and applies the system cap.
func (c *Compiler) rowLimit(rows int, ignoreCap bool) int {
	if rows == -2 {
		if c.DefaultRows != nil {
			rows = c.DefaultRows()
		} else {
			rows = FallbackPageSize
		}
	}
	if rows < 1 {
		return -1
	}
	if ignoreCap {
		return rows
	}
	rowCap := c.RowCap
	if rowCap <= 0 {
		rowCap = DefaultRowCap
	}
	if rows > rowCap {
		rows = rowCap
	}
	return rows
}

// columnClause compiles one column-relation keyword. ok is false when the
// column resolves nowhere and the term must be skipped.
func (c *Compiler) columnClause(req Request, k *Keyword) (string, bool) {
	if k.Relation == RelEqual {
		if term, ok := c.foreignIDClause(req, k); ok {
			return term, true
		}
	}

	expr, colType, ok := resolveColumn(req.SelectColumns, req.WhereColumns, k.Column)
	if !ok {
		return "", false
	}

	switch k.Relation {
	case RelEqual:
		if numericComparison(k, colType) {
			return fmt.Sprintf("(%s = %s)", numericCast(expr, k, colType), numericLiteral(k)), true
		}
		if k.Value == "" {
			// Exact match on the empty string also accepts NULL.
			return fmt.Sprintf("((%s IS NULL) OR (CAST (%s AS TEXT) = ''))", expr, expr), true
		}
		return fmt.Sprintf("(CAST (%s AS TEXT) = %s)", expr, quote(k.Value)), true
	case RelAbove:
		if numericComparison(k, colType) {
			return fmt.Sprintf("(%s > %s)", numericCast(expr, k, colType), numericLiteral(k)), true
		}
		return fmt.Sprintf("(CAST (%s AS TEXT) > %s)", expr, quote(k.Value)), true
	case RelBelow:
		if numericComparison(k, colType) {
			return fmt.Sprintf("(%s < %s)", numericCast(expr, k, colType), numericLiteral(k)), true
		}
		return fmt.Sprintf("(CAST (%s AS TEXT) < %s)", expr, quote(k.Value)), true
	case RelApprox:
		return fmt.Sprintf("(CAST (%s AS TEXT) ILIKE %s)", expr, quote("%"+k.Value+"%")), true
	case RelRegexp:
		return fmt.Sprintf("regexp_matches(CAST (%s AS TEXT), %s)", expr, quote(k.Value)), true
	default:
		return "", false
	}
}

// foreignIDClause rewrites an equality on a foreign *_id column into a
// references-by-UUID predicate that tolerates dangling and absent
// references. nvt_id and result_id are literal columns, not references.
// The reference row-id column is declared under the bare type name, so the
// trimmed name is what resolves.
func (c *Compiler) foreignIDClause(req Request, k *Keyword) (string, bool) {
	name := k.Column
	if !strings.HasSuffix(name, "_id") || name == "nvt_id" || name == "result_id" {
		return "", false
	}
	refType := strings.TrimSuffix(name, "_id")
	if c.KnownType == nil || !c.KnownType(refType) {
		return "", false
	}
	expr, _, ok := resolveColumn(req.SelectColumns, req.WhereColumns, refType)
	if !ok {
		return "", false
	}

	table := refType + "s"
	if req.Trash {
		table += "_trash"
	}

	return fmt.Sprintf(
		"(((SELECT id FROM %s WHERE %s.uuid = %s) = %s) OR (%s IS NULL) OR (%s = 0))",
		table, table, quote(k.Value), expr, expr, expr,
	), true
}

// freeTextClause expands a term with no column into a disjunction over
// every applicable filter column, or a conjunction of negations under NOT.
func freeTextClause(req Request, k *Keyword, negate, regex bool) (string, bool) {
	var terms []string
	for _, name := range req.FilterColumns {
		expr, colType, ok := resolveColumn(req.SelectColumns, req.WhereColumns, name)
		if !ok {
			continue
		}
		if !k.Equal && !enumApplicable(name, k.Value) {
			continue
		}
		terms = append(terms, freeTextTerm(expr, colType, k, negate, regex))
	}
	if len(terms) == 0 {
		return "", false
	}

	connective := " OR "
	if negate {
		connective = " AND "
	}
	return "(" + strings.Join(terms, connective) + ")", true
}

func freeTextTerm(expr string, colType ValueType, k *Keyword, negate, regex bool) string {
	if k.Equal {
		op := "="
		if negate {
			op = "!="
		}
		if numericComparison(k, colType) {
			return fmt.Sprintf("%s %s %s", numericCast(expr, k, colType), op, numericLiteral(k))
		}
		return fmt.Sprintf("CAST (%s AS TEXT) %s %s", expr, op, quote(k.Value))
	}

	if regex {
		term := fmt.Sprintf("regexp_matches(CAST (%s AS TEXT), %s)", expr, quote(k.Value))
		if negate {
			return "NOT " + term
		}
		return term
	}

	op := "ILIKE"
	if negate {
		op = "NOT ILIKE"
	}
	return fmt.Sprintf("CAST (%s AS TEXT) %s %s", expr, op, quote("%"+k.Value+"%"))
}

// enumColumnTokens lists the finite value sets of enumerated columns. A
// free-text search only applies to such a column when the text could occur
// inside one of its values.
var enumColumnTokens = map[string][]string{
	"threat": {"High", "Medium", "Low", "Log", "False Positive", "Debug", "Error"},
	"trend":  {"more", "less", "same", "up", "down"},
	"status": {
		"Delete Requested", "Done", "New", "Requested", "Running",
		"Stop Requested", "Stopped", "Interrupted", "Queued", "Processing",
		"Container",
	},
}

func enumApplicable(column, text string) bool {
	tokens, ok := enumColumnTokens[column]
	if !ok {
		return true
	}
	needle := strings.ToLower(text)
	for _, token := range tokens {
		if strings.Contains(strings.ToLower(token), needle) {
			return true
		}
	}
	return false
}

func numericComparison(k *Keyword, colType ValueType) bool {
	return k.Type.Numeric() && colType.Numeric()
}

func numericCast(expr string, k *Keyword, colType ValueType) string {
	if k.Type == TypeInteger && colType == TypeInteger {
		return fmt.Sprintf("CAST (%s AS INTEGER)", expr)
	}
	return fmt.Sprintf("CAST (%s AS DOUBLE)", expr)
}

func numericLiteral(k *Keyword) string {
	if k.Type == TypeInteger {
		return strconv.Itoa(k.Integer)
	}
	return strconv.FormatFloat(k.Double, 'f', -1, 64)
}

// quote emits a SQL string literal with embedded single quotes doubled.
// Values reach the clause only through this helper or as numeric literals;
// identifiers only ever come from column declarations.
func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
