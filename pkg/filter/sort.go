package filter

import (
	"fmt"
	"slices"
	"strings"
)

// sortSpecials maps resource type and sort field to an order expression
// template. "{dir}" is replaced with ASC or DESC. Everything absent from
// this table sorts by the generic per-type rules in primarySortExpr.
var sortSpecials = map[string]map[string]string{
	"task": {
		// Group container tasks and sort running scans by progress rather
		// than alphabetically by the raw status code.
		"status": "(order_status(tasks.status) || lpad(CAST (tasks.progress AS TEXT), 3, '0')) {dir}",
		"threat": "order_threat(tasks.threat) {dir}",
	},
	"report": {
		"status": "(order_status(reports.status) || lpad(CAST (reports.progress AS TEXT), 3, '0')) {dir}",
	},
	"result": {
		"host": "order_inet(CAST (results.host AS TEXT)) {dir}",
	},
	"host": {
		"ip": "order_inet(CAST (hosts.ip AS TEXT)) {dir}",
	},
	"user": {
		"roles": "order_role(CAST (users.roles AS TEXT)) {dir}",
	},
	"note": {
		"nvt": "notes.nvt {dir}, lower(CAST (notes.text AS TEXT)) {dir}",
	},
	"override": {
		"nvt": "overrides.nvt {dir}, lower(CAST (overrides.text AS TEXT)) {dir}",
	},
}

// severitySortColumns sort numerically with the empty string below every
// number, so blank severities come first ascending.
var severitySortColumns = map[string]struct{}{
	"severity":     {},
	"new_severity": {},
	"cvss":         {},
	"cvss_base":    {},
	"max_cvss":     {},
}

// inetSortColumns order dotted quads and host names by address rather than
// lexically.
var inetSortColumns = map[string]struct{}{
	"ip":   {},
	"host": {},
}

// orderBuilder accumulates ORDER BY terms from sort keywords. The first
// sort keyword sets the primary ordering with its per-type special casing;
// later keywords append plain tie-breakers.
type orderBuilder struct {
	req   Request
	terms []string
}

func newOrderBuilder(req Request) *orderBuilder {
	return &orderBuilder{req: req}
}

func (o *orderBuilder) add(field string, ascending bool) {
	if !slices.Contains(o.req.FilterColumns, field) {
		return
	}

	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	if len(o.terms) == 0 {
		if expr := o.primarySortExpr(field, direction); expr != "" {
			o.terms = append(o.terms, expr)
		}
		return
	}

	expr, _, ok := resolveColumn(o.req.SelectColumns, o.req.WhereColumns, field)
	if !ok {
		return
	}
	o.terms = append(o.terms, fmt.Sprintf("%s %s", expr, direction))
}

func (o *orderBuilder) clause() string {
	if len(o.terms) == 0 {
		return ""
	}
	return "ORDER BY " + strings.Join(o.terms, ", ")
}

func (o *orderBuilder) primarySortExpr(field, direction string) string {
	if specials, ok := sortSpecials[o.req.Type]; ok {
		if template, ok := specials[field]; ok {
			return strings.ReplaceAll(template, "{dir}", direction)
		}
	}

	expr, colType, ok := resolveColumn(o.req.SelectColumns, o.req.WhereColumns, field)
	if !ok {
		// Notes and overrides have no name column; a sort that resolves
		// nowhere falls back to their two-level default instead of
		// dropping the ordering entirely.
		if o.req.Type == "note" || o.req.Type == "override" {
			table := o.req.Type + "s"
			return fmt.Sprintf("%s.nvt ASC, lower(CAST (%s.text AS TEXT)) ASC", table, table)
		}
		return ""
	}

	if _, ok := severitySortColumns[field]; ok {
		return fmt.Sprintf(
			"(CASE WHEN %s IS NULL OR CAST (%s AS TEXT) = '' THEN -1000000.0 ELSE CAST (%s AS DOUBLE) END) %s",
			expr, expr, expr, direction,
		)
	}

	if _, ok := inetSortColumns[field]; ok {
		return fmt.Sprintf("order_inet(CAST (%s AS TEXT)) %s", expr, direction)
	}

	switch colType {
	case TypeInteger:
		return fmt.Sprintf("CAST (%s AS INTEGER) %s", expr, direction)
	case TypeDouble:
		return fmt.Sprintf("CAST (%s AS DOUBLE) %s", expr, direction)
	default:
		return fmt.Sprintf("lower(CAST (%s AS TEXT)) %s", expr, direction)
	}
}
