package filter

import "strings"

// ColumnDecl maps a filter-facing column name to the SQL expression that
// backs it and the declared type of that expression.
//
// A Name with a leading underscore is filterable but never selectable; the
// underscore is stripped when matching filter keywords.
type ColumnDecl struct {
	Name string
	Expr string
	Type ValueType
}

// Filterable reports whether the declaration answers to the given filter
// column name, honoring the private underscore convention.
func (c ColumnDecl) Filterable(name string) bool {
	return c.Name == name || strings.TrimPrefix(c.Name, "_") == name
}

// resolveColumn looks up a filter column name in the select columns first,
// then in the where-only columns. Within each table the filter-facing name
// is tried before the raw SQL expression, which covers columns declared
// without a distinct alias. Returns ok=false when the name is unknown.
func resolveColumn(selectColumns, whereColumns []ColumnDecl, name string) (string, ValueType, bool) {
	for _, table := range [][]ColumnDecl{selectColumns, whereColumns} {
		for _, col := range table {
			if col.Filterable(name) {
				return col.Expr, col.Type, true
			}
		}
		for _, col := range table {
			if col.Expr == name {
				return col.Expr, col.Type, true
			}
		}
	}
	return "", TypeUnknown, false
}
