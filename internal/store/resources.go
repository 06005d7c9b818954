package store

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/openscan/vuln-manager/internal/models"
	"github.com/openscan/vuln-manager/internal/resources"
	"github.com/openscan/vuln-manager/pkg/filter"
)

// ResourceStore runs the listing and counting queries every resource type
// shares. The WHERE and ORDER BY fragments arrive precompiled from the
// filter compiler; identifiers inside them only ever come from the column
// declarations of the registry.
type ResourceStore struct {
	db QueryInterceptor
}

func NewResourceStore(db QueryInterceptor) *ResourceStore {
	return &ResourceStore{db: db}
}

// List returns the rows of one resource type selected by a compiled
// clause, keyed by filter-facing column name. Private underscore columns
// are filterable but never selected.
func (s *ResourceStore) List(ctx context.Context, typ *resources.Type, trash bool, clause filter.Clause) ([]models.Resource, error) {
	builder := sq.Select(selectExpressions(typ)...).From(listingTable(typ, trash))
	builder = applyClause(builder, typ, clause)

	if order := strings.TrimPrefix(clause.Order, "ORDER BY "); order != "" {
		builder = builder.OrderBy(order)
	}
	if clause.Max > 0 {
		builder = builder.Limit(uint64(clause.Max))
	}
	if clause.First > 0 {
		builder = builder.Offset(uint64(clause.First))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []models.Resource
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(models.Resource, len(columns))
		for i, name := range columns {
			row[name] = values[i]
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// Count returns the number of rows the clause's WHERE fragment matches,
// ignoring pagination and ordering.
func (s *ResourceStore) Count(ctx context.Context, typ *resources.Type, trash bool, clause filter.Clause) (int, error) {
	builder := sq.Select("count(*)").From(listingTable(typ, trash))
	builder = applyClause(builder, typ, clause)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func applyClause(builder sq.SelectBuilder, typ *resources.Type, clause filter.Clause) sq.SelectBuilder {
	if clause.Where != "" {
		builder = builder.Where(clause.Where)
	}
	// An owner= keyword intersects with whatever the filter matched; the
	// compiler never embeds it in the WHERE fragment itself.
	if clause.Owner != "" {
		builder = builder.Where(sq.Eq{typ.Table + ".owner": clause.Owner})
	}
	return builder
}

func listingTable(typ *resources.Type, trash bool) string {
	table := typ.Table
	if trash && typ.HasTrash() {
		table += "_trash"
	}
	// The compiled fragments qualify columns with the live table name, so
	// the trash table runs under that name as an alias.
	if table != typ.Table {
		return table + " AS " + typ.Table
	}
	return table
}

func selectExpressions(typ *resources.Type) []string {
	exprs := make([]string, 0, len(typ.SelectColumns))
	for _, col := range typ.SelectColumns {
		if strings.HasPrefix(col.Name, "_") {
			continue
		}
		exprs = append(exprs, col.Expr+" AS "+col.Name)
	}
	return exprs
}
