package services

import (
	"context"

	"github.com/openscan/vuln-manager/internal/models"
	"github.com/openscan/vuln-manager/internal/resources"
	"github.com/openscan/vuln-manager/internal/store"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
	"github.com/openscan/vuln-manager/pkg/filter"
)

// Listing compiles filter terms and runs the resulting queries. Every
// "list resources" and "count resources" operation funnels through here.
type Listing struct {
	store  *store.Store
	rowCap int
}

func NewListing(st *store.Store, rowCap int) *Listing {
	if rowCap <= 0 {
		rowCap = filter.DefaultRowCap
	}
	return &Listing{store: st, rowCap: rowCap}
}

// ListParams selects one page of one resource type.
type ListParams struct {
	Type   string
	Filter string
	Trash  bool
	// IgnoreRowCap lifts the row cap, for internal exports only.
	IgnoreRowCap bool
}

// ListResult is one page of rows plus the total match count and the
// pagination the filter term resolved to.
type ListResult struct {
	Rows  []models.Resource
	Total int
	First int
	Max   int
}

func (l *Listing) List(ctx context.Context, params ListParams) (*ListResult, error) {
	typ := resources.Lookup(params.Type)
	if typ == nil {
		return nil, srvErrors.NewUnknownResourceTypeError(params.Type)
	}

	clause := l.compiler(ctx).Compile(typ.Request(params.Filter, params.Trash, params.IgnoreRowCap))

	rows, err := l.store.Resources().List(ctx, typ, params.Trash, clause)
	if err != nil {
		return nil, err
	}
	total, err := l.store.Resources().Count(ctx, typ, params.Trash, clause)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Rows:  rows,
		Total: total,
		First: clause.First,
		Max:   clause.Max,
	}, nil
}

func (l *Listing) Count(ctx context.Context, params ListParams) (int, error) {
	typ := resources.Lookup(params.Type)
	if typ == nil {
		return 0, srvErrors.NewUnknownResourceTypeError(params.Type)
	}

	clause := l.compiler(ctx).Compile(typ.Request(params.Filter, params.Trash, params.IgnoreRowCap))
	return l.store.Resources().Count(ctx, typ, params.Trash, clause)
}

// Controls extracts only pagination and sort from a term, for listing
// contexts that never touch a resource table.
func (l *Listing) Controls(ctx context.Context, term string) filter.Controls {
	return l.compiler(ctx).Controls(term)
}

// Clean canonicalizes a filter term, optionally dropping one keyword
// column.
func (l *Listing) Clean(ctx context.Context, term, dropColumn string) string {
	return l.compiler(ctx).Clean(term, dropColumn, false)
}

// compiler builds a filter compiler wired to the current settings. The
// compiler itself is stateless; settings are read per request so a changed
// page size applies immediately.
func (l *Listing) compiler(ctx context.Context) *filter.Compiler {
	settings := l.store.Settings()
	return &filter.Compiler{
		RowCap: settings.MaxRowsPerPage(ctx, l.rowCap),
		DefaultRows: func() int {
			return settings.RowsPerPage(ctx, filter.FallbackPageSize)
		},
		KnownType: resources.Known,
	}
}
