package services

import (
	"context"
	"strings"

	"github.com/openscan/vuln-manager/internal/models"
	"github.com/openscan/vuln-manager/internal/resources"
	"github.com/openscan/vuln-manager/internal/store"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

// Filters manages stored filter terms. Terms are normalized on every write
// so what is persisted is always the canonical form with pagination
// sentinels resolved.
type Filters struct {
	store   *store.Store
	listing *Listing
}

func NewFilters(st *store.Store, listing *Listing) *Filters {
	return &Filters{store: st, listing: listing}
}

func (s *Filters) Create(ctx context.Context, f *models.Filter) (string, error) {
	if strings.TrimSpace(f.Name) == "" {
		return "", srvErrors.NewInvalidArgumentError("filter name must not be empty")
	}
	if f.Type != "" && !resources.Known(f.Type) {
		return "", srvErrors.NewUnknownResourceTypeError(f.Type)
	}

	f.Term = s.listing.Clean(ctx, f.Term, "")
	return s.store.Filters().Create(ctx, f)
}

func (s *Filters) Get(ctx context.Context, filterUUID string) (*models.Filter, error) {
	return s.store.Filters().Get(ctx, filterUUID)
}

func (s *Filters) Update(ctx context.Context, f *models.Filter) error {
	if strings.TrimSpace(f.Name) == "" {
		return srvErrors.NewInvalidArgumentError("filter name must not be empty")
	}

	f.Term = s.listing.Clean(ctx, f.Term, "")
	return s.store.Filters().Update(ctx, f)
}

// ReplaceKeyword drops every keyword on one column from a stored filter's
// term and appends a replacement keyword, e.g. swapping the page size
// without disturbing the rest of the term.
func (s *Filters) ReplaceKeyword(ctx context.Context, filterUUID, column, replacement string) (*models.Filter, error) {
	f, err := s.store.Filters().Get(ctx, filterUUID)
	if err != nil {
		return nil, err
	}

	term := s.listing.Clean(ctx, f.Term, column)
	if replacement != "" {
		if term != "" {
			term += " "
		}
		term += replacement
	}
	f.Term = s.listing.Clean(ctx, term, "")

	if err := s.store.Filters().Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Trash moves a stored filter to the trashcan; Delete removes it for good.
func (s *Filters) Trash(ctx context.Context, filterUUID string) error {
	return s.store.Filters().Trash(ctx, filterUUID)
}

func (s *Filters) Delete(ctx context.Context, filterUUID string) error {
	return s.store.Filters().Delete(ctx, filterUUID)
}
