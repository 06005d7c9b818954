package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openscan/vuln-manager/internal/models"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

// FilterStore persists stored, named filter terms. Terms are normalized by
// the service layer before they get here.
type FilterStore struct {
	db QueryInterceptor
}

func NewFilterStore(db QueryInterceptor) *FilterStore {
	return &FilterStore{db: db}
}

// Create inserts a stored filter and returns its generated UUID.
func (s *FilterStore) Create(ctx context.Context, f *models.Filter) (string, error) {
	id := uuid.NewString()
	now := time.Now().Unix()

	query, args, err := sq.Insert("filters").
		Columns("uuid", "name", "comment", "type", "term", "owner", "created", "modified").
		Values(id, f.Name, f.Comment, f.Type, f.Term, f.Owner, now, now).
		ToSql()
	if err != nil {
		return "", err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", err
	}
	return id, nil
}

func (s *FilterStore) Get(ctx context.Context, filterUUID string) (*models.Filter, error) {
	query, args, err := sq.Select("uuid", "name", "comment", "type", "term", "owner", "created", "modified").
		From("filters").
		Where(sq.Eq{"uuid": filterUUID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var f models.Filter
	row := s.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&f.UUID, &f.Name, &f.Comment, &f.Type, &f.Term, &f.Owner, &f.Created, &f.Modified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewFilterNotFoundError()
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Update replaces the mutable fields of a stored filter.
func (s *FilterStore) Update(ctx context.Context, f *models.Filter) error {
	query, args, err := sq.Update("filters").
		Set("name", f.Name).
		Set("comment", f.Comment).
		Set("term", f.Term).
		Set("modified", time.Now().Unix()).
		Where(sq.Eq{"uuid": f.UUID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(result, srvErrors.NewFilterNotFoundError())
}

// Trash moves a stored filter into the trashcan.
func (s *FilterStore) Trash(ctx context.Context, filterUUID string) error {
	insert, args, err := sq.Insert("filters_trash").
		Columns("uuid", "name", "comment", "type", "term", "owner", "created", "modified").
		Select(sq.Select("uuid", "name", "comment", "type", "term", "owner", "created", "modified").
			From("filters").
			Where(sq.Eq{"uuid": filterUUID})).
		ToSql()
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, insert, args...)
	if err != nil {
		return err
	}
	if err := requireRow(result, srvErrors.NewFilterNotFoundError()); err != nil {
		return err
	}

	return s.Delete(ctx, filterUUID)
}

func (s *FilterStore) Delete(ctx context.Context, filterUUID string) error {
	query, args, err := sq.Delete("filters").
		Where(sq.Eq{"uuid": filterUUID}).
		ToSql()
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(result, srvErrors.NewFilterNotFoundError())
}

func requireRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
