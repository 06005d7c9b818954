package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/openscan/vuln-manager/internal/models"
	"github.com/openscan/vuln-manager/internal/resources"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

// TagStore persists tags and their attachments to resources. The tag and
// tag_id filter predicates compile into EXISTS checks against these two
// tables.
type TagStore struct {
	db QueryInterceptor
}

func NewTagStore(db QueryInterceptor) *TagStore {
	return &TagStore{db: db}
}

// Create inserts a tag and returns its generated UUID.
func (s *TagStore) Create(ctx context.Context, t *models.Tag) (string, error) {
	id := uuid.NewString()
	now := time.Now().Unix()

	active := 0
	if t.Active {
		active = 1
	}

	query, args, err := sq.Insert("tags").
		Columns("uuid", "name", "value", "comment", "active", "resource_type", "owner", "created", "modified").
		Values(id, t.Name, t.Value, t.Comment, active, t.ResourceType, t.Owner, now, now).
		ToSql()
	if err != nil {
		return "", err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", err
	}
	return id, nil
}

// Attach links a tag to one resource, resolving the resource's row id from
// its UUID in the type's table.
func (s *TagStore) Attach(ctx context.Context, tagUUID string, typ *resources.Type, resourceUUID string) error {
	tagID, err := s.rowID(ctx, "tags", tagUUID, srvErrors.NewTagNotFoundError())
	if err != nil {
		return err
	}
	resourceID, err := s.rowID(ctx, typ.Table, resourceUUID, srvErrors.NewResourceNotFoundError(typ.Name))
	if err != nil {
		return err
	}

	query, args, err := sq.Insert("tag_resources").
		Columns("tag_id", "resource_type", "resource_id", "resource_uuid").
		Values(tagID, typ.Name, resourceID, resourceUUID).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *TagStore) rowID(ctx context.Context, table, rowUUID string, notFound error) (int64, error) {
	query, args, err := sq.Select("id").
		From(table).
		Where(sq.Eq{"uuid": rowUUID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, notFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}
