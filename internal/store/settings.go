package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"github.com/openscan/vuln-manager/internal/models"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

// Setting names used by the listing machinery.
const (
	SettingRowsPerPage    = "rows_per_page"
	SettingMaxRowsPerPage = "max_rows_per_page"
)

// SettingStore reads and writes the named settings table. The filter
// compiler's rows=-2 sentinel resolves through RowsPerPage.
type SettingStore struct {
	db QueryInterceptor
}

func NewSettingStore(db QueryInterceptor) *SettingStore {
	return &SettingStore{db: db}
}

func (s *SettingStore) Get(ctx context.Context, name string) (*models.Setting, error) {
	query, args, err := sq.Select("name", "value").
		From("settings").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var setting models.Setting
	row := s.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&setting.Name, &setting.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewSettingNotFoundError()
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *SettingStore) Set(ctx context.Context, name, value string) error {
	query, args, err := sq.Insert("settings").
		Columns("name", "value").
		Values(name, value).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value").
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// RowsPerPage returns the configured default page size, falling back to
// fallback when the setting is missing or malformed.
func (s *SettingStore) RowsPerPage(ctx context.Context, fallback int) int {
	return s.intSetting(ctx, SettingRowsPerPage, fallback)
}

// MaxRowsPerPage returns the configured row cap, falling back to fallback
// when the setting is missing or malformed.
func (s *SettingStore) MaxRowsPerPage(ctx context.Context, fallback int) int {
	return s.intSetting(ctx, SettingMaxRowsPerPage, fallback)
}

func (s *SettingStore) intSetting(ctx context.Context, name string, fallback int) int {
	setting, err := s.Get(ctx, name)
	if err != nil {
		return fallback
	}
	value, err := strconv.Atoi(setting.Value)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
