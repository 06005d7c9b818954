package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db        *sql.DB
	resources *ResourceStore
	filters   *FilterStore
	tags      *TagStore
	settings  *SettingStore
}

func NewStore(db *sql.DB) *Store {
	interceptor := newQueryInterceptor(db)
	return &Store{
		db:        db,
		resources: NewResourceStore(interceptor),
		filters:   NewFilterStore(interceptor),
		tags:      NewTagStore(interceptor),
		settings:  NewSettingStore(interceptor),
	}
}

func (s *Store) Resources() *ResourceStore {
	return s.resources
}

func (s *Store) Filters() *FilterStore {
	return s.filters
}

func (s *Store) Tags() *TagStore {
	return s.tags
}

func (s *Store) Settings() *SettingStore {
	return s.settings
}

func (s *Store) Close() error {
	return s.db.Close()
}
