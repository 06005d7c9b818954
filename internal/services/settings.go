package services

import (
	"context"
	"strconv"

	"github.com/openscan/vuln-manager/internal/models"
	"github.com/openscan/vuln-manager/internal/store"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

// Settings exposes the named settings table. The two paging settings are
// validated here so the listing machinery never sees a nonsensical value.
type Settings struct {
	store *store.Store
}

func NewSettings(st *store.Store) *Settings {
	return &Settings{store: st}
}

func (s *Settings) Get(ctx context.Context, name string) (*models.Setting, error) {
	return s.store.Settings().Get(ctx, name)
}

func (s *Settings) Set(ctx context.Context, name, value string) error {
	switch name {
	case store.SettingRowsPerPage, store.SettingMaxRowsPerPage:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return srvErrors.NewInvalidArgumentError(name + " must be a positive integer")
		}
	}
	return s.store.Settings().Set(ctx, name, value)
}
