package services

import (
	"context"

	"github.com/openscan/vuln-manager/internal/models"
	"github.com/openscan/vuln-manager/internal/resources"
	"github.com/openscan/vuln-manager/internal/store"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

// Tags creates tags and attaches them to resources.
type Tags struct {
	store *store.Store
}

func NewTags(st *store.Store) *Tags {
	return &Tags{store: st}
}

// Create inserts a tag and attaches it to each of the given resource
// UUIDs. The tag's resource type decides which table the UUIDs resolve in.
func (s *Tags) Create(ctx context.Context, t *models.Tag, resourceUUIDs []string) (string, error) {
	typ := resources.Lookup(t.ResourceType)
	if typ == nil {
		return "", srvErrors.NewUnknownResourceTypeError(t.ResourceType)
	}

	tagUUID, err := s.store.Tags().Create(ctx, t)
	if err != nil {
		return "", err
	}

	for _, resourceUUID := range resourceUUIDs {
		if err := s.store.Tags().Attach(ctx, tagUUID, typ, resourceUUID); err != nil {
			return "", err
		}
	}

	return tagUUID, nil
}
