package identity

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/pitb-dev/wwh-gateway/pkg/errors"
	"github.com/pitb-dev/wwh-gateway/pkg/upstream"
)

type personalDirectory interface {
	GetPersonal(ctx context.Context, userID string) (*upstream.PersonalRecord, error)
	LookupPersonalID(ctx context.Context, userID string) (int64, error)
	UpsertPersonal(ctx context.Context, userID string, fields map[string]string, profile *upstream.FileUpload) error
}

// Service resolves the server-assigned personal_id for a user, creating the
// backing record when none exists yet. Repeated calls from different screens
// converge on the same id; once the record exists every call takes the
// read-only fast path.
type Service interface {
	Resolve(ctx context.Context, userID string) (int64, error)
}

type service struct {
	directory personalDirectory
}

// NewService builds an identity resolver over the upstream directory.
func NewService(directory personalDirectory) (Service, error) {
	if directory == nil {
		return nil, fmt.Errorf("personal directory required")
	}
	return &service{directory: directory}, nil
}

// Resolve runs the two-phase resolve/create/confirm sequence. The creation
// response is not trusted to carry the assigned id, so a successful create is
// always followed by a confirming re-read.
func (s *service) Resolve(ctx context.Context, userID string) (int64, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	record, err := s.directory.GetPersonal(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeResolution, err, "read personal record")
	}
	if record != nil && record.ID != 0 {
		return record.ID, nil
	}

	// The lookup endpoint sometimes knows ids the full read does not surface
	// yet; consult it before creating.
	id, err := s.directory.LookupPersonalID(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeResolution, err, "lookup personal id")
	}
	if id != 0 {
		return id, nil
	}

	if err := s.directory.UpsertPersonal(ctx, userID, nil, nil); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeResolution, err, "create personal record")
	}

	record, err = s.directory.GetPersonal(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeResolution, err, "confirm personal record")
	}
	if record == nil || record.ID == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeResolution, "personal record missing after creation")
	}
	return record.ID, nil
}
