package registration

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/pitb-dev/wwh-gateway/pkg/errors"
	"github.com/pitb-dev/wwh-gateway/pkg/upstream"
)

type recordWriter interface {
	GetPersonal(ctx context.Context, userID string) (*upstream.PersonalRecord, error)
	UpsertPersonal(ctx context.Context, userID string, fields map[string]string, profile *upstream.FileUpload) error
	GetGuardian(ctx context.Context, personalID int64) (*upstream.GuardianRecord, error)
	UpsertGuardian(ctx context.Context, input upstream.GuardianUpsert) error
	GetDeclaration(ctx context.Context, personalID int64) (*upstream.DeclarationRecord, error)
	UpsertDeclaration(ctx context.Context, personalID int64, file upstream.FileUpload) error
	GetAttachments(ctx context.Context, personalID int64) (*upstream.AttachmentRecord, error)
	UploadAttachment(ctx context.Context, personalID int64, slot string, file upstream.FileUpload) error
}

// Service persists field values against the backend resources. Every write is
// an upsert on the backend side: per-resource atomic, last write wins, no
// cross-resource transaction.
type Service interface {
	FetchPersonal(ctx context.Context, userID string) (*upstream.PersonalRecord, error)
	SubmitPersonal(ctx context.Context, userID string, input PersonalInput) error
	SubmitEmployment(ctx context.Context, userID string, input EmploymentInput) error
	SubmitHostel(ctx context.Context, userID string, input HostelInput) error
	FetchGuardian(ctx context.Context, personalID int64) (*upstream.GuardianRecord, error)
	SubmitGuardian(ctx context.Context, personalID int64, input GuardianInput) error
	FetchDeclaration(ctx context.Context, personalID int64) (*upstream.DeclarationRecord, error)
	SubmitDeclaration(ctx context.Context, personalID int64, file upstream.FileUpload) error
	FetchAttachments(ctx context.Context, personalID int64) (*upstream.AttachmentRecord, error)
	UploadAttachment(ctx context.Context, personalID int64, slot string, file upstream.FileUpload) error
}

type service struct {
	writer recordWriter
}

// NewService builds a record updater over the upstream client.
func NewService(writer recordWriter) (Service, error) {
	if writer == nil {
		return nil, fmt.Errorf("record writer required")
	}
	return &service{writer: writer}, nil
}

func (s *service) FetchPersonal(ctx context.Context, userID string) (*upstream.PersonalRecord, error) {
	record, err := s.writer.GetPersonal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "personal record not found")
	}
	return record, nil
}

func (s *service) SubmitPersonal(ctx context.Context, userID string, input PersonalInput) error {
	if err := requireUserID(userID); err != nil {
		return err
	}
	return s.writer.UpsertPersonal(ctx, userID, input.fields(), input.Profile)
}

func (s *service) SubmitEmployment(ctx context.Context, userID string, input EmploymentInput) error {
	if err := requireUserID(userID); err != nil {
		return err
	}
	return s.writer.UpsertPersonal(ctx, userID, input.fields(), nil)
}

func (s *service) SubmitHostel(ctx context.Context, userID string, input HostelInput) error {
	if err := requireUserID(userID); err != nil {
		return err
	}
	return s.writer.UpsertPersonal(ctx, userID, input.fields(), nil)
}

func (s *service) FetchGuardian(ctx context.Context, personalID int64) (*upstream.GuardianRecord, error) {
	if err := requirePersonalID(personalID); err != nil {
		return nil, err
	}
	record, err := s.writer.GetGuardian(ctx, personalID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guardian record not found")
	}
	return record, nil
}

func (s *service) SubmitGuardian(ctx context.Context, personalID int64, input GuardianInput) error {
	if err := requirePersonalID(personalID); err != nil {
		return err
	}
	return s.writer.UpsertGuardian(ctx, upstream.GuardianUpsert{
		PersonalID:            personalID,
		Name:                  input.Name,
		Relationship:          input.Relationship,
		Address:               input.Address,
		Mobile:                input.Mobile,
		Occupation:            input.Occupation,
		Email:                 input.Email,
		EmergencyName:         input.EmergencyName,
		EmergencyRelationship: input.EmergencyRelationship,
		EmergencyAddress:      input.EmergencyAddress,
		EmergencyMobile:       input.EmergencyMobile,
	})
}

func (s *service) FetchDeclaration(ctx context.Context, personalID int64) (*upstream.DeclarationRecord, error) {
	if err := requirePersonalID(personalID); err != nil {
		return nil, err
	}
	record, err := s.writer.GetDeclaration(ctx, personalID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "declaration record not found")
	}
	return record, nil
}

func (s *service) SubmitDeclaration(ctx context.Context, personalID int64, file upstream.FileUpload) error {
	if err := requirePersonalID(personalID); err != nil {
		return err
	}
	return s.writer.UpsertDeclaration(ctx, personalID, file)
}

func (s *service) FetchAttachments(ctx context.Context, personalID int64) (*upstream.AttachmentRecord, error) {
	if err := requirePersonalID(personalID); err != nil {
		return nil, err
	}
	return s.writer.GetAttachments(ctx, personalID)
}

func (s *service) UploadAttachment(ctx context.Context, personalID int64, slot string, file upstream.FileUpload) error {
	if err := requirePersonalID(personalID); err != nil {
		return err
	}
	slot = strings.TrimSpace(slot)
	if !upstream.IsSlot(slot) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown attachment slot %q", slot))
	}
	return s.writer.UploadAttachment(ctx, personalID, slot, file)
}

func requireUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return nil
}

func requirePersonalID(personalID int64) error {
	if personalID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "personal id is required")
	}
	return nil
}
