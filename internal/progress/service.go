package progress

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitb-dev/wwh-gateway/pkg/logger"
	"github.com/pitb-dev/wwh-gateway/pkg/upstream"
)

type recordReader interface {
	GetPersonal(ctx context.Context, userID string) (*upstream.PersonalRecord, error)
	GetAttachments(ctx context.Context, personalID int64) (*upstream.AttachmentRecord, error)
	GetDeclaration(ctx context.Context, personalID int64) (*upstream.DeclarationRecord, error)
}

// Service recomputes the five-stage snapshot from backend state on every
// call. Nothing is cached: any screen may be completed out of order or from
// another session, so only a fresh backend snapshot is trustworthy.
type Service interface {
	Snapshot(ctx context.Context, userID string) (Snapshot, error)
}

type service struct {
	reader recordReader
	logger *logger.Logger
}

// NewService builds a progress aggregator over the upstream client.
func NewService(reader recordReader, logg *logger.Logger) (Service, error) {
	if reader == nil {
		return nil, fmt.Errorf("record reader required")
	}
	return &service{reader: reader, logger: logg}, nil
}

// Snapshot fetches the personal resource first; without an id every stage is
// NotStarted. The attachment and declaration reads then run concurrently, and
// a failure of either degrades only its own stage — fetch failures during
// progress computation are absorbed, never surfaced.
func (s *service) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	personal, err := s.reader.GetPersonal(ctx, userID)
	if err != nil {
		s.warn(ctx, "personal fetch failed during progress computation", err)
		return Empty(), nil
	}
	if personal == nil || personal.ID == 0 {
		return Empty(), nil
	}

	var (
		wg          sync.WaitGroup
		attachments *upstream.AttachmentRecord
		declaration *upstream.DeclarationRecord
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		record, err := s.reader.GetAttachments(ctx, personal.ID)
		if err != nil {
			s.warn(ctx, "attachment fetch failed during progress computation", err)
			return
		}
		attachments = record
	}()
	go func() {
		defer wg.Done()
		record, err := s.reader.GetDeclaration(ctx, personal.ID)
		if err != nil {
			s.warn(ctx, "declaration fetch failed during progress computation", err)
			return
		}
		declaration = record
	}()
	wg.Wait()

	return Derive(personal, attachments, declaration), nil
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logger == nil {
		return
	}
	ctx = s.logger.WithField(ctx, "error", err.Error())
	s.logger.Warn(ctx, msg)
}
