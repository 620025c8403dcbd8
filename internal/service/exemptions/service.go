// Package exemptions holds the core record-keeping logic: delta ordering,
// created-timestamp carry-over, and notification dispatch.
package exemptions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/companieshouse/company-exemptions-api/internal/deltatime"
	"github.com/companieshouse/company-exemptions-api/internal/model"
	"github.com/companieshouse/company-exemptions-api/internal/repository"
	"go.uber.org/zap"
)

// Notifier posts resource-changed events downstream.
type Notifier interface {
	NotifyChanged(ctx context.Context, companyNumber, contextID string) error
	NotifyDeleted(ctx context.Context, companyNumber, contextID string, deleted *model.CompanyExemptions) error
}

type Service struct {
	repo     repository.ExemptionsRepository
	notifier Notifier
	now      func() time.Time
	log      *zap.Logger
}

func New(repo repository.ExemptionsRepository, notifier Notifier, now func() time.Time, log *zap.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, notifier: notifier, now: now, log: log}
}

// Upsert applies an incoming delta for the company number. The write is
// accepted when no record exists, when the stored record predates delta
// tracking, or when the incoming delta is strictly newer than the stored one.
// A tie loses: at-least-once redelivery of the same delta must not overwrite.
//
// On acceptance the record is persisted first, then the changed notification
// is posted. The two are not atomic; a notifier failure leaves the record
// durably written and surfaces as ErrServiceUnavailable so the caller
// retries, which the ordering check then rejects harmlessly.
func (s *Service) Upsert(ctx context.Context, contextID, companyNumber string, req model.InternalExemptionsRequest) error {
	if req.InternalData.DeltaAt.IsZero() {
		return fmt.Errorf("%w: internal_data.delta_at is required", model.ErrBadRequest)
	}

	existing, err := s.repo.FindByCompanyNumber(ctx, companyNumber)
	if err != nil {
		s.log.Error("exemptions lookup failed",
			zap.String("company_number", companyNumber),
			zap.String("context_id", contextID),
			zap.Error(err))
		return fmt.Errorf("%w: %v", model.ErrServiceUnavailable, err)
	}

	if existing != nil && existing.DeltaAt != "" {
		stored, err := deltatime.Parse(existing.DeltaAt)
		if err != nil {
			s.log.Error("stored delta_at unparseable",
				zap.String("company_number", companyNumber),
				zap.String("delta_at", existing.DeltaAt),
				zap.Error(err))
			return fmt.Errorf("%w: stored delta_at: %v", model.ErrBadRequest, err)
		}
		if !req.InternalData.DeltaAt.After(stored) {
			s.log.Info("record not persisted as it is not the latest delta",
				zap.String("company_number", companyNumber),
				zap.String("context_id", contextID),
				zap.String("existing_delta_at", existing.DeltaAt))
			return fmt.Errorf("%w: delta_at [%s] is not after existing delta_at [%s]",
				model.ErrConflict, deltatime.Format(req.InternalData.DeltaAt), existing.DeltaAt)
		}
	}

	doc := mapRequest(companyNumber, req, s.now())

	// Reuse created from the existing record; a first insert defaults it to
	// the snapshot's updated time.
	if existing != nil && existing.Created != nil {
		doc.Created = existing.Created
	} else {
		doc.Created = &model.Created{At: doc.Updated.At}
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		s.log.Error("exemptions save failed",
			zap.String("company_number", companyNumber),
			zap.String("context_id", contextID),
			zap.Error(err))
		return fmt.Errorf("%w: %v", model.ErrServiceUnavailable, err)
	}

	if err := s.notifier.NotifyChanged(ctx, companyNumber, contextID); err != nil {
		s.log.Error("changed notification failed after persist",
			zap.String("company_number", companyNumber),
			zap.String("context_id", contextID),
			zap.Error(err))
		return err
	}

	s.log.Info("company exemptions upserted",
		zap.String("company_number", companyNumber),
		zap.String("context_id", contextID))
	return nil
}

// Get returns the stored payload for the company number.
func (s *Service) Get(ctx context.Context, companyNumber string) (*model.CompanyExemptions, error) {
	doc, err := s.repo.FindByCompanyNumber(ctx, companyNumber)
	if err != nil {
		s.log.Error("exemptions lookup failed",
			zap.String("company_number", companyNumber),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", model.ErrServiceUnavailable, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: company %s", model.ErrNotFound, companyNumber)
	}
	return &doc.Data, nil
}

// Delete removes the record when the request's delta is not older than the
// stored one. Deleting a company that has no record succeeds and still posts
// a deleted notification with an empty payload, so deletes are idempotent.
func (s *Service) Delete(ctx context.Context, contextID, companyNumber, requestDeltaAt string) error {
	if strings.TrimSpace(requestDeltaAt) == "" {
		return fmt.Errorf("%w: delta_at missing from delete request", model.ErrBadRequest)
	}

	doc, err := s.repo.FindByCompanyNumber(ctx, companyNumber)
	if err != nil {
		s.log.Error("exemptions lookup failed",
			zap.String("company_number", companyNumber),
			zap.String("context_id", contextID),
			zap.Error(err))
		return fmt.Errorf("%w: %v", model.ErrServiceUnavailable, err)
	}

	if doc == nil {
		s.log.Info("delete for non-existent company exemptions",
			zap.String("company_number", companyNumber),
			zap.String("context_id", contextID))
		return s.notifier.NotifyDeleted(ctx, companyNumber, contextID, nil)
	}

	if doc.DeltaAt != "" {
		requested, err := deltatime.Parse(requestDeltaAt)
		if err != nil {
			return fmt.Errorf("%w: request delta_at: %v", model.ErrBadRequest, err)
		}
		stored, err := deltatime.Parse(doc.DeltaAt)
		if err != nil {
			return fmt.Errorf("%w: stored delta_at: %v", model.ErrBadRequest, err)
		}
		if requested.Before(stored) {
			s.log.Info("stale delete rejected",
				zap.String("company_number", companyNumber),
				zap.String("context_id", contextID),
				zap.String("request_delta_at", requestDeltaAt),
				zap.String("existing_delta_at", doc.DeltaAt))
			return fmt.Errorf("%w: request delta_at [%s] is before existing delta_at [%s]",
				model.ErrConflict, requestDeltaAt, doc.DeltaAt)
		}
	}

	if err := s.repo.DeleteByCompanyNumber(ctx, companyNumber); err != nil {
		s.log.Error("exemptions delete failed",
			zap.String("company_number", companyNumber),
			zap.String("context_id", contextID),
			zap.Error(err))
		return fmt.Errorf("%w: %v", model.ErrServiceUnavailable, err)
	}

	s.log.Info("company exemptions deleted",
		zap.String("company_number", companyNumber),
		zap.String("context_id", contextID))
	return s.notifier.NotifyDeleted(ctx, companyNumber, contextID, &doc.Data)
}
