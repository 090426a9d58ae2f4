package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lotledger/core/internal/domain/catalog"
	"github.com/lotledger/core/internal/domain/configuration"
	"github.com/lotledger/core/internal/domain/inventory"
	"github.com/lotledger/core/internal/domain/shared"
)

// LedgerService records, amends and removes inventory batches. Every write
// re-resolves the batch's template and configuration references inside the
// same transaction as the row write, so a reference deleted concurrently
// with the write cannot leave a dangling row behind.
type LedgerService struct {
	batches        inventory.BatchRepository
	audit          inventory.AuditRepository
	templates      catalog.TemplateRepository
	configurations configuration.Repository
	tx             shared.TransactionManager
	now            func() time.Time
}

// LedgerOption configures a LedgerService
type LedgerOption func(*LedgerService)

// WithClock overrides the clock used for assigned timestamps
func WithClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	batches inventory.BatchRepository,
	audit inventory.AuditRepository,
	templates catalog.TemplateRepository,
	configurations configuration.Repository,
	tx shared.TransactionManager,
	opts ...LedgerOption,
) *LedgerService {
	s := &LedgerService{
		batches:        batches,
		audit:          audit,
		templates:      templates,
		configurations: configurations,
		tx:             tx,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create records a new inventory batch
func (s *LedgerService) Create(ctx context.Context, req CreateBatchRequest) (*inventory.InventoryBatch, error) {
	batch, err := inventory.NewInventoryBatch(req.Name, req.Weight, req.Price, req.Specs)
	if err != nil {
		return nil, err
	}
	batch.TypeID = req.TypeID
	batch.GradeID = req.GradeID
	batch.StageID = req.StageID

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.resolveReferences(ctx, batch); err != nil {
			return err
		}

		now := s.now()
		batch.CreatedAt = now
		batch.UpdatedAt = now
		if err := s.batches.Save(ctx, batch); err != nil {
			return err
		}
		return s.audit.Append(ctx, inventory.NewAuditEntry(batch.ID, inventory.AuditActionCreated, auditDetail(batch), now))
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Update applies a partial patch to an existing batch. The merged result is
// re-resolved and re-validated exactly as on create.
func (s *LedgerService) Update(ctx context.Context, id int64, patch UpdateBatchRequest) (*inventory.InventoryBatch, error) {
	var updated *inventory.InventoryBatch

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		batch, err := s.batches.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := applyPatch(batch, patch); err != nil {
			return err
		}
		if err := s.resolveReferences(ctx, batch); err != nil {
			return err
		}

		now := s.now()
		batch.UpdatedAt = now
		if err := s.batches.Save(ctx, batch); err != nil {
			return err
		}
		if err := s.audit.Append(ctx, inventory.NewAuditEntry(batch.ID, inventory.AuditActionUpdated, auditDetail(batch), now)); err != nil {
			return err
		}

		updated = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get returns a batch by id
func (s *LedgerService) Get(ctx context.Context, id int64) (*inventory.InventoryBatch, error) {
	return s.batches.FindByID(ctx, id)
}

// List returns batches matching the filter, ordered by id ascending
func (s *LedgerService) List(ctx context.Context, filter inventory.BatchFilter) ([]inventory.InventoryBatch, error) {
	return s.batches.FindAll(ctx, filter)
}

// Remove hard-deletes a batch. Removing an already-removed batch reports
// NotFound, which callers should treat as confirmation rather than failure.
func (s *LedgerService) Remove(ctx context.Context, id int64) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.batches.Delete(ctx, id); err != nil {
			return err
		}
		return s.audit.Append(ctx, inventory.NewAuditEntry(id, inventory.AuditActionRemoved, "", s.now()))
	})
}

// History returns the audit trail of a batch, oldest first
func (s *LedgerService) History(ctx context.Context, batchID int64) ([]inventory.AuditEntry, error) {
	return s.audit.FindByBatch(ctx, batchID)
}

// StageSummary aggregates total weight and batch count for one stage
func (s *LedgerService) StageSummary(ctx context.Context, stageID int64) (*StageSummaryResponse, error) {
	stage, err := s.configurations.FindByIDAndKind(ctx, stageID, configuration.KindStage)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnknownConfiguration
		}
		return nil, err
	}

	totals, err := s.batches.StageTotals(ctx, stageID)
	if err != nil {
		return nil, err
	}

	return &StageSummaryResponse{
		StageID:     stage.ID,
		StageName:   stage.Name,
		TotalWeight: totals.TotalWeight,
		BatchCount:  totals.BatchCount,
	}, nil
}

// resolveReferences re-resolves the template, grade and stage references and
// validates the spec map against the resolved template. Referential errors
// surface before any row write is attempted.
func (s *LedgerService) resolveReferences(ctx context.Context, batch *inventory.InventoryBatch) error {
	if batch.TypeID != nil {
		template, err := s.templates.FindByID(ctx, *batch.TypeID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrUnknownTemplate
			}
			return err
		}
		if err := catalog.Validate(template, batch.Specs); err != nil {
			return err
		}
	}

	if batch.GradeID != nil {
		if err := s.resolveConfiguration(ctx, *batch.GradeID, configuration.KindGrade); err != nil {
			return err
		}
	}
	if batch.StageID != nil {
		if err := s.resolveConfiguration(ctx, *batch.StageID, configuration.KindStage); err != nil {
			return err
		}
	}
	return nil
}

func (s *LedgerService) resolveConfiguration(ctx context.Context, id int64, kind configuration.Kind) error {
	_, err := s.configurations.FindByIDAndKind(ctx, id, kind)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("UNKNOWN_CONFIGURATION",
			"Referenced "+string(kind)+" does not exist")
	}
	return err
}

// applyPatch merges the patch over the stored batch
func applyPatch(batch *inventory.InventoryBatch, patch UpdateBatchRequest) error {
	if patch.Name != nil {
		if err := batch.Rename(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Weight != nil {
		if err := batch.SetWeight(*patch.Weight); err != nil {
			return err
		}
	}
	if patch.Price != nil {
		if err := batch.SetPrice(*patch.Price); err != nil {
			return err
		}
	}

	switch {
	case patch.ClearType:
		batch.TypeID = nil
	case patch.TypeID != nil:
		batch.TypeID = patch.TypeID
	}
	switch {
	case patch.ClearGrade:
		batch.GradeID = nil
	case patch.GradeID != nil:
		batch.GradeID = patch.GradeID
	}
	switch {
	case patch.ClearStage:
		batch.StageID = nil
	case patch.StageID != nil:
		batch.StageID = patch.StageID
	}

	if patch.Specs != nil {
		batch.Specs = patch.Specs.Clone()
	}
	return nil
}

// auditDetail captures the written state of a batch for the audit trail
func auditDetail(batch *inventory.InventoryBatch) string {
	detail := map[string]any{
		"name":   batch.Name,
		"weight": batch.Weight.String(),
		"price":  batch.Price.String(),
	}
	if batch.TypeID != nil {
		detail["type_id"] = *batch.TypeID
	}
	if batch.GradeID != nil {
		detail["grade_id"] = *batch.GradeID
	}
	if batch.StageID != nil {
		detail["stage_id"] = *batch.StageID
	}
	data, err := json.Marshal(detail)
	if err != nil {
		return "{}"
	}
	return string(data)
}
