package inventory

import (
	"github.com/lotledger/core/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateBatchRequest carries the caller-supplied fields of a new batch.
// Template, grade and stage references are optional: a nil reference records
// the batch as unclassified for that dimension.
type CreateBatchRequest struct {
	Name    string
	TypeID  *int64
	GradeID *int64
	StageID *int64
	Weight  decimal.Decimal
	Price   decimal.Decimal
	Specs   inventory.SpecMap
}

// UpdateBatchRequest is a partial patch over an existing batch. Nil fields
// keep the stored value; the Clear flags detach a reference explicitly,
// since a nil pointer cannot distinguish "keep" from "unset".
type UpdateBatchRequest struct {
	Name       *string
	TypeID     *int64
	ClearType  bool
	GradeID    *int64
	ClearGrade bool
	StageID    *int64
	ClearStage bool
	Weight     *decimal.Decimal
	Price      *decimal.Decimal
	Specs      inventory.SpecMap
}

// StageSummaryResponse aggregates the batches currently in one stage
type StageSummaryResponse struct {
	StageID     int64
	StageName   string
	TotalWeight decimal.Decimal
	BatchCount  int64
}
