package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hajorau/saveenergy/internal/domain"
	"github.com/hajorau/saveenergy/internal/engine"
	"github.com/hajorau/saveenergy/internal/store"
)

// CalcService runs calculations and persists their records.
type CalcService struct {
	Store store.Store
}

// Submit validates the inputs, evaluates the formula and stores the record.
// The stored outputs are the computed ones, verbatim; they are never
// recomputed later.
func (s *CalcService) Submit(
	ctx context.Context,
	userID int64,
	in domain.CalcInputs,
) (domain.CalcOutputs, int64, error) {
	if err := engine.Validate(in); err != nil {
		return domain.CalcOutputs{}, 0, err
	}

	out := engine.Compute(in)

	inputsJSON, err := json.Marshal(in)
	if err != nil {
		return domain.CalcOutputs{}, 0, fmt.Errorf("marshal inputs: %w", err)
	}
	outputsJSON, err := json.Marshal(out)
	if err != nil {
		return domain.CalcOutputs{}, 0, fmt.Errorf("marshal outputs: %w", err)
	}

	id, err := s.Store.Calculations().CreateCalculation(ctx, userID, inputsJSON, outputsJSON)
	if err != nil {
		return domain.CalcOutputs{}, 0, fmt.Errorf("store calculation: %w", err)
	}

	return out, id, nil
}

// List returns the caller's calculations, newest first.
func (s *CalcService) List(ctx context.Context, userID int64) ([]domain.Calculation, error) {
	return s.Store.Calculations().ListCalculationsByUser(ctx, userID)
}

// Get fetches one calculation scoped to its owner. Records of other users
// surface as store.ErrNotFound, indistinguishable from absent ids.
func (s *CalcService) Get(ctx context.Context, id, userID int64) (domain.Calculation, error) {
	return s.Store.Calculations().GetCalculationForUser(ctx, id, userID)
}
