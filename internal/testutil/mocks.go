// Package testutil provides mock scoring collaborators shared across tests.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/XiaoConstantine/stun-go/pkg/core"
)

// MockOracle is a mock implementation of core.Oracle.
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) Score(ctx context.Context, batch []core.Sequence) ([]float64, error) {
	args := m.Called(ctx, batch)
	if scores := args.Get(0); scores != nil {
		return scores.([]float64), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSurrogate is a mock implementation of core.Surrogate.
type MockSurrogate struct {
	mock.Mock
}

func (m *MockSurrogate) Predict(ctx context.Context, batch []core.Sequence) ([]float64, []float64, error) {
	args := m.Called(ctx, batch)
	var energies, variances []float64
	if v := args.Get(0); v != nil {
		energies = v.([]float64)
	}
	if v := args.Get(1); v != nil {
		variances = v.([]float64)
	}
	return energies, variances, args.Error(2)
}

// MockValueFunction is a mock implementation of core.ValueFunction.
type MockValueFunction struct {
	mock.Mock
}

func (m *MockValueFunction) Value(ctx context.Context, batch []core.Sequence) ([]float64, error) {
	args := m.Called(ctx, batch)
	if values := args.Get(0); values != nil {
		return values.([]float64), args.Error(1)
	}
	return nil, args.Error(1)
}

// ConstantOracle scores every sequence with the same fixed value. Handy for
// forcing acceptance behavior in sampler tests without mock bookkeeping.
type ConstantOracle struct {
	Value float64
}

func (o *ConstantOracle) Score(ctx context.Context, batch []core.Sequence) ([]float64, error) {
	scores := make([]float64, len(batch))
	for i := range scores {
		scores[i] = o.Value
	}
	return scores, nil
}

// CountingReporter records progress callbacks for assertions.
type CountingReporter struct {
	Calls     int
	LastStage string
	LastDone  int
	LastTotal int
}

func (r *CountingReporter) Report(stage string, processed, total int) {
	r.Calls++
	r.LastStage = stage
	r.LastDone = processed
	r.LastTotal = total
}
