package mocks

import (
	"context"

	"timingcfg/core/history"

	"github.com/stretchr/testify/mock"
)

// Recorder is a mock implementation of history.Recorder
type Recorder struct {
	mock.Mock
}

func (m *Recorder) Record(ctx context.Context, rev *history.Revision) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *Recorder) Recent(ctx context.Context, limit int) ([]history.Revision, error) {
	args := m.Called(ctx, limit)
	if revs, ok := args.Get(0).([]history.Revision); ok {
		return revs, args.Error(1)
	}
	return nil, args.Error(1)
}
