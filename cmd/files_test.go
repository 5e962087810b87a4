package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"timingcfg/core/history"
	"timingcfg/core/history/mocks"
	"timingcfg/feature/timing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	color.NoColor = true
}

func TestRunFiles(t *testing.T) {
	outcomes := map[string]*timing.Outcome{
		"a.nb.yaml": {Path: "a.nb.yaml", Output: "a.nb.yaml.fix", Written: true, Changes: []string{"toas"}},
		"b.nb.yaml": {Path: "b.nb.yaml", Output: "b.nb.yaml.fix"},
		"c.wb.yaml": {Path: "c.wb.yaml", Output: "c.wb.yaml.fix", Changes: []string{"tim-directory", "toas"}},
	}
	op := func(_ context.Context, path string) (*timing.Outcome, error) {
		if out, ok := outcomes[path]; ok {
			return out, nil
		}
		return nil, errors.New("boom")
	}

	t.Run("All succeed", func(t *testing.T) {
		var buf bytes.Buffer
		err := runFiles(context.Background(), &buf, zap.NewNop(), []string{"a.nb.yaml", "b.nb.yaml", "c.wb.yaml"}, op)
		require.NoError(t, err)

		assert.Equal(t,
			"WROTE  a.nb.yaml -> a.nb.yaml.fix (toas)\n"+
				"OK     b.nb.yaml\n"+
				"PLAN   c.wb.yaml -> c.wb.yaml.fix (tim-directory, toas)\n",
			buf.String())
	})

	t.Run("Failure does not stop the batch", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		var buf bytes.Buffer

		err := runFiles(context.Background(), &buf, zap.New(core), []string{"bad.nb.yaml", "a.nb.yaml"}, op)
		require.Error(t, err)
		assert.Equal(t, "1 of 2 files failed", err.Error())

		assert.Contains(t, buf.String(), "FAIL   bad.nb.yaml: boom\n")
		assert.Contains(t, buf.String(), "WROTE  a.nb.yaml")
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "bad.nb.yaml", logs.All()[0].ContextMap()["file"])
	})

	t.Run("Written without changes", func(t *testing.T) {
		var buf bytes.Buffer
		rt := func(_ context.Context, path string) (*timing.Outcome, error) {
			return &timing.Outcome{Path: path, Output: path + ".rt", Written: true}, nil
		}
		require.NoError(t, runFiles(context.Background(), &buf, zap.NewNop(), []string{"a.nb.yaml"}, rt))
		assert.Equal(t, "WROTE  a.nb.yaml -> a.nb.yaml.rt\n", buf.String())
	})
}

func TestPrintHistory(t *testing.T) {
	rec := &mocks.Recorder{}
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	rec.On("Recent", mock.Anything, 5).Return([]history.Revision{{
		RunID:     "0123456789abcdef",
		Operation: timing.OpReconcile,
		Path:      "a.nb.yaml",
		Output:    "a.nb.yaml.fix",
		Fields:    []string{"tim-directory", "toas"},
		CreatedAt: at,
	}}, nil)

	var buf bytes.Buffer
	require.NoError(t, printHistory(context.Background(), &buf, rec, 5))

	out := buf.String()
	assert.Contains(t, out, "OPERATION")
	assert.Contains(t, out, "2026-03-01 12:30:00")
	assert.Contains(t, out, "01234567 ")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "tim-directory,toas")
	rec.AssertExpectations(t)
}

func TestPrintHistory_Error(t *testing.T) {
	rec := &mocks.Recorder{}
	rec.On("Recent", mock.Anything, 0).Return(nil, errors.New("db down"))

	err := printHistory(context.Background(), &bytes.Buffer{}, rec, 0)
	assert.EqualError(t, err, "db down")
}
