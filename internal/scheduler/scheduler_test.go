package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	calls atomic.Int32
	err   error
}

func (j *countingJob) RefreshAll(context.Context) error {
	j.calls.Add(1)
	return j.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRejectsBadSchedule(t *testing.T) {
	_, err := New("not a schedule", &countingJob{}, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh schedule")
}

func TestStartRunsImmediately(t *testing.T) {
	job := &countingJob{}
	s, err := New("@every 1h", job, discardLogger())
	require.NoError(t, err)

	s.Start(context.Background())
	defer s.Stop()

	assert.Equal(t, int32(1), job.calls.Load(), "first run happens at startup, not at the first tick")
}

func TestStartSurvivesFailingFirstRun(t *testing.T) {
	job := &countingJob{err: errors.New("provider down")}
	s, err := New("@every 1h", job, discardLogger())
	require.NoError(t, err)

	s.Start(context.Background())
	s.Stop()

	assert.Equal(t, int32(1), job.calls.Load())
}
