package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerboseControlsDebug(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	New(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestForRunTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, id := ForRun(New(&buf, false))
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	logger.Info("pomodoro logged")
	assert.True(t, strings.Contains(buf.String(), "run="+id), buf.String())
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))
	l := New(new(bytes.Buffer), false)
	assert.Same(t, l, OrDiscard(l))
}
