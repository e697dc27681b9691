package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/qapulse/internal/pipeline"
)

func TestExitError_DefaultMessages(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{ExitPartialFailure, "qapulse: some tabs failed to load"},
		{ExitTotalFailure, "qapulse: no tab could be loaded"},
		{ExitInvalidArgs, "qapulse: error"},
	}
	for _, tt := range tests {
		err := exitError(tt.code, "")
		assert.Equal(t, tt.want, err.Error())
		assert.Equal(t, tt.code, err.ExitCode())
	}
}

func TestExitError_Formats(t *testing.T) {
	err := exitError(ExitInvalidArgs, "qapulse: bad %s", "thing")
	assert.Equal(t, "qapulse: bad thing", err.Error())
}

func TestStatusError(t *testing.T) {
	assert.NoError(t, statusError(pipeline.StatusOK))

	err := statusError(pipeline.StatusPartial)
	require.Error(t, err)
	assert.Equal(t, ExitPartialFailure, exitCode(err))

	err = statusError(pipeline.StatusNone)
	require.Error(t, err)
	assert.Equal(t, ExitTotalFailure, exitCode(err))
}
