package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for a concurrent writer and reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchLoop_RendersAndStops(t *testing.T) {
	dir := projectDir(t, "")
	newTestCmd(t)
	out := &syncBuffer{}
	watchCmd.SetOut(out)
	t.Cleanup(func() { watchCmd.SetOut(nil) })

	s, err := loadSession(watchCmd, []string{dir})
	require.NoError(t, err)
	orch, err := s.newOrchestrator()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchLoop(ctx, watchCmd, s, orch, time.Hour) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Tab: ios")
	}, 5*time.Second, 10*time.Millisecond)

	orch.Trigger()
	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "QA Pulse Report") >= 2
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchCmd_RejectsOutput(t *testing.T) {
	dir := projectDir(t, "")
	cmd, _, _ := newTestCmd(t)
	cmd.SetArgs([]string{"watch", dir, "--quiet", "-o", "out.txt"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArgs, exitCode(err))
	assert.Contains(t, err.Error(), "--output is not supported")
}

func TestWatchCmd_InvalidInterval(t *testing.T) {
	dir := projectDir(t, "")
	cmd, _, _ := newTestCmd(t)
	cmd.SetArgs([]string{"watch", dir, "--quiet", "--interval=-1m"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh_interval: must be positive")
}
