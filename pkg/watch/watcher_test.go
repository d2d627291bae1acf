package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ilkoid/customini/pkg/classifier"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{Dir: t.TempDir()}, nil)
	assert.Error(t, err)

	_, err = New(Options{Dir: filepath.Join(t.TempDir(), "absent")}, func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestWatcher_Relevant(t *testing.T) {
	w, err := New(Options{Dir: t.TempDir(), Eligible: classifier.DefaultFilter().Eligible},
		func(context.Context) error { return nil })
	require.NoError(t, err)
	defer w.fs.Close()

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{name: "new archive", event: fsnotify.Event{Name: "/d/Mod.ba2", Op: fsnotify.Create}, expected: true},
		{name: "removed archive", event: fsnotify.Event{Name: "/d/Mod.ba2", Op: fsnotify.Remove}, expected: true},
		{name: "chmod only", event: fsnotify.Event{Name: "/d/Mod.ba2", Op: fsnotify.Chmod}, expected: false},
		{name: "official archive", event: fsnotify.Event{Name: "/d/SeventySix - Main.ba2", Op: fsnotify.Write}, expected: false},
		{name: "other file", event: fsnotify.Event{Name: "/d/readme.txt", Op: fsnotify.Create}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.Relevant(tt.event))
		})
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var runs atomic.Int32
	fired := make(chan struct{}, 10)

	w, err := New(Options{
		Dir:         dir,
		Eligible:    classifier.DefaultFilter().Eligible,
		Debounce:    100 * time.Millisecond,
		MinInterval: 10 * time.Millisecond,
	}, func(context.Context) error {
		runs.Add(1)
		fired <- struct{}{}
		return errors.New("write failed")
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for _, name := range []string{"A.ba2", "B.ba2", "C.ba2", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}
	// Даём время на возможный лишний вызов
	time.Sleep(300 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), runs.Load(), "burst must collapse into one run")
	stats := w.Stats()
	assert.GreaterOrEqual(t, stats.Events, 3)
	assert.Equal(t, 1, stats.Runs)
	assert.Equal(t, 1, stats.Failures)
}
