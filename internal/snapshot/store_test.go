// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package snapshot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-server-config/internal/config"
	"github.com/MKhiriev/go-server-config/internal/crontasks"
	"github.com/MKhiriev/go-server-config/internal/environment"
	"github.com/MKhiriev/go-server-config/internal/logger"
	"github.com/MKhiriev/go-server-config/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func cfgWithPort(port int) *config.ServerConfig {
	return &config.ServerConfig{
		Host:      config.DefaultHost,
		Port:      port,
		PublicURL: config.DefaultPublicURL,
		Cron:      config.Cron{Enabled: true},
	}
}

// ── New ───────────────────────────────────────────────────────────────────────

func TestNew_LoadsInitialSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	initial := cfgWithPort(1337)
	loader := mock.NewMockLoader(ctrl)
	loader.EXPECT().Load().Return(initial, nil)

	store, err := New(loader, logger.Nop())
	require.NoError(t, err)
	assert.Same(t, initial, store.Current())
}

func TestNew_FailsWhenLoadFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mock.NewMockLoader(ctrl)
	loader.EXPECT().Load().Return(nil, assert.AnError)

	store, err := New(loader, logger.Nop())
	assert.Nil(t, store)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestNew_FailsOnNilConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mock.NewMockLoader(ctrl)
	loader.EXPECT().Load().Return(nil, nil)

	_, err := New(loader, logger.Nop())
	assert.ErrorIs(t, err, errNilConfig)
}

// ── Reload ────────────────────────────────────────────────────────────────────

func TestReload_PublishesChangedSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	initial, next := cfgWithPort(1337), cfgWithPort(8080)
	loader := mock.NewMockLoader(ctrl)
	sub := mock.NewMockSubscriber(ctrl)
	gomock.InOrder(
		loader.EXPECT().Load().Return(initial, nil),
		loader.EXPECT().Load().Return(next, nil),
		sub.EXPECT().OnReload(next),
	)

	store, err := New(loader, logger.Nop())
	require.NoError(t, err)
	store.Subscribe(sub)

	changed, err := store.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Same(t, next, store.Current())
}

func TestReload_SkipsUnchangedSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	initial := cfgWithPort(1337)
	loader := mock.NewMockLoader(ctrl)
	sub := mock.NewMockSubscriber(ctrl)
	loader.EXPECT().Load().Return(initial, nil)
	loader.EXPECT().Load().Return(cfgWithPort(1337), nil)
	sub.EXPECT().OnReload(gomock.Any()).Times(0)

	store, err := New(loader, logger.Nop())
	require.NoError(t, err)
	store.Subscribe(sub)

	changed, err := store.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, initial, store.Current())
}

func TestReload_KeepsPreviousOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	initial := cfgWithPort(1337)
	loader := mock.NewMockLoader(ctrl)
	sub := mock.NewMockSubscriber(ctrl)
	loader.EXPECT().Load().Return(initial, nil)
	loader.EXPECT().Load().Return(nil, assert.AnError)
	loader.EXPECT().Load().Return(nil, nil)
	sub.EXPECT().OnReload(gomock.Any()).Times(0)

	store, err := New(loader, logger.Nop())
	require.NoError(t, err)
	store.Subscribe(sub)

	changed, err := store.Reload()
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, changed)
	assert.Same(t, initial, store.Current())

	changed, err = store.Reload()
	assert.ErrorIs(t, err, errNilConfig)
	assert.False(t, changed)
	assert.Same(t, initial, store.Current())
}

func TestReload_NotifiesAllSubscribersInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := cfgWithPort(9000)
	loader := mock.NewMockLoader(ctrl)
	first := mock.NewMockSubscriber(ctrl)
	second := mock.NewMockSubscriber(ctrl)
	loader.EXPECT().Load().Return(cfgWithPort(1337), nil)
	loader.EXPECT().Load().Return(next, nil)
	gomock.InOrder(
		first.EXPECT().OnReload(next),
		second.EXPECT().OnReload(next),
	)

	store, err := New(loader, logger.Nop())
	require.NoError(t, err)
	store.Subscribe(first)
	store.Subscribe(second)

	_, err = store.Reload()
	require.NoError(t, err)
}

// TestReload_RealLoader verifies that rebuilding from an unchanged
// environment does not count as a change, since the task table is the same.
func TestReload_RealLoader(t *testing.T) {
	tasks := crontasks.Tasks{}
	e := environment.FromMap(map[string]string{"APP_KEYS": "a,b"})
	loader := LoaderFunc(func() (*config.ServerConfig, error) {
		return config.GetServerConfig(e, tasks, nil, logger.Nop())
	})

	store, err := New(loader, logger.Nop())
	require.NoError(t, err)

	changed, err := store.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestLoaderFunc(t *testing.T) {
	want := cfgWithPort(1)
	got, err := LoaderFunc(func() (*config.ServerConfig, error) { return want, nil }).Load()
	require.NoError(t, err)
	assert.Same(t, want, got)

	_, err = LoaderFunc(func() (*config.ServerConfig, error) { return nil, errors.New("boom") }).Load()
	assert.EqualError(t, err, "boom")
}

// ── Watch ─────────────────────────────────────────────────────────────────────

func writePort(t *testing.T, path string, port int) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(`{"port": `+strconv.Itoa(port)+`}`), 0o600))
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writePort(t, path, 1337)

	loader := LoaderFunc(func() (*config.ServerConfig, error) {
		return config.GetServerConfig(environment.Env{}, nil, []string{"-c", path}, logger.Nop())
	})
	store, err := New(loader, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, 1337, store.Current().Port)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, path) }()

	// Writes are repeated until one lands after the watcher is registered.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(`{"port": 9000}`), 0o600)
		return store.Current().Port == 9000
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

// syncBuffer lets the test read log output while Watch is writing it.
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

// TestWatch_ReloadsOnAtomicSave saves the file the way editors do, by
// renaming a temporary file over it, twice in a row and then writes it in
// place. Every save must be picked up.
func TestWatch_ReloadsOnAtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writePort(t, path, 1337)

	var logs syncBuffer
	loader := LoaderFunc(func() (*config.ServerConfig, error) {
		return config.GetServerConfig(environment.Env{}, nil, []string{"-c", path}, logger.Nop())
	})
	store, err := New(loader, logger.New(&logs, "test"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, path) }()

	renameOver := func(port int) {
		tmp := filepath.Join(dir, ".config.json.tmp")
		if err := os.WriteFile(tmp, []byte(`{"port": `+strconv.Itoa(port)+`}`), 0o600); err != nil {
			return
		}
		_ = os.Rename(tmp, path)
	}

	for _, port := range []int{9000, 9001} {
		require.Eventually(t, func() bool {
			renameOver(port)
			return store.Current().Port == port
		}, 5*time.Second, 50*time.Millisecond, "atomic save of port %d", port)
	}

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(`{"port": 9002}`), 0o600)
		return store.Current().Port == 9002
	}, 5*time.Second, 50*time.Millisecond, "in-place write after atomic saves")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}

	var handled []string
	for _, line := range strings.Split(logs.String(), "\n") {
		if strings.Contains(line, `"message":"config file event handled"`) {
			handled = append(handled, line)
		}
	}
	require.NotEmpty(t, handled)
	assert.Contains(t, strings.Join(handled, "\n"), `"changed":true`)
	for _, line := range handled {
		assert.Contains(t, line, `"path":"`+path+`"`)
		assert.NotContains(t, line, ".config.json.tmp")
	}
}

// TestWatch_IgnoresOtherFiles verifies that writes to neighbours of the
// watched file do not trigger a reload.
func TestWatch_IgnoresOtherFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writePort(t, path, 1337)

	loader := mock.NewMockLoader(ctrl)
	loader.EXPECT().Load().Return(cfgWithPort(1337), nil).Times(1)

	store, err := New(loader, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, path) }()

	for i := 0; i < 5; i++ {
		writePort(t, filepath.Join(dir, "other.json"), 9000+i)
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_KeepsPreviousOnBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writePort(t, path, 1337)

	loader := LoaderFunc(func() (*config.ServerConfig, error) {
		return config.GetServerConfig(environment.Env{}, nil, []string{"-c", path}, logger.Nop())
	})
	store, err := New(loader, logger.Nop())
	require.NoError(t, err)
	initial := store.Current()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = store.Watch(ctx, path) }()

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))
	time.Sleep(200 * time.Millisecond)

	assert.Same(t, initial, store.Current())
}

func TestWatch_MissingFile(t *testing.T) {
	store := &Store{logger: logger.Nop()}

	err := store.Watch(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
