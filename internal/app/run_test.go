package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/patrickprogramme/subclip/internal/clipboard"
	"github.com/patrickprogramme/subclip/internal/config"
	"github.com/patrickprogramme/subclip/internal/logging"
	"github.com/patrickprogramme/subclip/internal/trigger"
	"github.com/patrickprogramme/subclip/internal/ui"
)

// fakeListener déclenche fires fois puis attend l'annulation.
type fakeListener struct {
	name    string
	fires   int
	started chan struct{}
	err     error
}

func (f *fakeListener) Name() string { return f.name }

func (f *fakeListener) Run(ctx context.Context, fire func()) error {
	for i := 0; i < f.fires; i++ {
		fire()
	}
	if f.started != nil {
		close(f.started)
	}
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return nil
}

func TestRunFiresAndStops(t *testing.T) {
	clip := &clipboard.Memory{Text: srtSample}
	var out bytes.Buffer
	cfg := config.Default()
	cfg.SettleDelayMS = 0
	cfg.WatchConfig = false
	cfg.LockFile = filepath.Join(t.TempDir(), "subclip.lock")

	a := New(cfg, ui.NewWriters(&out, &bytes.Buffer{}), clip, logging.Nop(), config.Overrides{})
	started := make(chan struct{})
	a.newListener = func(*config.Config) (trigger.Listener, error) {
		return &fakeListener{name: "Ctrl+C", fires: 1, started: started}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatalf("listener never started")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v; want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}

	if clip.Text != "00:01 - 00:06 (hello there... - ...doing today?)" {
		t.Fatalf("clipboard = %q", clip.Text)
	}
	text := out.String()
	if !strings.Contains(text, "Ctrl+C pour résumer le presse-papier, Ctrl+C dans cette console pour quitter") {
		t.Fatalf("banner missing: %q", text)
	}
	if !strings.HasSuffix(strings.TrimSpace(text), ui.StoppedMessage) {
		t.Fatalf("stop notice missing: %q", text)
	}
}

func TestRunListenerError(t *testing.T) {
	cfg := config.Default()
	cfg.SingleInstance = false
	cfg.WatchConfig = false

	a := New(cfg, ui.NewWriters(&bytes.Buffer{}, &bytes.Buffer{}), &clipboard.Memory{}, logging.Nop(), config.Overrides{})
	boom := errors.New("hook refusé")
	a.newListener = func(*config.Config) (trigger.Listener, error) {
		return &fakeListener{name: "Ctrl+C", err: boom}, nil
	}

	if err := a.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Run error = %v; want %v", err, boom)
	}
}

func TestRunSingleInstance(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "subclip.lock")
	held := flock.New(lockPath)
	if ok, err := held.TryLock(); err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	defer held.Unlock()

	cfg := config.Default()
	cfg.WatchConfig = false
	cfg.LockFile = lockPath

	a := New(cfg, ui.NewWriters(&bytes.Buffer{}, &bytes.Buffer{}), &clipboard.Memory{}, logging.Nop(), config.Overrides{})
	a.newListener = func(*config.Config) (trigger.Listener, error) {
		t.Fatalf("listener built although another instance holds the lock")
		return nil, nil
	}

	if err := a.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("Run error = %v; want ErrAlreadyRunning", err)
	}
}

func TestRunReloadsConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subclip.yaml")
	if err := os.WriteFile(path, []byte("hotkey: ctrl+c\ntrigger: poll\nconfig_version: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.SingleInstance = false

	// l'option CLI doit survivre au rechargement
	level := "debug"
	a := New(cfg, ui.NewWriters(&bytes.Buffer{}, &bytes.Buffer{}), &clipboard.Memory{}, logging.Nop(), config.Overrides{LogLevel: &level})

	var mu sync.Mutex
	var seen []*config.Config
	builds := make(chan struct{}, 4)
	a.newListener = func(c *config.Config) (trigger.Listener, error) {
		mu.Lock()
		seen = append(seen, c)
		mu.Unlock()
		builds <- struct{}{}
		return &fakeListener{name: c.Hotkey}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	<-builds
	// laisser le watcher s'installer
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("hotkey: alt+s\ntrigger: poll\nconfig_version: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-builds:
	case <-time.After(5 * time.Second):
		t.Fatalf("listener not restarted after config change")
	}
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	last := seen[len(seen)-1]
	if last.Hotkey != "alt+s" {
		t.Fatalf("reloaded hotkey = %q; want alt+s", last.Hotkey)
	}
	if last.Logging.Level != "debug" {
		t.Fatalf("reloaded log level = %q; want CLI override debug", last.Logging.Level)
	}
}
