package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/yeisme/readmegen/pkg/utils/ignore"
)

func setup(t *testing.T) (string, *Watcher) {
	t.Helper()
	root := t.TempDir()
	for _, p := range []string{"main.py", "node_modules/x/index.js", "README.md"} {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	nop := zerolog.Nop()
	w, err := New(root, Options{
		Debounce: 30 * time.Millisecond,
		Policy:   ignore.DefaultPolicy(),
		Exclude:  []string{"README.md"},
		Logger:   &nop,
	})
	if err != nil {
		t.Fatal(err)
	}
	return root, w
}

func Test_handle(t *testing.T) {
	root, w := setup(t)
	defer w.fsw.Close()

	main := filepath.Join(root, "main.py")
	if _, ok := w.cache[main]; !ok {
		t.Fatal("initial state not cached")
	}
	if _, ok := w.cache[filepath.Join(root, "node_modules", "x", "index.js")]; ok {
		t.Fatal("ignored directory cached")
	}

	if w.handle(fsnotify.Event{Name: main, Op: fsnotify.Write}) {
		t.Fatal("write without content change reported")
	}
	if err := os.WriteFile(main, []byte("x = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !w.handle(fsnotify.Event{Name: main, Op: fsnotify.Write}) {
		t.Fatal("content change not reported")
	}
	if w.handle(fsnotify.Event{Name: filepath.Join(root, "README.md"), Op: fsnotify.Write}) {
		t.Fatal("excluded file reported")
	}
	if w.handle(fsnotify.Event{Name: filepath.Join(root, "node_modules", "y.js"), Op: fsnotify.Create}) {
		t.Fatal("ignored path reported")
	}
	if !w.handle(fsnotify.Event{Name: main, Op: fsnotify.Remove}) {
		t.Fatal("removal of tracked file not reported")
	}
	if w.handle(fsnotify.Event{Name: main, Op: fsnotify.Remove}) {
		t.Fatal("second removal reported")
	}
}

func Test_Run_Debounce(t *testing.T) {
	root, w := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls <- struct{}{}
			return nil
		})
	}()

	for i := range 3 {
		if err := os.WriteFile(filepath.Join(root, "main.py"), []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("hook not called")
	}
	select {
	case <-calls:
		t.Fatal("burst of writes should trigger a single run")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}
