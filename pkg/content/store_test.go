package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_Read_UTF8AndLatin1(t *testing.T) {
	dir := t.TempDir()
	utf := filepath.Join(dir, "a.py")
	if err := os.WriteFile(utf, []byte("# héllo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	latin := filepath.Join(dir, "b.py")
	// "café" in ISO-8859-1
	if err := os.WriteFile(latin, []byte{'c', 'a', 'f', 0xe9}, 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(8)
	got, err := s.Read(utf)
	if err != nil || got != "# héllo\n" {
		t.Fatalf("utf8 read: %q %v", got, err)
	}
	got, err = s.Read(latin)
	if err != nil || got != "café" {
		t.Fatalf("latin1 read: %q %v", got, err)
	}
}

func Test_Read_Missing(t *testing.T) {
	s := NewStore(0)
	missing := filepath.Join(t.TempDir(), "nope.go")
	_, err := s.Read(missing)
	if !errors.Is(err, ErrFileRead) {
		t.Fatalf("expected ErrFileRead, got %v", err)
	}
	if p := s.ReadOrPlaceholder(missing); !strings.HasPrefix(p, "[unable to read file:") {
		t.Fatalf("placeholder: %q", p)
	}
}

func Test_WriteInvalidatesCache(t *testing.T) {
	s := NewStore(4)
	p := filepath.Join(t.TempDir(), "out", "nested", "README.md")
	if err := s.Write(p, "one"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, _ := s.Read(p); got != "one" {
		t.Fatalf("got %q", got)
	}
	if err := s.Write(p, "two"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, _ := s.Read(p); got != "two" {
		t.Fatalf("stale cache: %q", got)
	}
}

func Test_ListDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.go", "a.go", "c"} {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	names, err := NewStore(0).ListDirectory(dir)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(names, ",") != "a.go,b.go,c" {
		t.Fatalf("names: %v", names)
	}
}

func Test_Truncate(t *testing.T) {
	if Truncate("héllo", 2) != "h" {
		t.Fatalf("should not split multibyte rune: %q", Truncate("héllo", 2))
	}
	if Truncate("abc", 0) != "abc" || Truncate("abc", 10) != "abc" {
		t.Fatal("no-op truncation failed")
	}
}
