package graph

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yeisme/readmegen/pkg/content"
	"github.com/yeisme/readmegen/pkg/lang"
	"github.com/yeisme/readmegen/pkg/models"
)

func fixture(t *testing.T, files map[string]string) (string, []models.FileRecord) {
	t.Helper()
	root := t.TempDir()
	var recs []models.FileRecord
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		recs = append(recs, models.FileRecord{Path: rel, AbsPath: p, Language: lang.IdentifyLanguage(rel), Size: int64(len(body))})
	}
	return root, recs
}

func nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func Test_BuildImportCounts(t *testing.T) {
	root, files := fixture(t, map[string]string{
		"main.py":          "from utils.helpers import run\nimport app.models\nimport os\n",
		"app/views.py":     "from .models import User\nfrom ..utils.helpers import x\n",
		"app/models.py":    "import app.models\n",
		"utils/helpers.py": "# helpers\n",
		"web/index.js":     "import api from './api'\nimport React from 'react'\n",
		"web/api.js":       "module.exports = {}\n",
		"README.md":        "import x from './web/api'\n",
	})

	for _, conc := range []int{1, 4} {
		counts, err := BuildImportCounts(context.Background(), files, content.NewStore(16), Options{Root: root, Concurrency: conc, Logger: nop()})
		if err != nil {
			t.Fatalf("conc=%d: %v", conc, err)
		}
		want := map[string]int{
			"utils/helpers.py": 2,
			"app/models.py":    2,
			"web/api.js":       1,
		}
		if len(counts) != len(want) {
			t.Fatalf("conc=%d: counts %v", conc, counts)
		}
		for p, n := range want {
			if counts.Get(p) != n {
				t.Fatalf("conc=%d: %s = %d, want %d (all %v)", conc, p, counts.Get(p), n, counts)
			}
		}
	}
}

func Test_BuildImportCounts_GoModule(t *testing.T) {
	root, files := fixture(t, map[string]string{
		"go.mod":              "module example.com/m\n",
		"main.go":             "package main\n\nimport (\n\t\"fmt\"\n\t\"example.com/m/pkg/store\"\n)\n",
		"cmd/run.go":          "package cmd\n\nimport \"example.com/m/pkg/store\"\n",
		"pkg/store/a.go":      "package store\n",
		"pkg/store/b.go":      "package store\n\nimport \"example.com/m/pkg/store\"\n",
		"pkg/store/a_test.go": "package store\n",
	})
	counts, err := BuildImportCounts(context.Background(), files, nil, Options{Root: root, GoModule: "example.com/m", Logger: nop()})
	if err != nil {
		t.Fatal(err)
	}
	// b.go 对自身所在包的导入只计 a.go
	if counts.Get("pkg/store/a.go") != 3 || counts.Get("pkg/store/b.go") != 2 {
		t.Fatalf("counts: %v", counts)
	}
	if counts.Get("pkg/store/a_test.go") != 0 {
		t.Fatalf("test files should not be import targets: %v", counts)
	}
}

func Test_BuildImportCounts_UnreadableFile(t *testing.T) {
	root, files := fixture(t, map[string]string{"a.py": "import b\n", "b.py": ""})
	files = append(files, models.FileRecord{Path: "gone.py", AbsPath: filepath.Join(root, "gone.py"), Language: "Python"})
	counts, err := BuildImportCounts(context.Background(), files, nil, Options{Root: root, Logger: nop()})
	if err != nil {
		t.Fatal(err)
	}
	if counts.Get("b.py") != 1 {
		t.Fatalf("counts: %v", counts)
	}
}

func Test_BuildImportCounts_Cancelled(t *testing.T) {
	root, files := fixture(t, map[string]string{"a.py": "import b\n", "b.py": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BuildImportCounts(ctx, files, nil, Options{Root: root, Logger: nop()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func Test_FileEdges(t *testing.T) {
	root, files := fixture(t, map[string]string{
		"main.py":          "from utils.helpers import run\nimport app.models\nimport os\n",
		"app/models.py":    "import app.models\n",
		"utils/helpers.py": "# helpers\n",
	})
	byPath := map[string]models.FileRecord{}
	for _, f := range files {
		byPath[f.Path] = f
	}
	resolver := lang.NewResolver(root, files)

	got := FileEdges(content.NewStore(0), resolver, byPath["main.py"], nop())
	want := []models.ImportReference{
		{From: "main.py", Target: "utils/helpers.py"},
		{From: "main.py", Target: "app/models.py"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := FileEdges(content.NewStore(0), resolver, byPath["app/models.py"], nop()); got != nil {
		t.Fatalf("self reference should be dropped: %v", got)
	}
}
