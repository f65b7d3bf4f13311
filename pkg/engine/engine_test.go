package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yeisme/readmegen/pkg/configs"
	"github.com/yeisme/readmegen/pkg/llm"
	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/repo"
)

func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "shop")
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func fixtureRepo(t *testing.T) string {
	files := map[string]string{
		"README.md":               "# shop\nold readme\n",
		"requirements.txt":        "flask==2.0\n# tools\n\npytest\n",
		"main.py":                 "from services import billing\nimport utils.helpers\n\nif __name__ == \"__main__\":\n    run()\n",
		"utils/helpers.py":        "# helpers\ndef f():\n    pass\n",
		"services/billing.py":     "import utils.helpers\n",
		"web/vendor.min.js":       strings.Repeat("var a=1;", 2000),
		"node_modules/x/index.js": "module.exports = 1",
	}
	for i := range 6 {
		files[fmt.Sprintf("app/mod%d.py", i)] = "import utils.helpers\nimport main\n"
	}
	return writeRepo(t, files)
}

func Test_Scan(t *testing.T) {
	root := fixtureRepo(t)
	e := New(nil, DefaultOptions(), nop())
	snap, err := e.Scan(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if snap.RepoName != "shop" {
		t.Fatalf("repo name: %s", snap.RepoName)
	}
	for _, f := range snap.Files {
		if strings.HasPrefix(f.Path, "node_modules/") {
			t.Fatalf("ignored dir walked: %s", f.Path)
		}
	}
	if snap.Counts.Get("utils/helpers.py") != 8 || snap.Counts.Get("main.py") != 6 {
		t.Fatalf("counts: %v", snap.Counts)
	}
	core := snap.CorePaths()
	if len(core) != 5 || core[0] != "main.py" || core[1] != "utils/helpers.py" {
		t.Fatalf("core: %v", core)
	}
	for _, p := range core {
		if p == "web/vendor.min.js" || p == "README.md" {
			t.Fatalf("excluded file selected: %v", core)
		}
	}
	if _, ok := snap.Score("requirements.txt"); ok {
		t.Fatal("key files are not eligible")
	}
	if snap.ExistingReadme != "# shop\nold readme\n" || snap.KeyFiles["requirements.txt"] == "" {
		t.Fatalf("key files: %v", snap.KeyFiles)
	}
}

func Test_Synthesize(t *testing.T) {
	root := fixtureRepo(t)
	client := llm.ClientFunc(func(ctx context.Context, r llm.Request) (string, error) {
		if strings.Contains(r.User, "File path: main.py") {
			return "not json at all", nil
		}
		return `{"purpose": "shared helper routines"}`, nil
	})
	e := New(client, DefaultOptions(), nop())
	view, err := e.Synthesize(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.FileAnalyses) != len(view.CoreFiles) {
		t.Fatalf("analyses %d, core %d", len(view.FileAnalyses), len(view.CoreFiles))
	}
	if r := view.FileAnalyses["main.py"].Result; r.Kind() != models.ResultRaw || r.Purpose() != "not json at all" {
		t.Fatalf("main.py: %+v", r)
	}
	if !reflect.DeepEqual(view.Languages, []string{"Python", "JavaScript"}) {
		t.Fatalf("languages: %v", view.Languages)
	}
	if view.ProjectType != "web application" || view.KeyDependencies["requirements.txt"].Len() != 2 {
		t.Fatalf("synthesis: %q %+v", view.ProjectType, view.KeyDependencies)
	}
	if !strings.HasPrefix(view.ArchitectureSummary, "shop is a Python, JavaScript project, likely a web application.") {
		t.Fatalf("summary: %q", view.ArchitectureSummary)
	}
}

func Test_Analyze_NotFound(t *testing.T) {
	e := New(nil, DefaultOptions(), nop())
	if _, err := e.Analyze(context.Background(), filepath.Join(t.TempDir(), "missing")); !errors.Is(err, repo.ErrRepositoryNotFound) {
		t.Fatalf("expected ErrRepositoryNotFound, got %v", err)
	}
}

func Test_Languages(t *testing.T) {
	files := []models.FileRecord{
		{Language: "Go"}, {Language: "Python"}, {Language: "Go"}, {Language: "Markdown"},
		{Language: models.UnknownLanguage}, {Language: "C"},
	}
	if got := Languages(files); !reflect.DeepEqual(got, []string{"Go", "C", "Python"}) {
		t.Fatalf("got %v", got)
	}
}

func Test_OptionsFromConfig(t *testing.T) {
	cfg := configs.DefaultConfig()
	cfg.Analyzer.Ranking.MaxCore = 7
	cfg.LLM.Concurrency = 4
	opts := OptionsFromConfig(cfg)
	if opts.Ranking.MaxCore != 7 || opts.Analysis.Concurrency != 4 || opts.Analysis.Temperature != 0.3 {
		t.Fatalf("options: %+v", opts)
	}
	if !reflect.DeepEqual(opts.KeyFiles, DefaultKeyFiles) || !reflect.DeepEqual(opts.Ignore, DefaultOptions().Ignore) {
		t.Fatalf("analyzer defaults not carried: %+v", opts)
	}
}
