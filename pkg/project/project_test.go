package project

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yeisme/readmegen/pkg/configs"
	gctx "github.com/yeisme/readmegen/pkg/context"
	"github.com/yeisme/readmegen/pkg/llm"
	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/rank"
)

func fixtureRepo(t *testing.T) string {
	t.Helper()
	files := map[string]string{
		"README.md":               "# shop\nold readme\n",
		"requirements.txt":        "flask==2.0\npytest\n",
		"main.py":                 "from services import billing\nimport utils.helpers\n\nif __name__ == \"__main__\":\n    run()\n",
		"utils/helpers.py":        "# helpers\ndef f():\n    pass\n",
		"services/billing.py":     "import utils.helpers\n",
		"web/vendor.min.js":       strings.Repeat("var a=1;", 2000),
		"node_modules/x/index.js": "module.exports = 1",
	}
	for i := range 6 {
		files[fmt.Sprintf("app/mod%d.py", i)] = "import utils.helpers\nimport main\n"
	}
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

func testContext() *gctx.ReadmegenContext {
	l := zerolog.Nop()
	return &gctx.ReadmegenContext{
		Context: context.Background(),
		Config:  configs.DefaultConfig(),
		Logger:  &l,
	}
}

func fakeClient(calls *int) llm.Client {
	return llm.ClientFunc(func(ctx context.Context, r llm.Request) (string, error) {
		*calls++
		if strings.Contains(r.User, "File path:") {
			return `{"purpose": "shared helper routines"}`, nil
		}
		return "```markdown\n# shop\n\nA small shop.\n```", nil
	})
}

func Test_ExecuteRankCommand_JSON(t *testing.T) {
	root := fixtureRepo(t)
	var buf bytes.Buffer
	if err := ExecuteRankCommand(testContext(), RankOptions{Format: "json"}, []string{root}, &buf); err != nil {
		t.Fatal(err)
	}
	var res RankResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if res.Repository != "shop" || res.CoreLimit != 5 || len(res.Core) != 5 {
		t.Fatalf("result: %+v", res)
	}
	if res.Core[0] != "main.py" || res.Files[0].Path != "main.py" {
		t.Fatalf("core order: %v", res.Core)
	}
}

func Test_ExecuteRankCommand_Table(t *testing.T) {
	root := fixtureRepo(t)
	var buf bytes.Buffer
	opts := RankOptions{All: true, Filter: "helpers"}
	if err := ExecuteRankCommand(testContext(), opts, []string{root}, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "utils/helpers.py") || strings.Contains(out, "billing.py") {
		t.Fatalf("table:\n%s", out)
	}
}

func Test_Explain(t *testing.T) {
	root := fixtureRepo(t)
	rctx := testContext()
	eng := newEngine(rctx, nil)
	snap, err := eng.Scan(rctx, root)
	if err != nil {
		t.Fatal(err)
	}

	exp := Explain(eng, snap, "main.py")
	if !exp.Eligible || exp.Rank != 1 || !exp.Core || exp.Score == nil || exp.Score.EntryPoint == 0 {
		t.Fatalf("main.py: %+v", exp)
	}
	cases := map[string]string{
		"README.md":         rank.ReasonExcludedName,
		"requirements.txt":  rank.ReasonUnknownLanguage,
		"web/vendor.min.js": rank.ReasonGenerated,
	}
	for p, want := range cases {
		if got := Explain(eng, snap, p); got.Eligible || got.Reason != want {
			t.Errorf("%s: %+v, want reason %q", p, got, want)
		}
	}
}

func Test_ExecuteExplainCommand(t *testing.T) {
	root := fixtureRepo(t)
	var buf bytes.Buffer
	if err := ExecuteExplainCommand(testContext(), ExplainOptions{Format: "json"}, []string{root, "helpers.py"}, &buf); err != nil {
		t.Fatal(err)
	}
	var exp Explanation
	if err := json.Unmarshal(buf.Bytes(), &exp); err != nil {
		t.Fatal(err)
	}
	if exp.Path != "utils/helpers.py" || exp.Rank != 2 {
		t.Fatalf("explanation: %+v", exp)
	}

	err := ExecuteExplainCommand(testContext(), ExplainOptions{}, []string{root, "missing.go"}, &buf)
	if err == nil || !strings.Contains(err.Error(), ErrFileNotFound.Error()) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func Test_MatchFile(t *testing.T) {
	files := []models.FileRecord{
		{Path: "main.go"}, {Path: "cmd/root.go"}, {Path: "pkg/rank/rank.go"}, {Path: "pkg/rank/options.go"},
	}
	cases := []struct {
		query string
		want  string
		many  bool
	}{
		{"main.go", "main.go", false},
		{"./cmd/root.go", "cmd/root.go", false},
		{"options.go", "pkg/rank/options.go", false},
		{"rank", "", true},
		{"zzz", "", false},
	}
	for _, c := range cases {
		got, candidates := MatchFile(files, c.query)
		if got != c.want || (len(candidates) > 1) != c.many {
			t.Errorf("MatchFile(%q) = %q %v", c.query, got, candidates)
		}
	}
}

func Test_FilterScores(t *testing.T) {
	scores := []models.FileScore{{Path: "pkg/rank/rank.go"}, {Path: "cmd/root.go"}, {Path: "pkg/repo/walk.go"}}
	if got := FilterScores(scores, ""); len(got) != 3 {
		t.Fatalf("empty query: %v", got)
	}
	got := FilterScores(scores, "PKG/R")
	if len(got) != 2 || got[0].Path != "pkg/rank/rank.go" || got[1].Path != "pkg/repo/walk.go" {
		t.Fatalf("filtered: %v", got)
	}
}

func Test_ClientOverrides(t *testing.T) {
	base := llm.Config{Provider: "openai", Model: "gpt-4o", BaseURL: "https://proxy.local/v1"}
	if got := (ClientOverrides{}).Apply(base); got != base {
		t.Fatalf("no overrides changed config: %+v", got)
	}
	got := ClientOverrides{Provider: "Gemini"}.Apply(base)
	if got.Provider != llm.ProviderGemini || got.Model != "" || got.BaseURL != "" {
		t.Fatalf("provider switch: %+v", got)
	}
	got = ClientOverrides{Model: "gpt-4o-mini"}.Apply(base)
	if got.Model != "gpt-4o-mini" || got.BaseURL != base.BaseURL {
		t.Fatalf("model override: %+v", got)
	}
}

func Test_ExecuteGenerateCommand(t *testing.T) {
	root := fixtureRepo(t)
	calls := 0
	var buf bytes.Buffer
	opts := GenerateOptions{Output: "docs/README.md", Client: fakeClient(&calls)}
	if err := ExecuteGenerateCommand(testContext(), opts, []string{root}, &buf); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(root, "docs", "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "# shop\n\nA small shop.\n" {
		t.Fatalf("readme %q", b)
	}
	// 5 个核心文件各一次分析调用，加一次生成调用
	if calls != 6 {
		t.Fatalf("calls = %d", calls)
	}
	if !strings.Contains(buf.String(), "README written to") {
		t.Fatalf("output: %q", buf.String())
	}
}

func Test_ExecuteGenerateCommand_DryRun(t *testing.T) {
	root := fixtureRepo(t)
	calls := 0
	var buf bytes.Buffer
	opts := GenerateOptions{DryRun: true, Client: fakeClient(&calls)}
	if err := ExecuteGenerateCommand(testContext(), opts, []string{root}, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "# shop\n\nA small shop.\n" {
		t.Fatalf("dry run output %q", buf.String())
	}
	b, _ := os.ReadFile(filepath.Join(root, "README.md"))
	if string(b) != "# shop\nold readme\n" {
		t.Fatalf("dry run overwrote README: %q", b)
	}
}

func Test_ExecuteAnalyzeCommand(t *testing.T) {
	root := fixtureRepo(t)
	out := filepath.Join(t.TempDir(), "analysis.json")
	opts := AnalyzeOptions{Format: "json", Out: out, Offline: true}
	if err := ExecuteAnalyzeCommand(testContext(), opts, []string{root}, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var view map[string]any
	if err := json.Unmarshal(b, &view); err != nil {
		t.Fatal(err)
	}
	if view["repo_name"] != "shop" || view["project_type"] != "web application" {
		t.Fatalf("view: %v", view)
	}
}

func Test_ExecuteTreeCommand(t *testing.T) {
	root := fixtureRepo(t)
	var buf bytes.Buffer
	if err := ExecuteTreeCommand(testContext(), TreeOptions{}, []string{root}, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "main.py ★") || strings.Contains(out, "node_modules") {
		t.Fatalf("tree:\n%s", out)
	}
}

func Test_OutputPath(t *testing.T) {
	root := filepath.Join("repo", "shop")
	if got := OutputPath(root, ""); got != filepath.Join(root, "README.md") {
		t.Fatalf("default: %s", got)
	}
	abs := filepath.Join(t.TempDir(), "OUT.md")
	if got := OutputPath(root, abs); got != abs {
		t.Fatalf("absolute: %s", got)
	}
}

func Test_MergeWatchOptions(t *testing.T) {
	rctx := testContext()
	rctx.Config.Watch.RankOnly = true
	got := mergeWatchOptions(rctx, WatchOptions{Output: "docs/README.md"})
	if got.Debounce != 500*time.Millisecond || !got.RankOnly || got.Output != "docs/README.md" {
		t.Fatalf("merged: %+v", got)
	}
}

func Test_WatchHook_RankOnly(t *testing.T) {
	root := fixtureRepo(t)
	rctx := testContext()
	eng := newEngine(rctx, nil)
	var buf bytes.Buffer
	hook := watchHook(rctx, eng, nil, root, WatchOptions{RankOnly: true}, &buf)
	if err := hook(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "main.py") {
		t.Fatalf("output:\n%s", buf.String())
	}
}
