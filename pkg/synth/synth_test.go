package synth

import (
	"reflect"
	"strings"
	"testing"

	"github.com/yeisme/readmegen/pkg/models"
)

func analysis(purpose string) models.FileAnalysis {
	return models.FileAnalysis{Language: "Python", Result: models.NewStructured(models.StructuredAnalysis{Purpose: purpose}), IsCore: true}
}

func Test_GroupByDirectory(t *testing.T) {
	core := []string{"app/main.py", "main.py", "app/views.py", "utils/a.py"}
	groups := GroupByDirectory(core, map[string]models.FileAnalysis{"app/main.py": analysis("starts the app")})
	var dirs []string
	for _, g := range groups {
		dirs = append(dirs, g.Directory)
	}
	if !reflect.DeepEqual(dirs, []string{"app", RootGroup, "utils"}) {
		t.Fatalf("group order: %v", dirs)
	}
	if len(groups[0].Files) != 2 || groups[0].Files[0].Purpose != "starts the app" || groups[0].Files[1].Name != "views.py" {
		t.Fatalf("app group: %+v", groups[0])
	}
}

func Test_InferPurpose(t *testing.T) {
	opts := DefaultOptions()
	if got := InferPurpose("backend/Utils", nil, opts); got != "Utility functions" {
		t.Fatalf("table lookup: %q", got)
	}
	members := []models.GroupMember{{Purpose: "short"}, {Purpose: strings.Repeat("a", 120)}}
	if got := InferPurpose("engine", members, opts); got != strings.Repeat("a", 100)+"..." {
		t.Fatalf("truncated purpose: %q", got)
	}
	members = []models.GroupMember{{Purpose: "exactly10!"}, {Purpose: "Parses configuration files"}}
	if got := InferPurpose("engine", members, opts); got != "Parses configuration files" {
		t.Fatalf("member purpose: %q", got)
	}
	if got := InferPurpose("engine", []models.GroupMember{{Purpose: "tiny"}}, opts); got != "engine directory" {
		t.Fatalf("fallback: %q", got)
	}
}

func Test_ClassifyProject(t *testing.T) {
	rules := DefaultProjectTypes()
	cases := []struct {
		deps map[string]models.Manifest
		want string
	}{
		{map[string]models.Manifest{"requirements.txt": models.TextManifest("Flask==2.0\nnumpy\n")}, "web application"},
		{map[string]models.Manifest{"go.mod:require": models.StructuredManifest(map[string]string{"github.com/spf13/cobra": "v1.9.1"})}, "command-line tool"},
		{map[string]models.Manifest{"requirements.txt": models.TextManifest("pandas\nscikit-learn\n")}, "data science / machine learning project"},
		{map[string]models.Manifest{"requirements.txt": models.TextManifest("requests\n")}, ""},
		{nil, ""},
	}
	for i, tc := range cases {
		if got := ClassifyProject(tc.deps, rules); got != tc.want {
			t.Errorf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func Test_BuildSummary(t *testing.T) {
	groups := []models.DirectoryGroup{
		{Directory: RootGroup, Purpose: "root directory"},
		{Directory: "src", Purpose: "Source code"},
		{Directory: "utils", Purpose: "Utility functions"},
	}
	got := BuildSummary("demo", []string{"Python", "JavaScript"}, "web application", groups)
	want := "demo is a Python, JavaScript project, likely a web application. Its main modules are: src (Source code); utils (Utility functions)."
	if got != want {
		t.Fatalf("got %q", got)
	}
	if got := BuildSummary("demo", []string{"Go"}, "", groups[:1]); got != "demo is a Go project." {
		t.Fatalf("got %q", got)
	}
}

func Test_NormalizeDependencies(t *testing.T) {
	deps := map[string]models.Manifest{
		"requirements.txt":          models.TextManifest("flask==2.0\n# comment\n\n  requests>=2  \ngunicorn\n"),
		"package.json:dependencies": models.StructuredManifest(map[string]string{"react": "^18"}),
	}
	got := NormalizeDependencies(deps)
	if l := got["requirements.txt"]; l.Len() != 3 || l.Lines[1] != "requests>=2" {
		t.Fatalf("text manifest: %+v", l)
	}
	if got["package.json:dependencies"].Versions["react"] != "^18" {
		t.Fatalf("structured manifest: %+v", got)
	}
}

// 没有核心文件时仍生成汇总，分组为空
func Test_Synthesize_NoCoreFiles(t *testing.T) {
	report := models.AnalysisReport{
		RepoName:     "docs-only",
		Files:        []string{"README.md", "requirements.txt"},
		Dependencies: map[string]models.Manifest{"requirements.txt": models.TextManifest("flask\n# pinned later\nrequests\n")},
		KeyFiles:     map[string]string{"README.md": "# docs"},
	}
	view := Synthesize(report, DefaultOptions())
	if len(view.CoreFilesByDirectory) != 0 || len(view.CoreFiles) != 0 {
		t.Fatalf("expected no groups: %+v", view.CoreFilesByDirectory)
	}
	if view.KeyDependencies["requirements.txt"].Len() != 2 {
		t.Fatalf("deps: %+v", view.KeyDependencies)
	}
	if view.ProjectType != "web application" || view.ArchitectureSummary != "docs-only is a project, likely a web application." {
		t.Fatalf("summary: %q / %q", view.ArchitectureSummary, view.ProjectType)
	}
	if view.RepoName != report.RepoName {
		t.Fatal("report should be embedded")
	}
}

func Test_Synthesize(t *testing.T) {
	report := models.AnalysisReport{
		RepoName:  "shop",
		Languages: []string{"Python"},
		CoreFiles: []string{"app.py", "services/billing.py"},
		FileAnalyses: map[string]models.FileAnalysis{
			"app.py":              analysis("Flask application factory"),
			"services/billing.py": analysis("Computes invoices"),
		},
	}
	view := Synthesize(report, Options{})
	if len(view.CoreFilesByDirectory) != 2 || view.CoreFilesByDirectory[1].Purpose != "Business services" {
		t.Fatalf("groups: %+v", view.CoreFilesByDirectory)
	}
	if view.CoreFilesByDirectory[0].Purpose != "Flask application factory" {
		t.Fatalf("root purpose: %q", view.CoreFilesByDirectory[0].Purpose)
	}
	if !strings.HasSuffix(view.ArchitectureSummary, "Its main modules are: services (Business services).") {
		t.Fatalf("summary: %q", view.ArchitectureSummary)
	}
}
