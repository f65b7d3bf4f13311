package lang

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/yeisme/readmegen/pkg/models"
)

func Test_IdentifyLanguage(t *testing.T) {
	cases := map[string]string{
		"main.py":          "Python",
		"src/App.TSX":      "React TypeScript",
		"lib/a.go":         "Go",
		"include/x.h":      "C/C++ Header",
		"requirements.txt": models.UnknownLanguage,
		"Makefile":         models.UnknownLanguage,
	}
	for p, want := range cases {
		if got := IdentifyLanguage(p); got != want {
			t.Errorf("IdentifyLanguage(%s) = %s, want %s", p, got, want)
		}
	}
	if IsProgramming("Markdown") || IsProgramming(models.UnknownLanguage) || !IsProgramming("Go") {
		t.Fatal("IsProgramming mismatch")
	}
}

func Test_ParseImports(t *testing.T) {
	cases := []struct {
		lang    string
		content string
		want    []string
	}{
		{"Python", "import os, sys as s\nfrom .utils import helper\nfrom . import a, b\nfrom pkg.mod import x\n", []string{"os", "sys", ".utils", ".a", ".b", "pkg.mod"}},
		{"JavaScript", "import React from 'react'\nimport './styles.css'\nconst x = require(\"./lib/x\")\nexport * from '../shared'\n", []string{"react", "./styles.css", "./lib/x", "../shared"}},
		{"TypeScript", "import {\n  a,\n  b,\n} from './ab'\n", []string{"./ab"}},
		{"Go", "package main\n\nimport \"fmt\"\nimport (\n\t\"os\"\n\tlog2 \"example.com/m/pkg/log\"\n)\n", []string{"fmt", "os", "example.com/m/pkg/log"}},
		{"C", "#include <stdio.h>\n#include \"util.h\"\n", []string{"util.h"}},
		{"Java", "import java.util.List;\nimport static com.acme.Util.helper;\n", []string{"java.util.List", "com.acme.Util.helper"}},
		{"Rust", "mod parser;\npub mod lexer;\nuse std::io;\n", []string{"parser", "lexer"}},
		{"Ruby", "require 'json'\nrequire_relative 'lib/a'\n", []string{"json", "./lib/a"}},
		{"PHP", "<?php\nrequire_once 'lib/x.php';\ninclude('config.php');\n", []string{"lib/x.php", "config.php"}},
		{"SCSS", "@import 'variables';\n", []string{"variables"}},
		{"Shell", "source ./env.sh\n. lib/common.sh\n", []string{"./env.sh", "lib/common.sh"}},
		{"Markdown", "import x from 'y'", nil},
	}
	for _, tc := range cases {
		got := ParseImports(tc.content, tc.lang)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.lang, got, tc.want)
		}
	}
}

func Test_ExtractComments(t *testing.T) {
	py := "#!/usr/bin/env python\n\"\"\"Module doc\nsecond line\n\"\"\"\nx = 1  # trailing\n# real comment\n"
	if got := ExtractComments(py, "Python"); len(got) != 5 {
		t.Fatalf("python comments: %v", got)
	}
	goSrc := "// Package a\npackage a\n/* block\n still */\nvar u = \"http://x\"\n"
	if got := ExtractComments(goSrc, "Go"); len(got) != 3 {
		t.Fatalf("go comments: %v", got)
	}
	if got := ExtractComments("# x", "Unknown"); got != nil {
		t.Fatalf("unknown language should yield nothing: %v", got)
	}
	if d := CommentDensity("", "Go"); d != 0 {
		t.Fatalf("empty density = %v", d)
	}
	if d := CommentDensity("# a\nx = 1\n", "Python"); d != 0.5 {
		t.Fatalf("density = %v", d)
	}
}

func records(paths ...string) []models.FileRecord {
	out := make([]models.FileRecord, 0, len(paths))
	for _, p := range paths {
		out = append(out, models.FileRecord{Path: p, Language: IdentifyLanguage(p)})
	}
	return out
}

func Test_Resolve(t *testing.T) {
	files := records(
		"main.py", "x.py", "utils/__init__.py", "utils/helpers.py", "app/views.py", "app/models.py",
		"web/src/index.js", "web/src/lib/api.ts", "web/src/components/index.jsx",
		"src/util.h", "src/main.c",
		"cmd/main.go", "pkg/store/store.go", "pkg/store/store_test.go",
		"src/main/java/com/acme/Util.java", "src/lib.rs", "src/parser.rs",
	)
	r := NewResolver("/repo", files).WithGoModule("example.com/m")

	cases := []struct {
		from, target string
		want         []string
	}{
		{"main.py", "utils.helpers", []string{"utils/helpers.py"}},
		{"main.py", "utils", []string{"utils/__init__.py"}},
		{"app/views.py", ".models", []string{"app/models.py"}},
		{"app/views.py", "..utils.helpers", []string{"utils/helpers.py"}},
		{"app/views.py", "os", nil},
		{"app/views.py", "...x", nil},
		{"main.py", "..x", nil},
		{"app/views.py", "..x", []string{"x.py"}},
		{"web/src/index.js", "./lib/api", []string{"web/src/lib/api.ts"}},
		{"web/src/index.js", "./components", []string{"web/src/components/index.jsx"}},
		{"web/src/index.js", "react", nil},
		{"web/src/index.js", "../../../../etc/passwd", nil},
		{"src/main.c", "util.h", []string{"src/util.h"}},
		{"cmd/main.go", "example.com/m/pkg/store", []string{"pkg/store/store.go"}},
		{"cmd/main.go", "fmt", nil},
		{"src/main/java/com/acme/App.java", "com.acme.Util", []string{"src/main/java/com/acme/Util.java"}},
		{"src/lib.rs", "parser", []string{"src/parser.rs"}},
	}
	for _, tc := range cases {
		got := r.Resolve(tc.from, tc.target)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Resolve(%s, %s) = %v, want %v", tc.from, tc.target, got, tc.want)
		}
	}
}

func Test_Resolve_FileSystemFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "lib"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lib", "x.js"), []byte("module.exports = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(dir, nil)
	got := r.Resolve("index.js", "./lib/x")
	if !reflect.DeepEqual(got, []string{"lib/x.js"}) {
		t.Fatalf("got %v", got)
	}
	if got := r.Resolve("index.js", "./lib"); got != nil {
		t.Fatalf("directory without index should not resolve: %v", got)
	}
}
