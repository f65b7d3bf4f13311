package schema

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func Test_GenConfigSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := GenConfigSchema(&buf); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{`"llm"`, `"analyzer"`, `"max_core"`, `"directory_purposes"`, `"respect_gitignore"`} {
		if !strings.Contains(buf.String(), key) {
			t.Fatalf("schema missing %s", key)
		}
	}
}

func Test_GenConfigSchema_DistinctOptions(t *testing.T) {
	var buf bytes.Buffer
	if err := GenConfigSchema(&buf); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Defs map[string]struct {
			Properties map[string]struct {
				Ref string `json:"$ref"`
			} `json:"properties"`
		} `json:"$defs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	analyzer, ok := doc.Defs["ConfigsAnalyzerConfig"]
	if !ok {
		t.Fatalf("analyzer definition missing, have %d defs", len(doc.Defs))
	}
	want := map[string]string{
		"ignore":    "#/$defs/IgnoreOptions",
		"ranking":   "#/$defs/RankOptions",
		"synthesis": "#/$defs/SynthOptions",
	}
	for prop, ref := range want {
		if got := analyzer.Properties[prop].Ref; got != ref {
			t.Errorf("%s -> %q, want %q", prop, got, ref)
		}
		if _, ok := doc.Defs[strings.TrimPrefix(ref, "#/$defs/")]; !ok {
			t.Errorf("definition %s missing", ref)
		}
	}
}
