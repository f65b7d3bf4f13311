package style

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/yeisme/readmegen/pkg/models"
)

func Test_splitKey(t *testing.T) {
	cases := []struct {
		body, syntax, key, value string
	}{
		{`"name": "shop",`, SyntaxJSON, `"name"`, ` "shop",`},
		{`"a\"b": 1`, SyntaxJSON, `"a\"b"`, " 1"},
		{`"plain string"`, SyntaxJSON, "", `"plain string"`},
		{"level: info", SyntaxYAML, "level", " info"},
		{"ranking:", SyntaxYAML, "ranking", ""},
		{"'quoted: no'", SyntaxYAML, "", "'quoted: no'"},
		{"max_core = 25", SyntaxTOML, "max_core", "25"},
		{`["a = b"]`, SyntaxTOML, "", `["a = b"]`},
	}
	for _, tc := range cases {
		key, _, value := splitKey(tc.body, tc.syntax)
		if key != tc.key || value != tc.value {
			t.Errorf("splitKey(%q, %s) = %q, %q", tc.body, tc.syntax, key, value)
		}
	}
}

func Test_Highlight_PlainWriter(t *testing.T) {
	re := lipgloss.NewRenderer(&bytes.Buffer{})
	text := "app:\n  name: readmegen\n  debug: false\n# comment\n- 1.5\n"
	if got := Highlight(re, text, SyntaxYAML); got != text {
		t.Fatalf("non-terminal output should stay plain:\n%q", got)
	}
}

func Test_PrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, map[string]any{"core": []string{"main.py"}}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\n  \"core\": [\n    \"main.py\"\n  ]\n}\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func Test_Truncate(t *testing.T) {
	if got := Truncate("services/billing.py", 10); got != "services/…" {
		t.Fatalf("Truncate: %q", got)
	}
	if got := TruncateLeft("services/billing.py", 10); got != "…lling.py" && got != "…illing.py" {
		t.Fatalf("TruncateLeft: %q", got)
	}
	if got := TruncateLeft("main.py", 10); got != "main.py" {
		t.Fatalf("short input changed: %q", got)
	}
}

func Test_PrintTree(t *testing.T) {
	root := models.TreeNode{Name: "shop", Type: models.NodeDirectory, Children: []models.TreeNode{
		{Name: "main.py", Type: models.NodeFile},
		{Name: "utils", Type: models.NodeDirectory, Children: []models.TreeNode{
			{Name: "helpers.py", Type: models.NodeFile},
		}},
	}}
	var buf bytes.Buffer
	if err := PrintTree(&buf, root, TreeOptions{Highlight: map[string]bool{"utils/helpers.py": true}}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"shop/", "main.py", "utils/", "helpers.py ★"} {
		if !strings.Contains(out, want) {
			t.Fatalf("tree missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := PrintTree(&buf, root, TreeOptions{MaxDepth: 1}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "… 1 files") || strings.Contains(buf.String(), "helpers.py") {
		t.Fatalf("collapsed tree:\n%s", buf.String())
	}
}
