package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		if err := os.WriteFile(filepath.Join(root, rel), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newIdentifier() *Identifier {
	l := zerolog.Nop()
	return NewIdentifier(nil, &l)
}

func Test_Identify(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"requirements.txt": "flask==2.0\n# dev\n\nrequests\n",
		"package.json":     `{"name":"x","dependencies":{"react":"^18.0.0"},"devDependencies":{"jest":"29"}}`,
		"go.mod":           "module example.com/m\n\ngo 1.22\n\nrequire (\n\tgithub.com/spf13/cobra v1.9.1\n\tgolang.org/x/mod v0.27.0 // indirect\n)\n",
		"Cargo.toml":       "[package]\nname = \"x\"\n\n[dependencies]\nserde = { version = \"1.0\", features = [\"derive\"] }\nclap = \"4\"\nlocal = { path = \"../local\" }\n",
		"pyproject.toml":   "[project]\nname = \"x\"\ndependencies = [\"requests[socks]>=2.31; python_version>'3.8'\", \"click\"]\n\n[tool.poetry.dependencies]\npython = \"^3.10\"\n",
		"composer.json":    `{"require":{"php":">=8.1"}}`,
	})

	deps := newIdentifier().Identify(root)

	if m := deps["requirements.txt"]; m.IsStructured() || m.Text == "" {
		t.Fatalf("requirements.txt should be text: %+v", m)
	}
	if deps["package.json:dependencies"].Versions["react"] != "^18.0.0" || deps["package.json:devDependencies"].Versions["jest"] != "29" {
		t.Fatalf("package.json: %+v", deps)
	}
	gomod := deps["go.mod:require"].Versions
	if gomod["github.com/spf13/cobra"] != "v1.9.1" || gomod["golang.org/x/mod"] != "v0.27.0" {
		t.Fatalf("go.mod: %v", gomod)
	}
	cargo := deps["Cargo.toml:dependencies"].Versions
	if cargo["serde"] != "1.0" || cargo["clap"] != "4" || cargo["local"] != "path:../local" {
		t.Fatalf("Cargo.toml: %v", cargo)
	}
	py := deps["pyproject.toml:project.dependencies"].Versions
	if py["requests"] != ">=2.31" || py["click"] != "*" {
		t.Fatalf("pyproject project deps: %v", py)
	}
	if deps["pyproject.toml:tool.poetry.dependencies"].Versions["python"] != "^3.10" {
		t.Fatalf("poetry deps: %+v", deps)
	}
	if deps["composer.json:require"].Versions["php"] != ">=8.1" {
		t.Fatalf("composer: %+v", deps)
	}
	if ModulePath(root) != "example.com/m" {
		t.Fatalf("ModulePath = %q", ModulePath(root))
	}
}

func Test_Identify_Fallbacks(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"package.json":   "{not json",
		"pyproject.toml": "[project\nbroken",
		"Gemfile":        "gem 'rails'\n",
	})
	deps := newIdentifier().Identify(root)
	if _, ok := deps["package.json:dependencies"]; ok {
		t.Fatal("broken package.json should be skipped")
	}
	if m, ok := deps["pyproject.toml"]; !ok || m.IsStructured() {
		t.Fatalf("broken pyproject.toml should fall back to text: %+v", deps)
	}
	if deps["Gemfile"].Text != "gem 'rails'\n" {
		t.Fatalf("Gemfile: %+v", deps["Gemfile"])
	}
	if len(newIdentifier().Identify(t.TempDir())) != 0 {
		t.Fatal("empty repo should have no manifests")
	}
}
