// Package manifest 识别仓库根目录下的依赖清单文件
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/yeisme/readmegen/pkg/content"
	"github.com/yeisme/readmegen/pkg/models"
	"github.com/yeisme/readmegen/pkg/utils/log"
	"golang.org/x/mod/modfile"
)

// TextManifests 以纯文本形式保存的清单文件
var TextManifests = []string{"requirements.txt", "Pipfile", "Gemfile"}

// pep508Name 匹配 PEP 508 依赖声明开头的包名
var pep508Name = regexp.MustCompile(`^\s*([A-Za-z0-9][A-Za-z0-9._-]*)(\[[^\]]*\])?\s*(.*)$`)

// Identifier 依赖清单识别器
type Identifier struct {
	store  *content.Store
	logger *zerolog.Logger
}

// NewIdentifier 创建识别器，logger 为空时使用全局日志记录器
func NewIdentifier(store *content.Store, logger *zerolog.Logger) *Identifier {
	if store == nil {
		store = content.NewStore(0)
	}
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Identifier{store: store, logger: logger}
}

// Identify 读取仓库根目录下的依赖清单
// 键为 "文件名" 或 "文件名:节"，结构化清单解析失败时回退为纯文本或跳过
func (id *Identifier) Identify(root string) map[string]models.Manifest {
	deps := make(map[string]models.Manifest)

	for _, name := range TextManifests {
		if text, ok := id.read(root, name); ok {
			deps[name] = models.TextManifest(text)
		}
	}

	if text, ok := id.read(root, "pyproject.toml"); ok {
		parsed, err := parsePyProject(text)
		switch {
		case err != nil:
			id.logger.Warn().Err(err).Msg("parse pyproject.toml failed, keeping raw text")
			deps["pyproject.toml"] = models.TextManifest(text)
		case len(parsed) == 0:
			deps["pyproject.toml"] = models.TextManifest(text)
		default:
			for k, v := range parsed {
				deps[k] = v
			}
		}
	}

	id.jsonSections(root, "package.json", deps, "dependencies", "devDependencies")
	id.jsonSections(root, "composer.json", deps, "require")

	if text, ok := id.read(root, "go.mod"); ok {
		versions, err := parseGoMod(text)
		if err != nil {
			id.logger.Warn().Err(err).Msg("parse go.mod failed, keeping raw text")
			deps["go.mod"] = models.TextManifest(text)
		} else {
			deps["go.mod:require"] = models.StructuredManifest(versions)
		}
	}

	if text, ok := id.read(root, "Cargo.toml"); ok {
		versions, err := parseCargo(text)
		if err != nil {
			id.logger.Warn().Err(err).Msg("parse Cargo.toml failed, keeping raw text")
			deps["Cargo.toml"] = models.TextManifest(text)
		} else {
			deps["Cargo.toml:dependencies"] = models.StructuredManifest(versions)
		}
	}

	return deps
}

// ModulePath 返回 go.mod 中声明的模块路径，不存在或无法解析时返回空
func ModulePath(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func (id *Identifier) read(root, name string) (string, bool) {
	p := filepath.Join(root, name)
	st, err := os.Stat(p)
	if err != nil || !st.Mode().IsRegular() {
		return "", false
	}
	text, err := id.store.Read(p)
	if err != nil {
		id.logger.Warn().Err(err).Str("file", name).Msg("read manifest failed")
		return "", false
	}
	return text, true
}

// jsonSections 解析 JSON 清单中的依赖节，解析失败记录日志后跳过
func (id *Identifier) jsonSections(root, name string, deps map[string]models.Manifest, sections ...string) {
	text, ok := id.read(root, name)
	if !ok {
		return
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		id.logger.Error().Err(err).Str("file", name).Msg("parse manifest failed")
		return
	}
	for _, sec := range sections {
		raw, ok := doc[sec].(map[string]any)
		if !ok {
			continue
		}
		deps[name+":"+sec] = models.StructuredManifest(stringify(raw))
	}
}

func parsePyProject(text string) (map[string]models.Manifest, error) {
	var doc struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	out := make(map[string]models.Manifest)
	if len(doc.Project.Dependencies) > 0 {
		versions := make(map[string]string, len(doc.Project.Dependencies))
		for _, spec := range doc.Project.Dependencies {
			name, version := splitRequirement(spec)
			if name != "" {
				versions[name] = version
			}
		}
		out["pyproject.toml:project.dependencies"] = models.StructuredManifest(versions)
	}
	if len(doc.Tool.Poetry.Dependencies) > 0 {
		out["pyproject.toml:tool.poetry.dependencies"] = models.StructuredManifest(stringify(doc.Tool.Poetry.Dependencies))
	}
	return out, nil
}

// splitRequirement 将 "requests[security]>=2.0; python_version>'3'" 拆成名称与版本约束
func splitRequirement(spec string) (string, string) {
	if i := strings.Index(spec, ";"); i >= 0 {
		spec = spec[:i]
	}
	m := pep508Name.FindStringSubmatch(spec)
	if m == nil {
		return "", ""
	}
	version := strings.TrimSpace(m[3])
	if version == "" {
		version = "*"
	}
	return m[1], version
}

func parseGoMod(text string) (map[string]string, error) {
	f, err := modfile.Parse("go.mod", []byte(text), nil)
	if err != nil {
		return nil, err
	}
	versions := make(map[string]string, len(f.Require))
	for _, r := range f.Require {
		versions[r.Mod.Path] = r.Mod.Version
	}
	return versions, nil
}

func parseCargo(text string) (map[string]string, error) {
	var doc struct {
		Dependencies map[string]any `toml:"dependencies"`
	}
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	return stringify(doc.Dependencies), nil
}

// stringify 把依赖值统一为版本字符串：表结构取 version 字段
func stringify(raw map[string]any) map[string]string {
	out := make(map[string]string, len(raw))
	for name, v := range raw {
		switch val := v.(type) {
		case string:
			out[name] = val
		case map[string]any:
			if ver, ok := val["version"].(string); ok {
				out[name] = ver
				continue
			}
			if p, ok := val["path"].(string); ok {
				out[name] = "path:" + p
				continue
			}
			if g, ok := val["git"].(string); ok {
				out[name] = "git:" + g
				continue
			}
			out[name] = "*"
		default:
			out[name] = fmt.Sprint(val)
		}
	}
	return out
}
