// Package schema 生成配置文件的 JSON Schema，供编辑器补全与校验
package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/yeisme/readmegen/pkg/configs"
)

// GenConfigSchema 生成完整应用配置的 JSON Schema 并写入 out
func GenConfigSchema(out io.Writer) error {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "mapstructure",
		Namer:                      typeName,
	}
	configSchema := reflector.Reflect(configs.Config{})
	configSchema.Title = "readmegen configuration"
	schemaJSON, err := json.MarshalIndent(configSchema, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(schemaJSON))
	return err
}

// typeName 以包名作为定义名前缀，不同包中的同名类型（如 rank.Options 与 synth.Options）不会互相覆盖
func typeName(t reflect.Type) string {
	if t.Name() == "" || t.PkgPath() == "" {
		return ""
	}
	pkg := path.Base(t.PkgPath())
	return strings.ToUpper(pkg[:1]) + pkg[1:] + t.Name()
}
