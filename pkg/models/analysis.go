package models

import (
	"encoding/json"
	"fmt"
)

// ResultKind 单文件分析结果的变体类型
type ResultKind string

const (
	// ResultStructured 外部服务返回了可解析的结构化结果
	ResultStructured ResultKind = "structured"
	// ResultRaw 返回文本无法解析，原样保存
	ResultRaw ResultKind = "raw"
	// ResultFailed 调用外部服务失败
	ResultFailed ResultKind = "failed"
)

// StructuredAnalysis 结构化的单文件分析字段
type StructuredAnalysis struct {
	Purpose       string `json:"purpose" yaml:"purpose"`
	Components    string `json:"components,omitempty" yaml:"components,omitempty"`
	Dependencies  string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Logic         string `json:"logic,omitempty" yaml:"logic,omitempty"`
	Configuration string `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Quality       string `json:"quality,omitempty" yaml:"quality,omitempty"`
}

// AnalysisResult 单文件分析结果，是 Structured | Raw | Failed 三者之一
// 通过 NewStructured / NewRaw / NewFailed 构造
type AnalysisResult struct {
	kind       ResultKind
	structured StructuredAnalysis
	text       string
}

// NewStructured 构造结构化结果
func NewStructured(s StructuredAnalysis) AnalysisResult {
	return AnalysisResult{kind: ResultStructured, structured: s}
}

// NewRaw 构造原始文本结果，文本保持原样
func NewRaw(text string) AnalysisResult {
	return AnalysisResult{kind: ResultRaw, text: text}
}

// NewFailed 构造失败结果
func NewFailed(message string) AnalysisResult {
	return AnalysisResult{kind: ResultFailed, text: message}
}

// Kind 返回变体类型
func (r AnalysisResult) Kind() ResultKind { return r.kind }

// Structured 返回结构化字段，非结构化结果返回 false
func (r AnalysisResult) Structured() (StructuredAnalysis, bool) {
	return r.structured, r.kind == ResultStructured
}

// Text 返回 Raw 的原始文本或 Failed 的错误信息
func (r AnalysisResult) Text() string { return r.text }

// Purpose 返回文件用途描述，失败结果为空
func (r AnalysisResult) Purpose() string {
	switch r.kind {
	case ResultStructured:
		return r.structured.Purpose
	case ResultRaw:
		return r.text
	default:
		return ""
	}
}

// MarshalJSON 编码时带上 kind 字段：Structured 编码为完整字段，
// Raw 编码为 {"kind": "raw", "purpose": text}，Failed 编码为 {"kind": "failed", "error": message}
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case ResultStructured:
		return json.Marshal(struct {
			Kind ResultKind `json:"kind"`
			StructuredAnalysis
		}{r.kind, r.structured})
	case ResultRaw:
		return json.Marshal(map[string]string{"kind": string(r.kind), "purpose": r.text})
	case ResultFailed:
		return json.Marshal(map[string]string{"kind": string(r.kind), "error": r.text})
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON 按 kind 字段还原变体，缺少 kind 时按字段推断
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode analysis result: %w", err)
	}
	kind, hasKind := fields["kind"]
	delete(fields, "kind")
	if !hasKind {
		switch {
		case len(fields) == 1 && hasKey(fields, "error"):
			kind = string(ResultFailed)
		case len(fields) == 1 && hasKey(fields, "purpose"):
			kind = string(ResultRaw)
		default:
			kind = string(ResultStructured)
		}
	}

	switch ResultKind(kind) {
	case ResultFailed:
		*r = NewFailed(fields["error"])
	case ResultRaw:
		*r = NewRaw(fields["purpose"])
	case ResultStructured:
		var s StructuredAnalysis
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode analysis result: %w", err)
		}
		*r = NewStructured(s)
	default:
		return fmt.Errorf("decode analysis result: unknown kind %q", kind)
	}
	return nil
}

func hasKey(m map[string]string, k string) bool {
	_, ok := m[k]
	return ok
}

// FileAnalysis 单个核心文件的分析输出
type FileAnalysis struct {
	Language string         `json:"language" yaml:"language"`
	Result   AnalysisResult `json:"analysis" yaml:"analysis"`
	Size     int64          `json:"size" yaml:"size"`
	IsCore   bool           `json:"is_core" yaml:"is_core"`
}

// Manifest 依赖清单：结构化的 名称->版本 映射，或纯文本内容
type Manifest struct {
	Versions map[string]string
	Text     string
}

// TextManifest 构造纯文本清单
func TextManifest(text string) Manifest { return Manifest{Text: text} }

// StructuredManifest 构造结构化清单
func StructuredManifest(versions map[string]string) Manifest {
	if versions == nil {
		versions = map[string]string{}
	}
	return Manifest{Versions: versions}
}

// IsStructured 是否为结构化清单
func (m Manifest) IsStructured() bool { return m.Versions != nil }

// MarshalJSON 结构化清单编码为对象，纯文本清单编码为字符串
func (m Manifest) MarshalJSON() ([]byte, error) {
	if m.IsStructured() {
		return json.Marshal(m.Versions)
	}
	return json.Marshal(m.Text)
}

// DependencyList 归一化后的关键依赖：名称->版本映射或逐行列表
type DependencyList struct {
	Versions map[string]string
	Lines    []string
}

// Len 依赖条目数量
func (d DependencyList) Len() int {
	if d.Versions != nil {
		return len(d.Versions)
	}
	return len(d.Lines)
}

// MarshalJSON 映射编码为对象，列表编码为数组
func (d DependencyList) MarshalJSON() ([]byte, error) {
	if d.Versions != nil {
		return json.Marshal(d.Versions)
	}
	if d.Lines == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Lines)
}

// AnalysisReport 引擎的完整输出，交给汇总阶段后只读
type AnalysisReport struct {
	RepoName       string                  `json:"repo_name"`
	Structure      TreeNode                `json:"structure"`
	Files          []string                `json:"files"`
	Dependencies   map[string]Manifest     `json:"dependencies"`
	Languages      []string                `json:"languages"`
	KeyFiles       map[string]string       `json:"key_files"`
	ExistingReadme string                  `json:"existing_readme,omitempty"`
	CoreFiles      []string                `json:"core_files"`
	FileAnalyses   map[string]FileAnalysis `json:"files_analysis"`
}

// GroupMember 目录分组中的一个核心文件
type GroupMember struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Language string `json:"language"`
	Purpose  string `json:"purpose"`
}

// DirectoryGroup 同一父目录下的核心文件及推断出的目录用途
type DirectoryGroup struct {
	Directory string        `json:"directory"`
	Purpose   string        `json:"purpose"`
	Files     []GroupMember `json:"files"`
}

// SynthesizedView 在 AnalysisReport 基础上增加汇总信息，交给文档生成
type SynthesizedView struct {
	AnalysisReport

	ArchitectureSummary  string                    `json:"architecture_summary"`
	ProjectType          string                    `json:"project_type"`
	KeyDependencies      map[string]DependencyList `json:"key_dependencies"`
	CoreFilesByDirectory []DirectoryGroup          `json:"core_files_by_directory"`
}

// Generic 通过 JSON 往返将任意值转换为 map/slice 等通用结构
// 用于 YAML/TOML 输出时保持与 JSON 一致的字段名
func Generic(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
