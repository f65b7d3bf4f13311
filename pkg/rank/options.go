// Package rank 按架构重要性为仓库文件打分并挑选核心文件
package rank

// Weights 各评分因子的权重
type Weights struct {
	SizePerKB  float64 `mapstructure:"size_per_kb" jsonschema:"title=SizePerKB,description=每 KB 的大小得分,default=0.5"`
	SizeCap    float64 `mapstructure:"size_cap" jsonschema:"title=SizeCap,description=大小得分上限,default=10"`
	Depth      float64 `mapstructure:"depth" jsonschema:"title=Depth,description=每层路径深度扣除的分数,default=1"`
	Imports    float64 `mapstructure:"imports" jsonschema:"title=Imports,description=每次被引用的得分,default=3"`
	Comment    float64 `mapstructure:"comment" jsonschema:"title=Comment,description=注释密度的乘数,default=1.5"`
	EntryPoint float64 `mapstructure:"entry_point" jsonschema:"title=EntryPoint,description=入口文件加分,default=10"`
}

// Options 排序器配置，所有启发式表都可以通过配置文件修改
type Options struct {
	Weights Weights `mapstructure:"weights" jsonschema:"title=Weights,description=评分权重"`

	EntryStems   []string `mapstructure:"entry_stems" jsonschema:"title=EntryStems,description=视为入口文件的文件名（不含扩展名）"`
	EntryMarkers []string `mapstructure:"entry_markers" jsonschema:"title=EntryMarkers,description=出现在内容中即视为入口文件的标记"`

	GeneratedGlobs     []string `mapstructure:"generated_globs" jsonschema:"title=GeneratedGlobs,description=生成文件的文件名模式"`
	GeneratedMarkers   []string `mapstructure:"generated_markers" jsonschema:"title=GeneratedMarkers,description=文件头部出现即视为生成文件的标记（不区分大小写）"`
	GeneratedScanLines int      `mapstructure:"generated_scan_lines" jsonschema:"title=GeneratedScanLines,description=检查生成标记的行数,default=5"`

	MinCore     int `mapstructure:"min_core" jsonschema:"title=MinCore,description=核心文件数量下限,default=5"`
	MaxCore     int `mapstructure:"max_core" jsonschema:"title=MaxCore,description=核心文件数量上限,default=25"`
	CoreDivisor int `mapstructure:"core_divisor" jsonschema:"title=CoreDivisor,description=可选文件数除以该值得到核心文件数量,default=10"`
}

// DefaultWeights 默认权重
func DefaultWeights() Weights {
	return Weights{
		SizePerKB:  0.5,
		SizeCap:    10,
		Depth:      1,
		Imports:    3,
		Comment:    1.5,
		EntryPoint: 10,
	}
}

// DefaultOptions 默认排序配置
func DefaultOptions() Options {
	return Options{
		Weights:    DefaultWeights(),
		EntryStems: []string{"main", "index", "app", "server", "cli"},
		EntryMarkers: []string{
			`if __name__ == "__main__"`,
			`if __name__ == '__main__'`,
			"module.exports",
			"export default",
			"func main()",
			"public static void main",
			"fn main()",
			"int main(",
			"require.main === module",
		},
		GeneratedGlobs: []string{"*.min.*", "*.generated.*", "*.d.*"},
		GeneratedMarkers: []string{
			"Generated by",
			"Auto-generated",
			"DO NOT EDIT",
			"This file is generated",
			"@generated",
		},
		GeneratedScanLines: 5,
		MinCore:            5,
		MaxCore:            25,
		CoreDivisor:        10,
	}
}

// normalize 用默认值填充未设置的字段
func (o Options) normalize() Options {
	def := DefaultOptions()
	if o.Weights == (Weights{}) {
		o.Weights = def.Weights
	}
	if o.EntryStems == nil {
		o.EntryStems = def.EntryStems
	}
	if o.EntryMarkers == nil {
		o.EntryMarkers = def.EntryMarkers
	}
	if o.GeneratedGlobs == nil {
		o.GeneratedGlobs = def.GeneratedGlobs
	}
	if o.GeneratedMarkers == nil {
		o.GeneratedMarkers = def.GeneratedMarkers
	}
	if o.GeneratedScanLines <= 0 {
		o.GeneratedScanLines = def.GeneratedScanLines
	}
	if o.MinCore <= 0 {
		o.MinCore = def.MinCore
	}
	if o.MaxCore <= 0 {
		o.MaxCore = def.MaxCore
	}
	if o.MaxCore < o.MinCore {
		o.MaxCore = o.MinCore
	}
	if o.CoreDivisor <= 0 {
		o.CoreDivisor = def.CoreDivisor
	}
	return o
}
