package cv

import "fmt"

// TemplateLoadError 模板加载错误（文件不存在、无法解码或图像为空）
type TemplateLoadError struct {
	Path string
	Err  error
}

func (e *TemplateLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("加载模板失败: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("加载模板失败: %s", e.Path)
}

func (e *TemplateLoadError) Unwrap() error {
	return e.Err
}

// InvalidThresholdError 匹配阈值超出 [0,1] 范围
type InvalidThresholdError struct {
	Threshold float64
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("匹配阈值必须在 [0,1] 范围内: %g", e.Threshold)
}

// TemplateSizeError 模板尺寸大于源图像
type TemplateSizeError struct {
	SourceSize [2]int
	SearchSize [2]int
}

func (e *TemplateSizeError) Error() string {
	return fmt.Sprintf("模板尺寸 %dx%d 大于源图像 %dx%d",
		e.SearchSize[0], e.SearchSize[1], e.SourceSize[0], e.SourceSize[1])
}
