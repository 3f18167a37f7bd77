package cv

import (
	"errors"
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// DefaultThreshold 默认匹配阈值
const DefaultThreshold = 0.8

// DefaultScales 默认多尺度候选
// 覆盖常见的 DPI 缩放和分辨率差异（80% ~ 120%）
var DefaultScales = []float64{0.8, 0.9, 1.0, 1.1, 1.2}

// Template 已加载的参考模板
// 加载后不可变，进程全程复用同一份像素数据。
type Template struct {
	// Filename 模板文件路径
	Filename string
	// Threshold 匹配阈值 (0-1)
	Threshold float64
	// Scales 匹配时尝试的模板缩放候选，空表示仅原始尺寸
	Scales []float64
	// RGB 是否启用 RGB 三通道置信度校验
	RGB bool

	mat gocv.Mat
}

// TemplateOption 模板选项
type TemplateOption func(*Template)

// WithScales 设置多尺度候选
func WithScales(scales ...float64) TemplateOption {
	return func(t *Template) {
		t.Scales = scales
	}
}

// WithRGB 启用 RGB 三通道置信度校验
func WithRGB() TemplateOption {
	return func(t *Template) {
		t.RGB = true
	}
}

// LoadTemplate 从文件加载模板
// 文件不存在、无法解码或图像面积为零时返回 *TemplateLoadError，
// 阈值超出 [0,1] 时返回 *InvalidThresholdError。
func LoadTemplate(path string, threshold float64, opts ...TemplateOption) (*Template, error) {
	if threshold < 0 || threshold > 1 {
		return nil, &InvalidThresholdError{Threshold: threshold}
	}

	if _, err := os.Stat(path); err != nil {
		return nil, &TemplateLoadError{Path: path, Err: err}
	}

	mat, err := ReadImage(path)
	if err != nil {
		return nil, &TemplateLoadError{Path: path, Err: err}
	}
	if w, h := GetResolution(mat); w == 0 || h == 0 {
		mat.Close()
		return nil, &TemplateLoadError{Path: path, Err: errors.New("图像面积为零")}
	}

	t := &Template{
		Filename:  path,
		Threshold: threshold,
		mat:       mat,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Width 模板宽度
func (t *Template) Width() int {
	return t.mat.Cols()
}

// Height 模板高度
func (t *Template) Height() int {
	return t.mat.Rows()
}

// MatchIn 在源图像中匹配模板
// 遍历所有缩放候选，返回置信度最高的结果（Found 标记是否达到阈值）。
// 原始尺寸的模板大于源图像时返回 *TemplateSizeError；
// 放大后超出源图像的候选会被跳过。
func (t *Template) MatchIn(source gocv.Mat) (*MatchResult, error) {
	if err := checkSourceLargerThanSearch(source, t.mat); err != nil {
		return nil, err
	}

	scales := t.Scales
	if len(scales) == 0 {
		scales = []float64{1.0}
	}

	var best *MatchResult
	for _, scale := range scales {
		scaled, cleanup := t.scaledMat(scale)

		if scaled.Cols() > source.Cols() || scaled.Rows() > source.Rows() {
			if cleanup != nil {
				cleanup()
			}
			continue
		}

		m := NewTemplateMatching(scaled, source, t.Threshold, t.RGB)
		result, err := m.FindBestResult()
		if cleanup != nil {
			cleanup()
		}
		if err != nil {
			return nil, err
		}

		result.Scale = scale
		if best == nil || result.Confidence > best.Confidence {
			best = result
		}
	}

	if best == nil {
		// 所有缩放候选都被跳过，理论上不会发生（1.0 已在入口校验）
		return nil, &TemplateSizeError{
			SourceSize: [2]int{source.Cols(), source.Rows()},
			SearchSize: [2]int{t.mat.Cols(), t.mat.Rows()},
		}
	}
	return best, nil
}

// scaledMat 返回按比例缩放后的模板
func (t *Template) scaledMat(scale float64) (gocv.Mat, func()) {
	if scale <= 0 || scale == 1.0 {
		return t.mat, nil
	}
	newW := max(1, int(float64(t.mat.Cols())*scale))
	newH := max(1, int(float64(t.mat.Rows())*scale))
	scaled := ResizeImage(t.mat, newW, newH)
	return scaled, func() { scaled.Close() }
}

// Close 释放模板资源
func (t *Template) Close() {
	if !t.mat.Empty() {
		t.mat.Close()
	}
}

// String 返回字符串表示
func (t *Template) String() string {
	return fmt.Sprintf("Template(%s, threshold=%.2f)", t.Filename, t.Threshold)
}
