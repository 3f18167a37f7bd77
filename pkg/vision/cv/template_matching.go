package cv

import (
	"image"
	"time"

	"gocv.io/x/gocv"
)

// TemplateMatching 模板匹配器
// 使用归一化互相关 (TM_CCOEFF_NORMED) 在源图像中定位模板。
// 对字节一致的输入，结果是确定的；多个并列最大值时
// MinMaxLoc 返回栅格扫描顺序中的第一个。
type TemplateMatching struct {
	imSearch  gocv.Mat
	imSource  gocv.Mat
	threshold float64
	rgb       bool
}

// NewTemplateMatching 创建模板匹配器
func NewTemplateMatching(search, source gocv.Mat, threshold float64, rgb bool) *TemplateMatching {
	return &TemplateMatching{
		imSearch:  search,
		imSource:  source,
		threshold: threshold,
		rgb:       rgb,
	}
}

// FindBestResult 查找最佳匹配结果
// 无论置信度是否达到阈值都返回最佳位置，由 Found 字段标记判定结果。
// 模板尺寸大于源图像时返回 *TemplateSizeError。
func (t *TemplateMatching) FindBestResult() (*MatchResult, error) {
	startTime := time.Now()

	if err := checkSourceLargerThanSearch(t.imSource, t.imSearch); err != nil {
		return nil, err
	}

	result := t.getTemplateResultMatrix()
	defer result.Close()

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

	h, w := t.imSearch.Rows(), t.imSearch.Cols()

	confidence := t.getConfidence(maxLoc, maxVal, w, h)
	middlePoint, rectangle := t.getTargetRectangle(maxLoc, w, h)

	elapsed := float64(time.Since(startTime).Milliseconds())

	return &MatchResult{
		Result:     middlePoint,
		Rectangle:  rectangle,
		Confidence: confidence,
		Found:      confidence >= t.threshold,
		Scale:      1.0,
		Time:       elapsed,
	}, nil
}

// getTemplateResultMatrix 计算模板匹配结果矩阵
func (t *TemplateMatching) getTemplateResultMatrix() gocv.Mat {
	// 转换为灰度图
	srcGray := ToGray(t.imSource)
	searchGray := ToGray(t.imSearch)
	defer srcGray.Close()
	defer searchGray.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	result := gocv.NewMat()
	gocv.MatchTemplate(srcGray, searchGray, &result, gocv.TmCcoeffNormed, mask)

	return result
}

// getConfidence 计算置信度
func (t *TemplateMatching) getConfidence(maxLoc image.Point, maxVal float32, w, h int) float64 {
	if t.rgb {
		// RGB 三通道校验
		imgCrop := t.imSource.Region(image.Rect(maxLoc.X, maxLoc.Y, maxLoc.X+w, maxLoc.Y+h))
		defer imgCrop.Close()
		return CalRGBConfidence(imgCrop, t.imSearch)
	}
	return clampConfidence(float64(maxVal))
}

// getTargetRectangle 计算目标区域
func (t *TemplateMatching) getTargetRectangle(leftTopPos image.Point, w, h int) (Point, Rectangle) {
	xMin, yMin := leftTopPos.X, leftTopPos.Y

	rectangle := NewRectangle(xMin, yMin, w, h)
	return rectangle.Center(), rectangle
}

// clampConfidence 将置信度限制在 [0,1]
// TM_CCOEFF_NORMED 理论范围是 [-1,1]，负相关对本场景无意义
func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// checkSourceLargerThanSearch 检查源图像是否不小于模板
func checkSourceLargerThanSearch(source, search gocv.Mat) error {
	srcW, srcH := GetResolution(source)
	searchW, searchH := GetResolution(search)
	if srcH < searchH || srcW < searchW {
		return &TemplateSizeError{
			SourceSize: [2]int{srcW, srcH},
			SearchSize: [2]int{searchW, searchH},
		}
	}
	return nil
}
