// Package screen 提供屏幕截图功能
package screen

import (
	"image"

	"github.com/go-vgo/robotgo"
	"gocv.io/x/gocv"

	"github.com/zoeyai/autoaccept/pkg/auto"
	"github.com/zoeyai/autoaccept/pkg/vision/cv"
)

// CaptureMeta 截图元信息（缩放和偏移量）
// 偏移量用于把帧内坐标换算回屏幕绝对坐标。
type CaptureMeta struct {
	ScaleX  float64
	ScaleY  float64
	OffsetX int
	OffsetY int
}

// CaptureScreen 截取全屏
func CaptureScreen() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, &CaptureError{Err: err}
	}
	return img, nil
}

// CaptureRegion 截取屏幕区域
// 区域先按显示器尺寸校验，越界时返回 *InvalidRegionError。
func CaptureRegion(region auto.Region) (image.Image, error) {
	if err := ValidateRegion(&region); err != nil {
		return nil, err
	}

	inputX, inputY, inputW, inputH := auto.NormalizeRegionForInput(region.X, region.Y, region.Width, region.Height)
	img, err := robotgo.CaptureImg(inputX, inputY, inputW, inputH)
	if err != nil {
		return nil, &CaptureError{Err: err}
	}
	return img, nil
}

// CaptureForMatch 截图用于匹配，返回 gocv.Mat 和元信息
// region 为 nil 时截取全屏。截图失败不做内部重试，由调用方决定。
func CaptureForMatch(region *auto.Region) (gocv.Mat, CaptureMeta, error) {
	var img image.Image
	var err error

	if region != nil {
		img, err = CaptureRegion(*region)
	} else {
		img, err = CaptureScreen()
	}
	if err != nil {
		return gocv.Mat{}, CaptureMeta{}, err
	}

	mat, err := cv.ImageToMat(img)
	if err != nil {
		return gocv.Mat{}, CaptureMeta{}, &CaptureError{Err: err}
	}

	return mat, buildCaptureMeta(region, img), nil
}

// ValidateRegion 校验区域是否落在显示器范围内
func ValidateRegion(region *auto.Region) error {
	if region == nil {
		return nil
	}
	screenW, screenH := GetScreenSize()
	return ValidateRegionBounds(region, screenW, screenH)
}

// ValidateRegionBounds 按给定屏幕尺寸校验区域
func ValidateRegionBounds(region *auto.Region, screenW, screenH int) error {
	if region == nil {
		return nil
	}

	reason := ""
	switch {
	case region.X < 0 || region.Y < 0:
		reason = "坐标不能为负"
	case region.Width <= 0 || region.Height <= 0:
		reason = "宽高必须为正"
	case screenW > 0 && region.Right() > screenW,
		screenH > 0 && region.Bottom() > screenH:
		reason = "区域超出屏幕范围"
	}

	if reason != "" {
		return &InvalidRegionError{
			Region:  *region,
			ScreenW: screenW,
			ScreenH: screenH,
			Reason:  reason,
		}
	}
	return nil
}

// buildCaptureMeta 构建截图元信息
// 截图分辨率与期望尺寸不一致时（Retina/DPI 缩放）记录缩放比。
func buildCaptureMeta(region *auto.Region, img image.Image) CaptureMeta {
	bounds := img.Bounds()
	imgW := bounds.Dx()
	imgH := bounds.Dy()

	expectedW, expectedH := GetScreenSize()
	offsetX, offsetY := 0, 0
	if region != nil {
		expectedW = region.Width
		expectedH = region.Height
		offsetX = region.X
		offsetY = region.Y
	}

	scaleX := 1.0
	if expectedW > 0 && imgW > 0 {
		scaleX = float64(imgW) / float64(expectedW)
	}
	scaleY := 1.0
	if expectedH > 0 && imgH > 0 {
		scaleY = float64(imgH) / float64(expectedH)
	}

	return CaptureMeta{
		ScaleX:  scaleX,
		ScaleY:  scaleY,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

// AdjustMatchResult 把帧内匹配结果换算为屏幕绝对坐标（反向缩放 + 偏移）
func AdjustMatchResult(result *cv.MatchResult, meta CaptureMeta) *cv.MatchResult {
	if result == nil {
		return nil
	}

	adjusted := *result
	adjusted.Result = adjustPoint(result.Result, meta)
	adjusted.Rectangle = cv.Rectangle{
		TopLeft:     adjustPoint(result.Rectangle.TopLeft, meta),
		BottomLeft:  adjustPoint(result.Rectangle.BottomLeft, meta),
		BottomRight: adjustPoint(result.Rectangle.BottomRight, meta),
		TopRight:    adjustPoint(result.Rectangle.TopRight, meta),
	}
	return &adjusted
}

func adjustPoint(p cv.Point, meta CaptureMeta) cv.Point {
	return cv.Point{
		X: auto.ScaleCoord(p.X, meta.ScaleX) + meta.OffsetX,
		Y: auto.ScaleCoord(p.Y, meta.ScaleY) + meta.OffsetY,
	}
}

// GetScreenSize 获取屏幕尺寸（物理像素，与截图分辨率一致）
func GetScreenSize() (width, height int) {
	return auto.GetPhysicalScreenSize()
}

// GetDisplayCount 获取显示器数量
func GetDisplayCount() int {
	return robotgo.DisplaysNum()
}
