//go:build windows

package auto

import (
	"math"
	"sync"

	"github.com/go-vgo/robotgo"
)

// Windows 上存在两个坐标空间：
//   - 物理像素: robotgo.CaptureImg 返回的截图像素，匹配结果在此空间
//   - 输入坐标: robotgo.Move/Click 期望的坐标，随 DPI Aware 状态而变
//
// robotgo 在不同版本/环境下 GetScreenSize 可能返回物理或逻辑尺寸，
// 因此不做假设，首次使用时对比截图尺寸与 GetScreenSize 的返回值
// 自动探测 coordScale = 截图像素 / 输入坐标。

var (
	coordScaleMu sync.Mutex
	coordScaleX  float64
	coordScaleY  float64
	coordsReady  bool
)

// NormalizePointForInput 将截图物理坐标转换为 robotgo 输入坐标
func NormalizePointForInput(x, y int) (int, int) {
	sx, sy := coordinateScale()
	return ScaleInt(x, 1.0/sx), ScaleInt(y, 1.0/sy)
}

// NormalizeRegionForInput 将截图物理区域转换为 robotgo 输入区域
func NormalizeRegionForInput(x, y, width, height int) (int, int, int, int) {
	sx, sy := coordinateScale()

	nx := ScaleInt(x, 1.0/sx)
	ny := ScaleInt(y, 1.0/sy)
	nw := ScaleInt(width, 1.0/sx)
	nh := ScaleInt(height, 1.0/sy)

	if width > 0 && nw < 1 {
		nw = 1
	}
	if height > 0 && nh < 1 {
		nh = 1
	}
	return nx, ny, nw, nh
}

// GetPhysicalScreenSize 获取物理屏幕尺寸（与截图分辨率一致）
func GetPhysicalScreenSize() (width, height int) {
	w, h := robotgo.GetScreenSize()
	sx, sy := coordinateScale()
	return ScaleInt(w, sx), ScaleInt(h, sy)
}

// ResetCoordinateScaleCache 重置坐标缩放缓存（显示器配置变化后调用）
func ResetCoordinateScaleCache() {
	coordScaleMu.Lock()
	defer coordScaleMu.Unlock()
	coordScaleX = 0
	coordScaleY = 0
	coordsReady = false
}

func coordinateScale() (float64, float64) {
	coordScaleMu.Lock()
	defer coordScaleMu.Unlock()

	if coordsReady {
		return coordScaleX, coordScaleY
	}

	coordScaleX, coordScaleY = detectCoordinateScale()
	coordsReady = true
	return coordScaleX, coordScaleY
}

func detectCoordinateScale() (float64, float64) {
	reportedW, reportedH := robotgo.GetScreenSize()
	if reportedW <= 0 || reportedH <= 0 {
		return 1.0, 1.0
	}

	img, err := robotgo.CaptureImg()
	if err != nil || img == nil {
		return 1.0, 1.0
	}

	captureW := img.Bounds().Dx()
	captureH := img.Bounds().Dy()
	if captureW <= 0 || captureH <= 0 {
		return 1.0, 1.0
	}

	// 截图明显大于报告尺寸时，GetScreenSize 返回的是逻辑尺寸，
	// robotgo.Move 期望逻辑坐标，coordScale = 物理/逻辑；
	// 两者一致时同处一个空间，coordScale = 1.0。
	sx := sanitizeScale(float64(captureW) / float64(reportedW))
	sy := sanitizeScale(float64(captureH) / float64(reportedH))
	return sx, sy
}

func sanitizeScale(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1.0
	}
	if v < 0.5 || v > 4.0 {
		return 1.0
	}
	if math.Abs(v-1.0) < 0.05 {
		return 1.0
	}
	return v
}
