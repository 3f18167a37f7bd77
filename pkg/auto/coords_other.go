//go:build !windows

package auto

import (
	"github.com/go-vgo/robotgo"
)

// NormalizePointForInput 非 Windows 平台无需缩放
func NormalizePointForInput(x, y int) (int, int) {
	return x, y
}

// NormalizeRegionForInput 非 Windows 平台无需缩放
func NormalizeRegionForInput(x, y, width, height int) (int, int, int, int) {
	return x, y, width, height
}

// GetPhysicalScreenSize 获取物理屏幕尺寸（与截图分辨率一致）
// macOS Retina 的缩放由 robotgo 自行处理
func GetPhysicalScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}

// ResetCoordinateScaleCache 非 Windows 平台无操作
func ResetCoordinateScaleCache() {}
