// Package auto 提供屏幕自动化的共享类型和坐标工具。
// 截图和输入功能分布在子包中：screen, input。
package auto

import "math"

// Point 表示二维坐标点
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Region 表示屏幕上的矩形区域
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Right 区域右边界
func (r Region) Right() int {
	return r.X + r.Width
}

// Bottom 区域下边界
func (r Region) Bottom() int {
	return r.Y + r.Height
}

// ScaleInt 按比例缩放整数值
func ScaleInt(value int, factor float64) int {
	if factor <= 0 {
		return value
	}
	return int(math.Round(float64(value) * factor))
}

// ScaleCoord 按比例反向缩放坐标值
func ScaleCoord(value int, scale float64) int {
	if scale <= 0 {
		return value
	}
	return int(math.Round(float64(value) / scale))
}
