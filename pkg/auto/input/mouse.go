// Package input 提供鼠标指针操作
package input

import (
	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/autoaccept/pkg/auto"
)

// MoveTo 移动鼠标到指定位置（截图物理坐标）
func MoveTo(x, y int) {
	inputX, inputY := auto.NormalizePointForInput(x, y)
	robotgo.Move(inputX, inputY)
}

// Click 点击
func Click(button ...string) {
	btn := "left"
	if len(button) > 0 {
		btn = button[0]
	}
	robotgo.Click(btn, false)
}

// GetMousePosition 获取鼠标位置（robotgo 输入坐标）
func GetMousePosition() (x, y int) {
	return robotgo.Location()
}
