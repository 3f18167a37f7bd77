package input

import (
	"fmt"
	"time"

	"github.com/zoeyai/autoaccept/pkg/auto"
)

// DispatchError 合成输入事件被系统拒绝
// macOS 上缺少辅助功能授权时鼠标指令会被静默丢弃，
// 通过回读指针位置来检测这种情况。
type DispatchError struct {
	X, Y int
	Err  error
}

func (e *DispatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("合成点击被拒绝 (%d, %d): %v", e.X, e.Y, e.Err)
	}
	return fmt.Sprintf("合成点击被拒绝 (%d, %d)", e.X, e.Y)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// moveTolerance 指针落点允许的偏差（像素，robotgo 输入坐标）
const moveTolerance = 3

// ClickAt 在指定屏幕位置点击（截图物理坐标）
// 先移动指针再点击；移动后指针未落到目标附近说明输入被系统拒绝，
// 返回 *DispatchError。
func ClickAt(x, y int) error {
	MoveTo(x, y)
	time.Sleep(50 * time.Millisecond) // 等待指针到位

	inputX, inputY := auto.NormalizePointForInput(x, y)
	curX, curY := GetMousePosition()
	if !pointerArrived(inputX, inputY, curX, curY) {
		return &DispatchError{X: x, Y: y}
	}

	Click("left")
	return nil
}

// pointerArrived 判断指针是否落在目标容差范围内
func pointerArrived(wantX, wantY, gotX, gotY int) bool {
	return absInt(gotX-wantX) <= moveTolerance && absInt(gotY-wantY) <= moveTolerance
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
