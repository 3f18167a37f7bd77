package screen

import (
	"fmt"

	"github.com/zoeyai/autoaccept/pkg/auto"
)

// CaptureError 截屏失败（通常是系统权限或显示环境问题，可重试）
type CaptureError struct {
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("截屏失败: %v", e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// InvalidRegionError 截屏区域越界或包含非法值
type InvalidRegionError struct {
	Region  auto.Region
	ScreenW int
	ScreenH int
	Reason  string
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("截屏区域非法 {x:%d y:%d w:%d h:%d} (屏幕 %dx%d): %s",
		e.Region.X, e.Region.Y, e.Region.Width, e.Region.Height,
		e.ScreenW, e.ScreenH, e.Reason)
}
