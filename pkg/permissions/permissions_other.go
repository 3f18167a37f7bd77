//go:build !darwin

// Package permissions 检查截屏与输入合成所需的系统权限
package permissions

// Status 权限检查结果
type Status struct {
	Accessibility   bool `json:"accessibility"`
	ScreenRecording bool `json:"screen_recording"`
}

// AllGranted 全部权限是否就绪
func (s *Status) AllGranted() bool {
	return s.Accessibility && s.ScreenRecording
}

// Check 检查所需权限
// Windows/Linux 下截屏与输入合成不需要额外授权
func Check() *Status {
	return &Status{Accessibility: true, ScreenRecording: true}
}

// RequestAccessibility 请求辅助功能权限
func RequestAccessibility() bool {
	return true
}

// OpenAccessibilitySettings 打开辅助功能设置页面
func OpenAccessibilitySettings() {}

// OpenScreenRecordingSettings 打开屏幕录制设置页面
func OpenScreenRecordingSettings() {}

// Instructions 生成缺失权限的授权指引
func Instructions(status *Status) string {
	return ""
}

// Reset 重置授权记录
func Reset() error {
	return nil
}
