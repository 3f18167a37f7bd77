package accept

import (
	"errors"

	"github.com/zoeyai/autoaccept/pkg/auto/input"
	"github.com/zoeyai/autoaccept/pkg/auto/screen"
	"github.com/zoeyai/autoaccept/pkg/config"
	"github.com/zoeyai/autoaccept/pkg/vision/cv"
)

// 错误分类：
//   - 致命错误（配置/资源/逻辑）在启动时或出错周期终止循环，原样上抛
//   - 瞬时错误（截屏/点击被系统拒绝）计入连续失败并触发退避

// IsTransient 判断是否为可重试的瞬时错误
func IsTransient(err error) bool {
	var captureErr *screen.CaptureError
	var dispatchErr *input.DispatchError
	return errors.As(err, &captureErr) || errors.As(err, &dispatchErr)
}

// IsFatal 判断是否为致命错误
// 未知错误按致命处理，避免在错误状态下无限重试。
func IsFatal(err error) bool {
	return err != nil && !IsTransient(err)
}

// ErrorKind 返回错误的分类标识，用于遥测事件的 error_kind 字段
func ErrorKind(err error) string {
	var (
		loadErr     *cv.TemplateLoadError
		thresErr    *cv.InvalidThresholdError
		sizeErr     *cv.TemplateSizeError
		regionErr   *screen.InvalidRegionError
		captureErr  *screen.CaptureError
		dispatchErr *input.DispatchError
		configErr   *config.ValidationError
	)

	switch {
	case errors.As(err, &loadErr):
		return "template_load"
	case errors.As(err, &thresErr):
		return "invalid_threshold"
	case errors.As(err, &sizeErr):
		return "template_size"
	case errors.As(err, &regionErr):
		return "invalid_region"
	case errors.As(err, &captureErr):
		return "capture"
	case errors.As(err, &dispatchErr):
		return "dispatch"
	case errors.As(err, &configErr):
		return "config"
	default:
		return "unknown"
	}
}
