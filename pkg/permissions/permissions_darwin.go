//go:build darwin

// Package permissions 检查截屏与输入合成所需的系统权限（macOS 专用）
//
// 检测循环依赖两项 TCC 权限：屏幕录制（采样帧）与辅助功能（派发点击）。
// 缺少任一权限时 robotgo 不会报错，只会静默拿到黑帧或丢弃点击，
// 所以必须在进入循环前预检。
package permissions

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework ApplicationServices -framework CoreGraphics
#include <stdlib.h>
#import <Cocoa/Cocoa.h>
#import <ApplicationServices/ApplicationServices.h>
#import <CoreGraphics/CoreGraphics.h>

int axTrusted(int prompt) {
    NSDictionary *options = @{(__bridge NSString *)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}

// 10.15 起没有官方查询接口，通过能否读到其他进程的窗口名判断
int screenCaptureAllowed() {
    if (@available(macOS 10.15, *)) {
        CFArrayRef windowList = CGWindowListCopyWindowInfo(
            kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
            kCGNullWindowID
        );

        if (windowList == NULL) {
            return 0;
        }

        CFIndex count = CFArrayGetCount(windowList);
        int hasNames = 0;

        for (CFIndex i = 0; i < count; i++) {
            CFDictionaryRef window = (CFDictionaryRef)CFArrayGetValueAtIndex(windowList, i);
            CFStringRef name = (CFStringRef)CFDictionaryGetValue(window, kCGWindowName);
            if (name != NULL && CFStringGetLength(name) > 0) {
                hasNames = 1;
                break;
            }
        }

        CFRelease(windowList);
        return (count == 0 || hasNames) ? 1 : 0;
    }
    return 1;
}

void openPrivacyPane(const char *anchor) {
    NSString *urlString = [NSString stringWithFormat:
        @"x-apple.systempreferences:com.apple.preference.security?%s", anchor];
    [[NSWorkspace sharedWorkspace] openURL:[NSURL URLWithString:urlString]];
}
*/
import "C"
import (
	"fmt"
	"os/exec"
	"unsafe"
)

const bundleID = "com.zoeyai.autoaccept"

// Status 权限检查结果
type Status struct {
	Accessibility   bool `json:"accessibility"`
	ScreenRecording bool `json:"screen_recording"`
}

// AllGranted 全部权限是否就绪
func (s *Status) AllGranted() bool {
	return s.Accessibility && s.ScreenRecording
}

// Check 检查所需权限（不触发系统弹窗）
func Check() *Status {
	return &Status{
		Accessibility:   C.axTrusted(0) == 1,
		ScreenRecording: C.screenCaptureAllowed() == 1,
	}
}

// RequestAccessibility 请求辅助功能权限（触发系统授权弹窗）
func RequestAccessibility() bool {
	return C.axTrusted(1) == 1
}

// OpenAccessibilitySettings 打开辅助功能设置页面
func OpenAccessibilitySettings() {
	openPane("Privacy_Accessibility")
}

// OpenScreenRecordingSettings 打开屏幕录制设置页面
func OpenScreenRecordingSettings() {
	openPane("Privacy_ScreenCapture")
}

func openPane(anchor string) {
	cs := C.CString(anchor)
	defer C.free(unsafe.Pointer(cs))
	C.openPrivacyPane(cs)
}

// Instructions 生成缺失权限的授权指引，全部就绪时返回空串
func Instructions(status *Status) string {
	if status.AllGranted() {
		return ""
	}

	msg := "需要授权以下权限才能监视屏幕并自动点击:\n\n"

	if !status.ScreenRecording {
		msg += "1. 屏幕录制权限 (用于截屏和按钮识别)\n"
		msg += "   系统偏好设置 > 安全性与隐私 > 隐私 > 屏幕录制\n\n"
	}

	if !status.Accessibility {
		msg += "2. 辅助功能权限 (用于派发鼠标点击)\n"
		msg += "   系统偏好设置 > 安全性与隐私 > 隐私 > 辅助功能\n\n"
	}

	msg += "授权后需要重启本程序才能生效。"

	return msg
}

// Reset 重置本程序的 TCC 授权记录，便于重新走授权流程
func Reset() error {
	if err := exec.Command("tccutil", "reset", "Accessibility", bundleID).Run(); err != nil {
		return fmt.Errorf("重置辅助功能权限失败: %w", err)
	}
	if err := exec.Command("tccutil", "reset", "ScreenCapture", bundleID).Run(); err != nil {
		return fmt.Errorf("重置屏幕录制权限失败: %w", err)
	}
	return nil
}
