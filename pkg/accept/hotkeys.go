package accept

import (
	"fmt"
	"strings"

	hook "github.com/robotn/gohook"

	"github.com/zoeyai/autoaccept/internal/logger"
)

// HotkeyListener 全局热键监听器
// 独立于检测循环运行，按键命中时写入控制信号。
// 它是控制信号的唯一写入方。
type HotkeyListener struct {
	signal *Signal

	start []string
	stop  []string
	pause []string

	started bool
}

// NewHotkeyListener 创建热键监听器
// startKey/stopKey 必填，pauseKey 为空时不注册暂停热键。
func NewHotkeyListener(signal *Signal, startKey, stopKey, pauseKey string) (*HotkeyListener, error) {
	start, err := ParseHotkey(startKey)
	if err != nil {
		return nil, fmt.Errorf("启动热键无效: %w", err)
	}
	stop, err := ParseHotkey(stopKey)
	if err != nil {
		return nil, fmt.Errorf("停止热键无效: %w", err)
	}

	var pause []string
	if pauseKey != "" {
		pause, err = ParseHotkey(pauseKey)
		if err != nil {
			return nil, fmt.Errorf("暂停热键无效: %w", err)
		}
	}

	return &HotkeyListener{
		signal: signal,
		start:  start,
		stop:   stop,
		pause:  pause,
	}, nil
}

// ParseHotkey 解析 "ctrl+alt+-" 形式的热键描述
// gohook 的组合键约定主键在前、修饰键在后。
func ParseHotkey(s string) ([]string, error) {
	parts := strings.Split(s, "+")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			return nil, fmt.Errorf("热键描述为空或包含空段: %q", s)
		}
		keys = append(keys, p)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("热键描述为空: %q", s)
	}

	// 主键是最后一段，移到最前
	main := keys[len(keys)-1]
	combo := append([]string{main}, keys[:len(keys)-1]...)
	return combo, nil
}

// Start 注册热键并启动全局事件钩子
// 钩子事件在独立 goroutine 中处理，回调里只做信号写入。
func (h *HotkeyListener) Start() {
	if h.started {
		return
	}
	h.started = true

	hook.Register(hook.KeyDown, h.start, func(e hook.Event) {
		logger.Info("热键触发: 启动")
		h.signal.Set(Running)
	})
	hook.Register(hook.KeyDown, h.stop, func(e hook.Event) {
		logger.Info("热键触发: 停止")
		h.signal.Set(Stopped)
	})
	if len(h.pause) > 0 {
		hook.Register(hook.KeyDown, h.pause, func(e hook.Event) {
			// 暂停键在运行与暂停之间切换
			if h.signal.Load() == Paused {
				logger.Info("热键触发: 恢复")
				h.signal.Set(Running)
			} else {
				logger.Info("热键触发: 暂停")
				h.signal.Set(Paused)
			}
		})
	}

	s := hook.Start()
	go func() {
		<-hook.Process(s)
		logger.Info("热键监听已停止")
	}()
}

// Stop 停止热键监听
func (h *HotkeyListener) Stop() {
	if !h.started {
		return
	}
	h.started = false
	hook.End()
}
