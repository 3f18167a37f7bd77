package accept

import (
	"fmt"
	"time"

	"github.com/zoeyai/autoaccept/internal/logger"
)

// EventType 遥测事件类型
type EventType string

const (
	// EventMatchAttempt 本周期开始一次采样匹配
	EventMatchAttempt EventType = "match_attempt"
	// EventMatchFound 匹配命中
	EventMatchFound EventType = "match_found"
	// EventClickDispatched 已派发点击
	EventClickDispatched EventType = "click_dispatched"
	// EventError 周期内发生错误
	EventError EventType = "error"
	// EventStateChange 循环状态变化
	EventStateChange EventType = "state_change"
)

// Event 遥测事件
type Event struct {
	Type       EventType
	Timestamp  time.Time
	SessionID  string
	Confidence float64
	X, Y       int
	ErrorKind  string
	Detail     string
}

// EventSink 遥测事件接收方
// 循环只负责产出事件，格式化与持久化由外部实现。
type EventSink interface {
	Record(e Event)
}

// NopSink 丢弃所有事件
type NopSink struct{}

// Record 实现 EventSink
func (NopSink) Record(Event) {}

// LogSink 把事件写入日志的 EventSink 实现
type LogSink struct {
	Logger *logger.Logger
}

// NewLogSink 创建日志事件接收器
func NewLogSink(l *logger.Logger) *LogSink {
	return &LogSink{Logger: l}
}

// Record 实现 EventSink
func (s *LogSink) Record(e Event) {
	fields := fmt.Sprintf("session=%s", e.SessionID)

	switch e.Type {
	case EventMatchFound, EventClickDispatched:
		fields += fmt.Sprintf(" confidence=%.4f pos=(%d,%d)", e.Confidence, e.X, e.Y)
	case EventMatchAttempt:
		// 仅会话标识
	case EventError:
		fields += fmt.Sprintf(" kind=%s", e.ErrorKind)
	}
	if e.Detail != "" {
		fields += " " + e.Detail
	}

	s.Logger.LogEvent(string(e.Type), e.Type != EventError, fields)
}
