package accept

import "sync/atomic"

// State 控制信号状态
type State int32

const (
	// Stopped 停止（初始状态）
	Stopped State = iota
	// Running 运行中
	Running
	// Paused 暂停（保留失败计数，不采样）
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Signal 进程级控制信号
// 热键监听线程写入，检测循环每个周期读取。
// 写读两侧只通过原子操作访问，多次快速按键以最后一次写入为准。
type Signal struct {
	v atomic.Int32
}

// NewSignal 创建控制信号，初始状态为 Stopped
func NewSignal() *Signal {
	return &Signal{}
}

// Set 写入状态（仅热键监听方调用）
func (s *Signal) Set(state State) {
	s.v.Store(int32(state))
}

// Load 读取当前状态
func (s *Signal) Load() State {
	return State(s.v.Load())
}
