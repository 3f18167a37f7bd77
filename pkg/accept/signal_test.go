package accept

import (
	"sync"
	"testing"
)

func TestSignalInitialState(t *testing.T) {
	s := NewSignal()
	if got := s.Load(); got != Stopped {
		t.Errorf("初始状态应为 Stopped, 实际 %s", got)
	}
}

func TestSignalSetLoad(t *testing.T) {
	s := NewSignal()
	for _, state := range []State{Running, Paused, Stopped, Running} {
		s.Set(state)
		if got := s.Load(); got != state {
			t.Errorf("期望 %s, 实际 %s", state, got)
		}
	}
}

// 并发写入后读到的必须是写入过的状态之一
func TestSignalConcurrentAccess(t *testing.T) {
	s := NewSignal()

	var wg sync.WaitGroup
	states := []State{Stopped, Running, Paused}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.Set(states[(i+j)%len(states)])
				_ = s.Load()
			}
		}(i)
	}
	wg.Wait()

	got := s.Load()
	if got != Stopped && got != Running && got != Paused {
		t.Errorf("非法状态: %d", got)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Stopped, "stopped"},
		{Running, "running"},
		{Paused, "paused"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, 期望 %q", tt.state, got, tt.want)
		}
	}
}
