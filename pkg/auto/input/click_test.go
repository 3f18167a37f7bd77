package input

import (
	"errors"
	"testing"
)

func TestPointerArrived(t *testing.T) {
	tests := []struct {
		name         string
		wantX, wantY int
		gotX, gotY   int
		arrived      bool
	}{
		{name: "exact", wantX: 100, wantY: 200, gotX: 100, gotY: 200, arrived: true},
		{name: "within tolerance", wantX: 100, wantY: 200, gotX: 103, gotY: 197, arrived: true},
		{name: "x beyond tolerance", wantX: 100, wantY: 200, gotX: 104, gotY: 200, arrived: false},
		{name: "y beyond tolerance", wantX: 100, wantY: 200, gotX: 100, gotY: 196, arrived: false},
		{name: "pointer never moved", wantX: 500, wantY: 500, gotX: 0, gotY: 0, arrived: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pointerArrived(tt.wantX, tt.wantY, tt.gotX, tt.gotY)
			if got != tt.arrived {
				t.Errorf("pointerArrived(%d,%d, %d,%d) = %v, 期望 %v",
					tt.wantX, tt.wantY, tt.gotX, tt.gotY, got, tt.arrived)
			}
		})
	}
}

func TestDispatchError(t *testing.T) {
	cause := errors.New("denied")
	err := &DispatchError{X: 10, Y: 20, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("DispatchError 应能解包出底层错误")
	}
	if err.Error() == "" {
		t.Error("错误消息不应为空")
	}

	bare := &DispatchError{X: 10, Y: 20}
	if bare.Error() == "" {
		t.Error("无底层错误时消息不应为空")
	}
	if errors.Unwrap(bare) != nil {
		t.Error("无底层错误时 Unwrap 应返回 nil")
	}
}
