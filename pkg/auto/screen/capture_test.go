package screen

import (
	"errors"
	"testing"

	"github.com/zoeyai/autoaccept/pkg/auto"
	"github.com/zoeyai/autoaccept/pkg/vision/cv"
)

func TestValidateRegionBounds(t *testing.T) {
	tests := []struct {
		name    string
		region  *auto.Region
		wantErr bool
	}{
		{
			name:   "nil region means full screen",
			region: nil,
		},
		{
			name:   "valid region",
			region: &auto.Region{X: 10, Y: 20, Width: 100, Height: 100},
		},
		{
			name:   "region touching screen edge",
			region: &auto.Region{X: 1820, Y: 980, Width: 100, Height: 100},
		},
		{
			name:    "negative x",
			region:  &auto.Region{X: -5, Y: 0, Width: 100, Height: 100},
			wantErr: true,
		},
		{
			name:    "negative y",
			region:  &auto.Region{X: 0, Y: -1, Width: 100, Height: 100},
			wantErr: true,
		},
		{
			name:    "zero width",
			region:  &auto.Region{X: 0, Y: 0, Width: 0, Height: 100},
			wantErr: true,
		},
		{
			name:    "negative height",
			region:  &auto.Region{X: 0, Y: 0, Width: 100, Height: -10},
			wantErr: true,
		},
		{
			name:    "exceeds right edge",
			region:  &auto.Region{X: 1900, Y: 0, Width: 100, Height: 100},
			wantErr: true,
		},
		{
			name:    "exceeds bottom edge",
			region:  &auto.Region{X: 0, Y: 1000, Width: 100, Height: 100},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegionBounds(tt.region, 1920, 1080)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegionBounds() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var regionErr *InvalidRegionError
				if !errors.As(err, &regionErr) {
					t.Errorf("期望 *InvalidRegionError, 实际 %v", err)
				}
			}
		})
	}
}

func TestAdjustMatchResult(t *testing.T) {
	result := &cv.MatchResult{
		Result:     cv.Point{X: 100, Y: 50},
		Rectangle:  cv.NewRectangle(60, 30, 80, 40),
		Confidence: 0.93,
		Found:      true,
	}

	// 区域偏移 (200, 300)，无缩放
	meta := CaptureMeta{ScaleX: 1.0, ScaleY: 1.0, OffsetX: 200, OffsetY: 300}
	adjusted := AdjustMatchResult(result, meta)

	if adjusted.Result.X != 300 || adjusted.Result.Y != 350 {
		t.Errorf("偏移换算不正确: %+v", adjusted.Result)
	}
	if adjusted.Rectangle.TopLeft.X != 260 || adjusted.Rectangle.TopLeft.Y != 330 {
		t.Errorf("矩形偏移换算不正确: %+v", adjusted.Rectangle.TopLeft)
	}

	// 原始结果不应被修改
	if result.Result.X != 100 {
		t.Error("原始结果被修改")
	}

	// Retina 2x 缩放：物理像素坐标减半后再加偏移
	meta = CaptureMeta{ScaleX: 2.0, ScaleY: 2.0, OffsetX: 10, OffsetY: 10}
	adjusted = AdjustMatchResult(result, meta)
	if adjusted.Result.X != 60 || adjusted.Result.Y != 35 {
		t.Errorf("缩放换算不正确: %+v", adjusted.Result)
	}
}

func TestAdjustMatchResultNil(t *testing.T) {
	if AdjustMatchResult(nil, CaptureMeta{}) != nil {
		t.Error("nil 结果应返回 nil")
	}
}
