package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zoeyai/autoaccept/pkg/auto"
)

func TestDefaultAcceptConfig(t *testing.T) {
	config := DefaultAcceptConfig()

	if config.Threshold != 0.8 {
		t.Errorf("默认 Threshold 应为 0.8, 实际为 %g", config.Threshold)
	}
	if config.RetryInterval != 2.0 {
		t.Errorf("默认 RetryInterval 应为 2.0, 实际为 %g", config.RetryInterval)
	}
	if config.SuccessDelay != 5.0 {
		t.Errorf("默认 SuccessDelay 应为 5.0, 实际为 %g", config.SuccessDelay)
	}
	if config.MaxFailures != 10 {
		t.Errorf("默认 MaxFailures 应为 10, 实际为 %d", config.MaxFailures)
	}
	if config.StartHotkey == "" || config.StopHotkey == "" {
		t.Error("默认热键不应为空")
	}
	if !config.EnableMultiscale {
		t.Error("默认应启用多尺度匹配")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *AcceptConfig {
		c := DefaultAcceptConfig()
		c.TemplatePath = "accept.png"
		return c
	}

	tests := []struct {
		name      string
		mutate    func(*AcceptConfig)
		wantField string
	}{
		{
			name:   "valid config",
			mutate: func(c *AcceptConfig) {},
		},
		{
			name:   "valid config with region",
			mutate: func(c *AcceptConfig) { c.Region = &auto.Region{X: 0, Y: 0, Width: 100, Height: 100} },
		},
		{
			name:      "missing template path",
			mutate:    func(c *AcceptConfig) { c.TemplatePath = "" },
			wantField: "template_path",
		},
		{
			name:      "threshold above range",
			mutate:    func(c *AcceptConfig) { c.Threshold = 1.5 },
			wantField: "threshold",
		},
		{
			name:      "threshold below range",
			mutate:    func(c *AcceptConfig) { c.Threshold = -0.2 },
			wantField: "threshold",
		},
		{
			name:      "zero retry interval",
			mutate:    func(c *AcceptConfig) { c.RetryInterval = 0 },
			wantField: "retry_interval",
		},
		{
			name:      "negative success delay",
			mutate:    func(c *AcceptConfig) { c.SuccessDelay = -1 },
			wantField: "success_delay",
		},
		{
			name:      "negative region x",
			mutate:    func(c *AcceptConfig) { c.Region = &auto.Region{X: -5, Y: 0, Width: 100, Height: 100} },
			wantField: "region",
		},
		{
			name:      "zero region width",
			mutate:    func(c *AcceptConfig) { c.Region = &auto.Region{X: 0, Y: 0, Width: 0, Height: 100} },
			wantField: "region",
		},
		{
			name:      "missing start hotkey",
			mutate:    func(c *AcceptConfig) { c.StartHotkey = "" },
			wantField: "start_hotkey",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("合法配置不应报错: %v", err)
				}
				return
			}

			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("期望 *ValidationError, 实际 %v", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("错误字段: 期望 %s, 实际 %s", tt.wantField, valErr.Field)
			}
		})
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	config := DefaultAcceptConfig()
	config.TemplatePath = "/tmp/accept.png"
	config.Threshold = 0.9
	config.Region = &auto.Region{X: 100, Y: 200, Width: 300, Height: 150}

	if err := manager.Save(config); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if loaded.TemplatePath != config.TemplatePath {
		t.Errorf("TemplatePath 不匹配: 期望 %s, 实际 %s", config.TemplatePath, loaded.TemplatePath)
	}
	if loaded.Threshold != config.Threshold {
		t.Errorf("Threshold 不匹配: 期望 %g, 实际 %g", config.Threshold, loaded.Threshold)
	}
	if loaded.Region == nil || *loaded.Region != *config.Region {
		t.Errorf("Region 不匹配: %+v", loaded.Region)
	}
}

func TestManagerLoadMissingReturnsDefault(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载应回退到默认配置: %v", err)
	}
	if loaded.Threshold != 0.8 {
		t.Errorf("应返回默认配置, 实际 Threshold=%g", loaded.Threshold)
	}
}

func TestManagerLoadLegacyThresholdKey(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	// 早期版本把 threshold 拼成了 threshhold
	raw := `{"template_path": "accept.png", "threshhold": 0.75, "retry_interval": 1.5, "start_hotkey": "ctrl+alt+-", "stop_hotkey": "ctrl+alt+="}`
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte(raw), 0600); err != nil {
		t.Fatal(err)
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if loaded.Threshold != 0.75 {
		t.Errorf("旧键 threshhold 应迁移到 Threshold, 实际 %g", loaded.Threshold)
	}
	if loaded.LegacyThreshold != nil {
		t.Error("归一化后 LegacyThreshold 应清空")
	}
}

func TestManagerClear(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	config := DefaultAcceptConfig()
	if err := manager.Save(config); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	if err := manager.Clear(); err != nil {
		t.Fatalf("清除配置失败: %v", err)
	}
	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}

	// 重复清除不应报错
	if err := manager.Clear(); err != nil {
		t.Errorf("重复清除不应报错: %v", err)
	}
}

func TestDurationHelpers(t *testing.T) {
	c := DefaultAcceptConfig()
	c.RetryInterval = 2.5
	c.SuccessDelay = 0.5

	if got := c.RetryIntervalDuration().Milliseconds(); got != 2500 {
		t.Errorf("RetryIntervalDuration: 期望 2500ms, 实际 %dms", got)
	}
	if got := c.SuccessDelayDuration().Milliseconds(); got != 500 {
		t.Errorf("SuccessDelayDuration: 期望 500ms, 实际 %dms", got)
	}
}
