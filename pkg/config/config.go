// Package config 提供自动接受工具的配置管理
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zoeyai/autoaccept/pkg/auto"
)

// AcceptConfig 自动接受配置
type AcceptConfig struct {
	// TemplatePath 模板图像路径
	TemplatePath string `json:"template_path"`
	// Threshold 匹配阈值 (0-1)
	Threshold float64 `json:"threshold"`
	// RetryInterval 未命中时的重试间隔（秒）
	RetryInterval float64 `json:"retry_interval"`
	// SuccessDelay 点击成功后的等待时间（秒）
	SuccessDelay float64 `json:"success_delay"`
	// MaxFailures 进入退避前允许的连续失败次数
	MaxFailures int `json:"max_failures"`
	// Region 截屏区域，nil 表示全屏
	Region *auto.Region `json:"region,omitempty"`
	// StartHotkey 启动热键（例: "ctrl+alt+-"）
	StartHotkey string `json:"start_hotkey"`
	// StopHotkey 停止热键
	StopHotkey string `json:"stop_hotkey"`
	// PauseHotkey 暂停热键，空表示不注册
	PauseHotkey string `json:"pause_hotkey,omitempty"`
	// EnableMultiscale 是否启用多尺度匹配
	EnableMultiscale bool `json:"enable_multiscale"`
	// RGBCheck 是否启用 RGB 三通道置信度校验
	RGBCheck bool `json:"rgb_check"`
	// ClickOffsetX 点击位置相对匹配中心的横向偏移（像素）
	ClickOffsetX int `json:"click_offset_x,omitempty"`
	// ClickOffsetY 点击位置相对匹配中心的纵向偏移（像素）
	ClickOffsetY int `json:"click_offset_y,omitempty"`
	// Debug 命中时保存标注截图
	Debug bool `json:"debug"`
	// LogLevel 日志级别
	LogLevel string `json:"log_level"`
	// LogFile 日志文件路径，空表示仅控制台
	LogFile string `json:"log_file,omitempty"`

	// LegacyThreshold 兼容早期配置文件的拼写错误键
	LegacyThreshold *float64 `json:"threshhold,omitempty"`
}

// DefaultAcceptConfig 默认配置
func DefaultAcceptConfig() *AcceptConfig {
	return &AcceptConfig{
		Threshold:        0.8,
		RetryInterval:    2.0,
		SuccessDelay:     5.0,
		MaxFailures:      10,
		StartHotkey:      "ctrl+alt+-",
		StopHotkey:       "ctrl+alt+=",
		EnableMultiscale: true,
		LogLevel:         "INFO",
	}
}

// ValidationError 配置校验错误
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置项 %s 非法 (%v): %s", e.Field, e.Value, e.Reason)
}

// Normalize 兼容性归一化
// 早期版本的配置文件使用 "threshhold" 键，读到时迁移到 Threshold。
func (c *AcceptConfig) Normalize() {
	if c.LegacyThreshold != nil {
		if c.Threshold == 0 {
			c.Threshold = *c.LegacyThreshold
		}
		c.LegacyThreshold = nil
	}
}

// Validate 校验配置，循环启动前调用
// 返回第一个发现的 *ValidationError。
func (c *AcceptConfig) Validate() error {
	if c.TemplatePath == "" {
		return &ValidationError{Field: "template_path", Value: "", Reason: "必须指定模板图像"}
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return &ValidationError{Field: "threshold", Value: c.Threshold, Reason: "必须在 [0,1] 范围内"}
	}
	if c.RetryInterval <= 0 {
		return &ValidationError{Field: "retry_interval", Value: c.RetryInterval, Reason: "必须为正数"}
	}
	if c.SuccessDelay < 0 {
		return &ValidationError{Field: "success_delay", Value: c.SuccessDelay, Reason: "不能为负数"}
	}
	if c.MaxFailures < 0 {
		return &ValidationError{Field: "max_failures", Value: c.MaxFailures, Reason: "不能为负数"}
	}
	if c.Region != nil {
		if c.Region.X < 0 || c.Region.Y < 0 {
			return &ValidationError{Field: "region", Value: *c.Region, Reason: "坐标不能为负"}
		}
		if c.Region.Width <= 0 || c.Region.Height <= 0 {
			return &ValidationError{Field: "region", Value: *c.Region, Reason: "宽高必须为正"}
		}
	}
	if c.StartHotkey == "" {
		return &ValidationError{Field: "start_hotkey", Value: "", Reason: "必须指定启动热键"}
	}
	if c.StopHotkey == "" {
		return &ValidationError{Field: "stop_hotkey", Value: "", Reason: "必须指定停止热键"}
	}
	return nil
}

// RetryIntervalDuration 重试间隔
func (c *AcceptConfig) RetryIntervalDuration() time.Duration {
	return time.Duration(c.RetryInterval * float64(time.Second))
}

// SuccessDelayDuration 点击成功后的等待时间
func (c *AcceptConfig) SuccessDelayDuration() time.Duration {
	return time.Duration(c.SuccessDelay * float64(time.Second))
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := filepath.Join(homeDir, ".autoaccept")
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置
// 文件不存在时返回默认配置。
func (m *Manager) Load() (*AcceptConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return DefaultAcceptConfig(), nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return DefaultAcceptConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config AcceptConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return DefaultAcceptConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}

	config.Normalize()
	return &config, nil
}

// Save 保存配置
func (m *Manager) Save(config *AcceptConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*AcceptConfig, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(config *AcceptConfig) error {
	return defaultManager.Save(config)
}
