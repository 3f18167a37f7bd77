package accept

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"time"

	"gocv.io/x/gocv"

	"github.com/zoeyai/autoaccept/internal/logger"
	"github.com/zoeyai/autoaccept/pkg/auto"
	"github.com/zoeyai/autoaccept/pkg/auto/input"
	"github.com/zoeyai/autoaccept/pkg/auto/screen"
	"github.com/zoeyai/autoaccept/pkg/config"
	"github.com/zoeyai/autoaccept/pkg/vision/cv"
)

// screenFrame 真实截屏帧
type screenFrame struct {
	mat  gocv.Mat
	meta screen.CaptureMeta
}

// Release 实现 Frame
func (f *screenFrame) Release() {
	f.mat.Close()
}

// ScreenSampler 基于 robotgo 截屏的采样器
type ScreenSampler struct {
	region *auto.Region
}

// NewScreenSampler 创建采样器，region 为 nil 时全屏采样
func NewScreenSampler(region *auto.Region) *ScreenSampler {
	return &ScreenSampler{region: region}
}

// Capture 实现 Sampler
func (s *ScreenSampler) Capture() (Frame, error) {
	mat, meta, err := screen.CaptureForMatch(s.region)
	if err != nil {
		return nil, err
	}
	return &screenFrame{mat: mat, meta: meta}, nil
}

// TemplateMatcher 基于已加载模板的匹配器
type TemplateMatcher struct {
	tmpl     *cv.Template
	debugDir string
}

// NewTemplateMatcher 创建匹配器
// debugDir 非空时，命中的帧会带标注框保存到该目录。
func NewTemplateMatcher(tmpl *cv.Template, debugDir string) *TemplateMatcher {
	return &TemplateMatcher{tmpl: tmpl, debugDir: debugDir}
}

// Match 实现 Matcher，返回屏幕绝对坐标的匹配结果
func (m *TemplateMatcher) Match(f Frame) (*cv.MatchResult, error) {
	sf, ok := f.(*screenFrame)
	if !ok {
		return nil, fmt.Errorf("不支持的帧类型: %T", f)
	}

	result, err := m.tmpl.MatchIn(sf.mat)
	if err != nil {
		return nil, err
	}

	if result.Found && m.debugDir != "" {
		m.saveDebugImage(sf.mat, result)
	}

	return screen.AdjustMatchResult(result, sf.meta), nil
}

// saveDebugImage 在帧上画出匹配框并落盘
func (m *TemplateMatcher) saveDebugImage(frame gocv.Mat, result *cv.MatchResult) {
	annotated := frame.Clone()
	defer annotated.Close()

	rect := image.Rect(
		result.Rectangle.TopLeft.X, result.Rectangle.TopLeft.Y,
		result.Rectangle.BottomRight.X, result.Rectangle.BottomRight.Y,
	)
	gocv.Rectangle(&annotated, rect, color.RGBA{0, 255, 0, 255}, 2)

	name := fmt.Sprintf("match_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.debugDir, name)
	if err := cv.WriteImage(path, annotated); err != nil {
		logger.Warn("保存调试截图失败: %v", err)
		return
	}
	logger.Debug("调试截图已保存: %s", path)
}

// RobotClicker 基于 robotgo 的点击派发器
// 偏移量叠加在匹配中心上，用于按钮热区偏离图案中心的情况。
type RobotClicker struct {
	OffsetX int
	OffsetY int
}

// Click 实现 Clicker
func (c RobotClicker) Click(x, y int) error {
	return input.ClickAt(x+c.OffsetX, y+c.OffsetY)
}

// BuildLoop 按配置组装真实依赖的检测循环
// 模板加载、阈值与区域合法性都在此处校验，失败即返回（不进入循环）。
func BuildLoop(cfg *config.AcceptConfig, signal *Signal, opts ...LoopOption) (*Loop, error) {
	var tmplOpts []cv.TemplateOption
	if cfg.EnableMultiscale {
		tmplOpts = append(tmplOpts, cv.WithScales(cv.DefaultScales...))
	}
	if cfg.RGBCheck {
		tmplOpts = append(tmplOpts, cv.WithRGB())
	}

	tmpl, err := cv.LoadTemplate(cfg.TemplatePath, cfg.Threshold, tmplOpts...)
	if err != nil {
		return nil, err
	}

	if err := screen.ValidateRegion(cfg.Region); err != nil {
		tmpl.Close()
		return nil, err
	}

	debugDir := ""
	if cfg.Debug {
		debugDir = filepath.Join(config.GetDefaultManager().GetConfigDir(), "debug")
	}

	loop, err := NewLoop(cfg,
		NewScreenSampler(cfg.Region),
		NewTemplateMatcher(tmpl, debugDir),
		RobotClicker{OffsetX: cfg.ClickOffsetX, OffsetY: cfg.ClickOffsetY},
		signal,
		opts...,
	)
	if err != nil {
		tmpl.Close()
		return nil, err
	}
	return loop, nil
}
