package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/zoeyai/autoaccept/internal/logger"
	"github.com/zoeyai/autoaccept/pkg/accept"
	"github.com/zoeyai/autoaccept/pkg/auto"
	"github.com/zoeyai/autoaccept/pkg/auto/screen"
	"github.com/zoeyai/autoaccept/pkg/config"
	"github.com/zoeyai/autoaccept/pkg/permissions"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// 命令行参数
	var (
		templatePath = flag.String("template", "", "模板图片路径 (例: accept.png)")
		threshold    = flag.Float64("threshold", 0, "匹配置信度阈值 (0-1]")
		regionFlag   = flag.String("region", "", "搜索区域 x,y,宽,高 (默认全屏)")
		interval     = flag.Float64("interval", 0, "未命中后的重试间隔 (秒)")
		delay        = flag.Float64("delay", 0, "点击后的等待时间 (秒)")
		debug        = flag.Bool("debug", false, "保存带标注的命中截图")
		quiet        = flag.Bool("quiet", false, "关闭控制台日志 (仅写日志文件)")
		logLevel     = flag.String("log-level", "", "日志级别 (DEBUG/INFO/WARN/ERROR)")
		logFile      = flag.String("log-file", "", "日志文件路径")
		saveConfig   = flag.Bool("save", false, "保存配置到本地")
		resetPerms   = flag.Bool("reset-permissions", false, "重置 macOS 授权记录")
		showVersion  = flag.Bool("version", false, "显示版本信息")
		showHelp     = flag.Bool("help", false, "显示帮助信息")
	)

	flag.Parse()

	// 显示版本
	if *showVersion {
		printVersion()
		return
	}

	// 显示帮助
	if *showHelp {
		printHelp()
		return
	}

	// 重置权限
	if *resetPerms {
		if err := permissions.Reset(); err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			os.Exit(1)
		}
		fmt.Println("[INFO] 授权记录已重置")
		return
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("[WARN] 加载配置失败: %v\n", err)
	}

	// 命令行参数优先级高于配置文件
	if *templatePath != "" {
		cfg.TemplatePath = *templatePath
	}
	if *threshold > 0 {
		cfg.Threshold = *threshold
	}
	if *interval > 0 {
		cfg.RetryInterval = *interval
	}
	if *delay > 0 {
		cfg.SuccessDelay = *delay
	}
	if *debug {
		cfg.Debug = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *regionFlag != "" {
		region, err := parseRegion(*regionFlag)
		if err != nil {
			fmt.Printf("[ERROR] 区域参数无效: %v\n", err)
			os.Exit(1)
		}
		cfg.Region = region
	}

	// 验证必要参数
	if cfg.TemplatePath == "" {
		fmt.Println("[ERROR] 缺少模板图片，请使用 -template 参数指定")
		printHelp()
		os.Exit(1)
	}

	// 保存配置
	if *saveConfig {
		if err := config.Save(cfg); err != nil {
			fmt.Printf("[WARN] 保存配置失败: %v\n", err)
		} else {
			fmt.Printf("[INFO] 配置已保存到 %s\n", config.GetDefaultManager().GetConfigFile())
		}
	}

	// 日志设置
	lg := logger.Default()
	lg.SetLevel(logger.ParseLevel(cfg.LogLevel))
	if *quiet {
		lg.SetConsole(false)
	}
	if cfg.LogFile != "" {
		if err := lg.SetFile(cfg.LogFile); err != nil {
			fmt.Printf("[WARN] 打开日志文件失败: %v\n", err)
		}
		defer lg.Close()
	}

	// 打印启动信息
	fmt.Println("========================================")
	fmt.Printf("  AutoAccept v%s\n", Version)
	fmt.Println("========================================")
	fmt.Printf("模板: %s\n", cfg.TemplatePath)
	fmt.Printf("阈值: %.2f\n", cfg.Threshold)
	if cfg.Region != nil {
		fmt.Printf("区域: (%d, %d) %dx%d\n", cfg.Region.X, cfg.Region.Y, cfg.Region.Width, cfg.Region.Height)
	}
	fmt.Printf("显示器: %d\n", screen.GetDisplayCount())
	fmt.Println()

	// macOS 权限检查
	if runtime.GOOS == "darwin" {
		status := permissions.Check()
		if !status.AllGranted() {
			fmt.Println("[WARN] ========== 缺少权限 ==========")
			fmt.Println(permissions.Instructions(status))
			fmt.Println("[WARN] ==================================")
			// 打开对应的设置页面并触发授权弹窗
			if !status.ScreenRecording {
				permissions.OpenScreenRecordingSettings()
			}
			if !status.Accessibility {
				permissions.OpenAccessibilitySettings()
				permissions.RequestAccessibility()
			}
			os.Exit(1)
		}
		fmt.Println("[INFO] ✓ 所有权限已授予")
	}

	// 创建控制信号与检测循环
	sig := accept.NewSignal()
	loop, err := accept.BuildLoop(cfg, sig,
		accept.WithEventSink(accept.NewLogSink(lg)))
	if err != nil {
		fmt.Printf("[ERROR] 初始化失败: %v\n", err)
		os.Exit(1)
	}

	// 注册全局热键
	hk, err := accept.NewHotkeyListener(sig, cfg.StartHotkey, cfg.StopHotkey, cfg.PauseHotkey)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	hk.Start()
	defer hk.Stop()

	fmt.Printf("[INFO] 按 %s 启动检测, %s 停止\n", cfg.StartHotkey, cfg.StopHotkey)
	if cfg.PauseHotkey != "" {
		fmt.Printf("[INFO] 按 %s 暂停/恢复\n", cfg.PauseHotkey)
	}
	fmt.Println("[INFO] 按 Ctrl+C 退出")

	// 中断信号触发优雅退出，进行中的周期执行完毕后循环返回
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println()
		fmt.Println("[INFO] 正在退出...")
		cancel()
	}()

	if err := loop.Run(ctx); err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	fmt.Println("[INFO] 已退出")
}

// parseRegion 解析 "x,y,宽,高" 形式的区域描述
func parseRegion(s string) (*auto.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("应为 x,y,宽,高 四个整数: %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("第 %d 段不是整数: %q", i+1, p)
		}
		vals[i] = v
	}
	return &auto.Region{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("AutoAccept v%s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

// printHelp 打印帮助信息
func printHelp() {
	fmt.Println("AutoAccept - 屏幕按钮自动点击工具")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  autoaccept [选项]")
	fmt.Println()
	fmt.Println("选项:")
	fmt.Println("  -template string   模板图片路径 (例: accept.png)")
	fmt.Println("  -threshold float   匹配置信度阈值 (0-1], 默认 0.8")
	fmt.Println("  -region string     搜索区域 x,y,宽,高 (默认全屏)")
	fmt.Println("  -interval float    未命中后的重试间隔 (秒), 默认 2")
	fmt.Println("  -delay float       点击后的等待时间 (秒), 默认 5")
	fmt.Println("  -debug             保存带标注的命中截图")
	fmt.Println("  -quiet             关闭控制台日志 (仅写日志文件)")
	fmt.Println("  -log-level string  日志级别 (DEBUG/INFO/WARN/ERROR)")
	fmt.Println("  -log-file string   日志文件路径")
	fmt.Println("  -save              保存配置到本地")
	fmt.Println("  -version           显示版本信息")
	fmt.Println("  -help              显示帮助信息")
	fmt.Println()
	fmt.Println("示例:")
	fmt.Println("  # 监视全屏，命中 accept.png 即点击")
	fmt.Println("  autoaccept -template accept.png")
	fmt.Println()
	fmt.Println("  # 限定搜索区域并保存配置")
	fmt.Println("  autoaccept -template accept.png -region 0,0,800,600 -save")
	fmt.Println()
	fmt.Println("  # 使用已保存的配置")
	fmt.Println("  autoaccept")
	fmt.Println()
	fmt.Printf("配置文件位置: %s\n", config.GetDefaultManager().GetConfigFile())
}
