// Package accept 实现检测-点击循环
//
// 循环每个周期读取控制信号，处于 Running 时采样屏幕、
// 与模板匹配，命中则在匹配位置派发点击。
// 循环只依赖抽象能力 {采样, 匹配, 点击, 读信号}，
// 真实实现与测试替身可以互换。
package accept

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zoeyai/autoaccept/internal/logger"
	"github.com/zoeyai/autoaccept/pkg/config"
	"github.com/zoeyai/autoaccept/pkg/vision/cv"
)

// Frame 一次采样得到的帧，由当前周期独占，匹配后释放
type Frame interface {
	// Release 释放帧资源
	Release()
}

// Sampler 屏幕采样能力
type Sampler interface {
	// Capture 截取一帧，阻塞至系统截屏完成
	Capture() (Frame, error)
}

// Matcher 模板匹配能力
// 返回的坐标已换算为屏幕绝对坐标。
type Matcher interface {
	Match(f Frame) (*cv.MatchResult, error)
}

// Clicker 点击派发能力
type Clicker interface {
	Click(x, y int) error
}

const (
	// DefaultPollInterval 非运行状态下的信号轮询间隔
	DefaultPollInterval = 200 * time.Millisecond
	// DefaultMaxBackoff 退避休眠上限
	DefaultMaxBackoff = 10 * time.Second
)

// Loop 检测循环
// 单线程运行，自己通过显式休眠控制节奏；
// 控制信号是它与热键监听线程之间唯一的共享状态，且只读不写。
type Loop struct {
	cfg     *config.AcceptConfig
	sampler Sampler
	matcher Matcher
	clicker Clicker
	signal  *Signal
	sink    EventSink

	sessionID    string
	sleep        func(time.Duration)
	pollInterval time.Duration
	maxBackoff   time.Duration

	lastSeen State
	failures int
	alerted  bool
}

// LoopOption 循环选项
type LoopOption func(*Loop)

// WithEventSink 设置遥测事件接收方
func WithEventSink(sink EventSink) LoopOption {
	return func(l *Loop) {
		l.sink = sink
	}
}

// WithSleepFunc 替换休眠实现（测试用）
func WithSleepFunc(sleep func(time.Duration)) LoopOption {
	return func(l *Loop) {
		l.sleep = sleep
	}
}

// WithPollInterval 设置非运行状态下的信号轮询间隔
func WithPollInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		l.pollInterval = d
	}
}

// WithMaxBackoff 设置退避休眠上限
func WithMaxBackoff(d time.Duration) LoopOption {
	return func(l *Loop) {
		l.maxBackoff = d
	}
}

// NewLoop 创建检测循环
// 配置在此处校验，非法配置在循环启动前失败。
func NewLoop(cfg *config.AcceptConfig, sampler Sampler, matcher Matcher, clicker Clicker, signal *Signal, opts ...LoopOption) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Loop{
		cfg:          cfg,
		sampler:      sampler,
		matcher:      matcher,
		clicker:      clicker,
		signal:       signal,
		sink:         NopSink{},
		sessionID:    uuid.NewString(),
		sleep:        time.Sleep,
		pollInterval: DefaultPollInterval,
		maxBackoff:   DefaultMaxBackoff,
		lastSeen:     Stopped,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// SessionID 本次循环实例的会话标识
func (l *Loop) SessionID() string {
	return l.sessionID
}

// Run 运行检测循环，直到 ctx 取消或发生致命错误
//
// 信号在每个周期开始时读取一次：停止指令不会打断进行中的
// 采样或点击，最迟在一个重试间隔内生效。
// 瞬时错误计入连续失败，超过 MaxFailures 后进入退避；
// 致命错误原样返回，是否终止进程由调用方决定。
func (l *Loop) Run(ctx context.Context) error {
	logger.Info("检测循环就绪 session=%s template=%s", l.sessionID, l.cfg.TemplatePath)

	for {
		if ctx.Err() != nil {
			logger.Info("检测循环退出 session=%s", l.sessionID)
			return nil
		}

		sig := l.signal.Load()
		l.observeState(sig)

		if sig != Running {
			l.sleep(l.pollInterval)
			continue
		}

		found, err := l.cycle()
		if err != nil {
			if IsFatal(err) {
				l.recordError(err)
				logger.Error("致命错误，循环停止: %v", err)
				l.observeState(Stopped)
				return err
			}

			l.failures++
			l.recordError(err)
			logger.Warn("周期失败 (连续 %d 次): %v", l.failures, err)

			if l.cfg.MaxFailures > 0 && l.failures > l.cfg.MaxFailures {
				if !l.alerted {
					logger.Error("连续失败超过 %d 次，进入退避", l.cfg.MaxFailures)
					l.alerted = true
				}
				l.sleep(l.backoffDelay())
			} else {
				l.sleep(l.cfg.RetryIntervalDuration())
			}
			continue
		}

		l.failures = 0
		l.alerted = false

		if found {
			l.sleep(l.cfg.SuccessDelayDuration())
		} else {
			l.sleep(l.cfg.RetryIntervalDuration())
		}
	}
}

// cycle 执行一个完整周期：采样 → 匹配 → 命中则点击
// 周期一旦开始就运行到底，停止指令在下个周期生效。
func (l *Loop) cycle() (found bool, err error) {
	l.record(Event{Type: EventMatchAttempt})

	frame, err := l.sampler.Capture()
	if err != nil {
		return false, err
	}
	defer frame.Release()

	result, err := l.matcher.Match(frame)
	if err != nil {
		return false, err
	}

	if !result.Found {
		logger.Debug("未命中 confidence=%.4f", result.Confidence)
		return false, nil
	}

	l.record(Event{
		Type:       EventMatchFound,
		Confidence: result.Confidence,
		X:          result.Result.X,
		Y:          result.Result.Y,
	})

	if err := l.clicker.Click(result.Result.X, result.Result.Y); err != nil {
		return false, err
	}

	l.record(Event{
		Type:       EventClickDispatched,
		Confidence: result.Confidence,
		X:          result.Result.X,
		Y:          result.Result.Y,
	})
	logger.Info("已点击 (%d, %d) confidence=%.4f", result.Result.X, result.Result.Y, result.Confidence)

	return true, nil
}

// backoffDelay 线性退避：重试间隔 × 连续失败次数，封顶 maxBackoff
func (l *Loop) backoffDelay() time.Duration {
	d := time.Duration(l.failures) * l.cfg.RetryIntervalDuration()
	if d > l.maxBackoff {
		d = l.maxBackoff
	}
	return d
}

// observeState 跟踪观察到的信号状态并上报变化
func (l *Loop) observeState(sig State) {
	if sig == l.lastSeen {
		return
	}
	logger.Info("状态变化: %s -> %s", l.lastSeen, sig)
	l.record(Event{Type: EventStateChange, Detail: l.lastSeen.String() + " -> " + sig.String()})
	l.lastSeen = sig
}

func (l *Loop) record(e Event) {
	e.Timestamp = time.Now()
	e.SessionID = l.sessionID
	l.sink.Record(e)
}

func (l *Loop) recordError(err error) {
	l.record(Event{
		Type:      EventError,
		ErrorKind: ErrorKind(err),
		Detail:    err.Error(),
	})
}
