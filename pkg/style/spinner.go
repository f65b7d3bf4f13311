package style

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner 长时间运行任务期间的终端旋转指示器
type Spinner struct {
	out      io.Writer
	msg      string
	enabled  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	once     sync.Once
	interval time.Duration
}

// NewSpinner 创建 Spinner；enabled 为 false 时 Start/Stop 不输出任何内容（非终端或安静模式）
func NewSpinner(out io.Writer, msg string, enabled bool) *Spinner {
	return &Spinner{
		out:      out,
		msg:      msg,
		enabled:  enabled,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		interval: 120 * time.Millisecond,
	}
}

// Start 启动 spinner，直到 Stop 被调用
func (s *Spinner) Start() {
	if !s.enabled {
		close(s.doneCh)
		return
	}
	go func() {
		defer close(s.doneCh)
		frames := []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}
		i := 0
		_, _ = fmt.Fprintf(s.out, "%s %c\r", s.msg, frames[i])
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				_, _ = fmt.Fprintf(s.out, "%s ✔\n", s.msg)
				return
			case <-ticker.C:
				i = (i + 1) % len(frames)
				_, _ = fmt.Fprintf(s.out, "%s %c\r", s.msg, frames[i])
			}
		}
	}()
}

// Stop 停止 spinner，可重复调用
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stopCh) })
	<-s.doneCh
}
