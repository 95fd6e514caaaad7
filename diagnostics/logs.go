package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/smallnest/chanx"
)

// LogCollector 依序收集診斷過程中的訊息，
// 同時寫入 slog 並即時推送給訂閱者。
type LogCollector struct {
	mu          sync.Mutex
	lines       []string
	subscribers map[*chanx.UnboundedChan[string]]context.CancelFunc
	closed      bool
	logger      *slog.Logger
}

// NewLogCollector 建立新的 LogCollector，logger 為 nil 時使用 slog.Default()
func NewLogCollector(logger *slog.Logger) *LogCollector {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogCollector{
		subscribers: make(map[*chanx.UnboundedChan[string]]context.CancelFunc),
		logger:      logger.With(slog.String("caller", "Diagnostics")),
	}
}

// Info 記錄一般訊息
func (l *LogCollector) Info(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.logger.Info(line)
	l.append(line)
}

// Warn 記錄警告訊息
func (l *LogCollector) Warn(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.logger.Warn(line)
	l.append("⚠️ " + line)
}

// Error 記錄錯誤訊息
func (l *LogCollector) Error(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.logger.Error(line)
	l.append("❌ " + line)
}

func (l *LogCollector) append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	if l.closed {
		return
	}
	for sub := range l.subscribers {
		sub.In <- line
	}
}

// Lines 回傳目前為止收集到的所有訊息
func (l *LogCollector) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.lines...)
}

// Subscribe 訂閱訊息，會先收到已經收集的訊息。
// Close 之後通道在送完剩餘訊息後關閉；回傳的函數用於提前取消訂閱。
func (l *LogCollector) Subscribe() (<-chan string, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ctx, cancel := context.WithCancel(context.Background())
	sub := chanx.NewUnboundedChan[string](ctx, len(l.lines)+16)
	for _, line := range l.lines {
		sub.In <- line
	}
	if l.closed {
		close(sub.In)
		return sub.Out, cancel
	}
	l.subscribers[sub] = cancel
	return sub.Out, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.subscribers[sub]; ok {
			delete(l.subscribers, sub)
			close(sub.In)
		}
		cancel()
	}
}

// Close 結束收集，所有訂閱者的通道會在送完剩餘訊息後關閉
func (l *LogCollector) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	for sub := range l.subscribers {
		close(sub.In)
	}
	clear(l.subscribers)
}
