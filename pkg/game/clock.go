package game

import "time"

// Clock 单调时钟，以毫秒返回自时钟原点起经过的时间
//
// 渲染器每帧只读取一次，用于计算 deltaTime、拖尾时间戳和星空闪烁。
type Clock interface {
	NowMs() float64
}

// MonotonicClock 基于 time.Since 的真实时钟
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock 创建从当前时刻起计时的时钟
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// NowMs 返回自创建以来的毫秒数
func (c *MonotonicClock) NowMs() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// ManualClock 手动推进的时钟（测试和离线渲染使用）
type ManualClock struct {
	now float64
}

// NewManualClock 创建起始于 startMs 的手动时钟
func NewManualClock(startMs float64) *ManualClock {
	return &ManualClock{now: startMs}
}

// NowMs 返回当前时间
func (c *ManualClock) NowMs() float64 {
	return c.now
}

// Advance 前进 ms 毫秒
func (c *ManualClock) Advance(ms float64) {
	c.now += ms
}

// Set 直接设置当前时间，允许回退（用于测试时钟倒退）
func (c *ManualClock) Set(ms float64) {
	c.now = ms
}
