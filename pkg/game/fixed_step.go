package game

// FixedStepDriver 固定步长驱动器
//
// 累积真实流逝的时间，每满一个步长调用一次 tick，使模拟时间与
// 显示帧率解耦。单帧流逝时间会被截断到 maxFrame，避免长时间卡顿后
// 一次性补跑过多 tick（spiral of death）。
type FixedStepDriver struct {
	step        float64
	maxFrame    float64
	accumulator float64
	tick        func(step float64)

	ticks   uint64
	dropped float64
}

// NewFixedStepDriver 创建固定步长驱动器
//
// 参数:
//   - step: 每个 tick 的时长（秒），必须为正
//   - maxFrame: 单帧最多推进的时间（秒），<= 0 时不截断
//   - tick: 每个步长调用一次的回调
//
// 返回:
//   - *FixedStepDriver: 驱动器实例
func NewFixedStepDriver(step, maxFrame float64, tick func(step float64)) *FixedStepDriver {
	if step <= 0 {
		panic("fixed step must be positive")
	}
	return &FixedStepDriver{
		step:     step,
		maxFrame: maxFrame,
		tick:     tick,
	}
}

// Advance 推进 elapsed 秒的真实时间
// 返回本次调用执行的 tick 数（可能为 0）
func (d *FixedStepDriver) Advance(elapsed float64) int {
	if elapsed < 0 {
		elapsed = 0
	}
	if d.maxFrame > 0 && elapsed > d.maxFrame {
		d.dropped += elapsed - d.maxFrame
		elapsed = d.maxFrame
	}

	d.accumulator += elapsed
	n := 0
	for d.accumulator >= d.step {
		d.tick(d.step)
		d.accumulator -= d.step
		d.ticks++
		n++
	}
	return n
}

// Alpha 剩余累积时间占一个步长的比例，范围 [0, 1)，用于渲染插值
func (d *FixedStepDriver) Alpha() float64 {
	return d.accumulator / d.step
}

// Step 每个 tick 的时长
func (d *FixedStepDriver) Step() float64 {
	return d.step
}

// Ticks 累计执行的 tick 数
func (d *FixedStepDriver) Ticks() uint64 {
	return d.ticks
}

// Dropped 因截断而丢弃的真实时间（秒）
func (d *FixedStepDriver) Dropped() float64 {
	return d.dropped
}
