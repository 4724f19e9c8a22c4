package calculator

import "fmt"

// Delta 基线差值（纯数值 + 预渲染展示串）。
// percentage 的分母为 0 时结果为 0，不产生 NaN/Inf。
type Delta struct {
	Current           float64 `json:"current"`
	Baseline          float64 `json:"baseline"`
	Absolute          float64 `json:"absolute"`
	Percentage        float64 `json:"percentage"`
	DisplayAbsolute   string  `json:"displayAbsolute"`
	DisplayPercentage string  `json:"displayPercentage"`
}

// Comparator 基线比较器
type Comparator struct {
	fmt *Formatter
}

// NewComparator 创建比较器
func NewComparator(f *Formatter) *Comparator {
	return &Comparator{fmt: f}
}

// ComputeDelta 计算当前值相对基线的差值
func (c *Comparator) ComputeDelta(current, baseline float64) Delta {
	absolute := current - baseline
	percentage := 0.0
	if baseline > 0 {
		percentage = absolute / baseline * 100
	}
	return Delta{
		Current:           current,
		Baseline:          baseline,
		Absolute:          absolute,
		Percentage:        percentage,
		DisplayAbsolute:   c.fmt.Signed(absolute),
		DisplayPercentage: c.fmt.SignedPercent(percentage),
	}
}

// FormatWithDelta 渲染“当前值 + 基线差值”展示串。
// 基线缺失或与当前值相同时只输出当前值；否则输出
// "<current> (baseline: <baseline>, <sign><delta>)"（百分比时差值带 pp 后缀）。
//
// 取整发生在相减之前：current 与 baseline 分别取整到原生单位
// （整 FTE / 一位小数百分比）后再求差。这与“对原始差值取整”相比
// 可能出现 ±1 个单位的偏移，为与既有面板数字逐位一致而有意保留。
func (c *Comparator) FormatWithDelta(current float64, baseline *float64, asPercent bool) string {
	if asPercent {
		cur := c.fmt.RoundPercent(current)
		if baseline == nil {
			return c.fmt.Number(cur)
		}
		base := c.fmt.RoundPercent(*baseline)
		if cur == base {
			return c.fmt.Number(cur)
		}
		return fmt.Sprintf("%s (baseline: %s, %s)", c.fmt.Number(cur), c.fmt.Number(base), c.fmt.SignedPoints(cur-base))
	}

	cur := c.fmt.RoundFTE(current)
	if baseline == nil {
		return c.fmt.Number(cur)
	}
	base := c.fmt.RoundFTE(*baseline)
	if cur == base {
		return c.fmt.Number(cur)
	}
	return fmt.Sprintf("%s (baseline: %s, %s)", c.fmt.Number(cur), c.fmt.Number(base), c.fmt.Signed(cur-base))
}

// GrowthRate 增长率；基线为 0 时返回 0
func (c *Comparator) GrowthRate(current, baseline float64) float64 {
	if baseline <= 0 {
		return 0
	}
	return (current - baseline) / baseline * 100
}

// FormatGrowthRate 增长率展示串，一位小数、显式正负号
func (c *Comparator) FormatGrowthRate(current, baseline float64) string {
	return c.fmt.SignedPercent(c.GrowthRate(current, baseline))
}
