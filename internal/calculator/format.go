package calculator

import (
	"fmt"
	"math"
	"strconv"
)

// Formatter 数值格式化器：一次构造、只读。
// 负责符号与取整约定——FTE 取整数、百分比保留一位小数、增量始终带显式正负号。
type Formatter struct {
	percentDecimals int
}

// NewFormatter 创建格式化器
func NewFormatter() *Formatter {
	return &Formatter{percentDecimals: 1}
}

// Number 数值的最短十进制表示（621 -> "621"，3.4 -> "3.4"）
func (f *Formatter) Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Signed 带显式正负号的数值（正数也要 "+"）
func (f *Formatter) Signed(v float64) string {
	if v >= 0 {
		return "+" + f.Number(v)
	}
	return f.Number(v)
}

// Percent 百分比，一位小数，不带符号（"12.5%"）
func (f *Formatter) Percent(v float64) string {
	return fmt.Sprintf("%.*f%%", f.percentDecimals, v)
}

// SignedPercent 带显式正负号的百分比（"+3.4%"）
func (f *Formatter) SignedPercent(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.*f%%", f.percentDecimals, v)
	}
	return fmt.Sprintf("%.*f%%", f.percentDecimals, v)
}

// SignedPoints 带显式正负号的百分点（"+1.3pp"）
func (f *Formatter) SignedPoints(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.*fpp", f.percentDecimals, v)
	}
	return fmt.Sprintf("%.*fpp", f.percentDecimals, v)
}

// RoundFTE FTE 的原生单位：整数
func (f *Formatter) RoundFTE(v float64) float64 {
	return math.Round(v)
}

// RoundPercent 百分比的原生单位：一位小数
func (f *Formatter) RoundPercent(v float64) float64 {
	return math.Round(v*10) / 10
}
