// Package analysis 对仿真历史做稳定性评估
// 说明：评估只读取历史记录，与仿真推进完全解耦，可在任意轮次之后调用
package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"

	"github.com/w0927/platoonsim/entity/chain"
)

// 稳定性判定阈值：评估窗口内速度与车距的波动低于这些值且平均车距
// 偏离参考值不大时认为车队收敛
const (
	stableVelocityStd = 2.0
	stableGapStd      = 5.0
	stableGapDev      = 10.0
)

// Report 稳定性评估报告
type Report struct {
	Window int // 参与统计的末尾步数

	VelocityStd  [chain.NumVehicles]float64 // 各车速度标准差
	GapStd       [2]float64                 // 两处车距标准差
	MeanVelocity float64                    // 三车合并平均速度
	VelocityCV   float64                    // 速度变异系数（最大标准差/平均速度）
	MeanGap      [2]float64                 // 平均车距
	GapDeviation float64                    // 平均车距相对参考值的最大偏差

	ModeShare map[string]float64 // 各模式出现占比

	Stable bool // 稳定性判定结果
}

// Assess 评估仿真历史的稳定性
// 功能：在历史的末尾窗口上统计速度与车距波动并给出稳定性判定
// 参数：
//
//	h: 仿真历史
//	window: 统计窗口步数，取历史末尾window步（排除初始瞬态）
//	refGap: 车距参考值（通常取模式切换阈值d）
//
// 返回值：评估报告；窗口非法或平均速度为0时返回错误
func Assess(h *chain.History, window int, refGap float64) (*Report, error) {
	if h.Len() == 0 {
		return nil, fmt.Errorf("analysis: empty history")
	}
	if window <= 0 || window > h.Len() {
		return nil, fmt.Errorf("analysis: window %d out of range (history has %d steps)", window, h.Len())
	}
	start := h.Len() - window
	r := &Report{Window: window}

	velocities := [chain.NumVehicles][]float64{
		chain.VehicleL:  h.VL[start:],
		chain.VehicleF1: h.VF1[start:],
		chain.VehicleF2: h.VF2[start:],
	}
	var all []float64
	for i, vs := range velocities {
		std, err := stats.StandardDeviation(vs)
		if err != nil {
			return nil, fmt.Errorf("analysis: velocity std: %w", err)
		}
		r.VelocityStd[i] = std
		all = append(all, vs...)
	}
	mean, err := stats.Mean(all)
	if err != nil {
		return nil, fmt.Errorf("analysis: mean velocity: %w", err)
	}
	if mean == 0 {
		return nil, fmt.Errorf("analysis: mean velocity is zero, coefficient of variation undefined")
	}
	r.MeanVelocity = mean
	r.VelocityCV = lo.Max(r.VelocityStd[:]) / mean

	for i, gs := range [2][]float64{h.GapLF1[start:], h.GapF1F2[start:]} {
		std, err := stats.StandardDeviation(gs)
		if err != nil {
			return nil, fmt.Errorf("analysis: gap std: %w", err)
		}
		gapMean, err := stats.Mean(gs)
		if err != nil {
			return nil, fmt.Errorf("analysis: mean gap: %w", err)
		}
		r.GapStd[i] = std
		r.MeanGap[i] = gapMean
		r.GapDeviation = max(r.GapDeviation, math.Abs(gapMean-refGap))
	}

	counts := lo.CountValues(h.Mode[start:])
	r.ModeShare = make(map[string]float64, len(counts))
	for m, n := range counts {
		r.ModeShare[m] = float64(n) / float64(window)
	}

	r.Stable = lo.Max(r.VelocityStd[:]) < stableVelocityStd &&
		lo.Max(r.GapStd[:]) < stableGapStd &&
		r.GapDeviation < stableGapDev
	return r, nil
}

// String 报告的单行摘要，便于日志输出
func (r *Report) String() string {
	return fmt.Sprintf("stable=%v velStd=%.2f/%.2f/%.2f gapStd=%.2f/%.2f gapDev=%.2f meanV=%.2f modes=%v",
		r.Stable,
		r.VelocityStd[chain.VehicleL], r.VelocityStd[chain.VehicleF1], r.VelocityStd[chain.VehicleF2],
		r.GapStd[0], r.GapStd[1], r.GapDeviation, r.MeanVelocity, r.ModeShare)
}
