package chain

import (
	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/samber/lo"
)

// govern 安全约束器
// 功能：对原始加速度依次施加碰撞保护、舒适区间裁剪与紧急制动
// 参数：
//
//	raw: 控制律输出的原始加速度
//	gaps: 当前步观测车距 [L-F1, F1-F2]
//
// 返回值：约束后加速度与每车的紧急制动标志
// 算法说明：
//  1. 车距非正（开放道路上的越车状态）时后车原始加速度置为-INF，
//     裁剪后等于最大制动加速度
//  2. 所有加速度裁剪到[maxBrakingA, maxA]
//  3. 车距低于emergencyGapFactor·distanceThreshold时，后车加速度
//     强制不高于hardBrakeA，即便控制律仍在要求加速
func govern(p *ControlParams, raw [NumVehicles]float64, gaps [2]float64) (out [NumVehicles]float64, emergency [NumVehicles]bool) {
	out = raw
	if gaps[0] <= 0 {
		out[VehicleF1] = -mathutil.INF
	}
	if gaps[1] <= 0 {
		out[VehicleF2] = -mathutil.INF
	}
	for i := range out {
		out[i] = lo.Clamp(out[i], p.MaxBrakingA, p.MaxA)
	}
	emergencyGap := p.EmergencyGapFactor * p.DistanceThreshold
	if gaps[0] < emergencyGap {
		out[VehicleF1] = min(out[VehicleF1], p.HardBrakeA)
		emergency[VehicleF1] = true
	}
	if gaps[1] < emergencyGap {
		out[VehicleF2] = min(out[VehicleF2], p.HardBrakeA)
		emergency[VehicleF2] = true
	}
	return
}
