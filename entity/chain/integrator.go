package chain

import (
	"github.com/samber/lo"
	"github.com/w0927/platoonsim/entity/track"
)

// integrate 显式欧拉积分
// 功能：按约束后加速度推进一个步长，返回新状态、新车距与头车扰动采样
// 参数：
//
//	t: 当前仿真时间（秒），扰动门控用
//	dt: 步长（秒）
//
// 算法说明：
//  1. 跟随车速度 v += a·dt
//  2. 头车先积分后注入扰动，注入前的速度单独返回用于记录
//  3. 所有速度裁剪到[minV, maxV]，再视配置施加跟随车相对各自前车的
//     速度上限followerMaxVRatio·v前车，F1以头车为基准，F2以封顶后的F1为基准
//  4. 位置 x += v·dt，环形道路取模
//  5. 重算车距；开放道路上车距跌破minSafeGap时将后车回拉到前车
//     后方minSafeGap处，速度封顶到前车速度，F1修复后用新位置
//     重算F1-F2车距再修复F2
func integrate(
	topo track.Topology, p *ControlParams, d *disturber,
	t, dt float64,
	vehicles [NumVehicles]VehicleState, accels [NumVehicles]float64,
) (out [NumVehicles]VehicleState, gaps [2]float64, leadNoise, preVL float64) {
	out = vehicles

	out[VehicleF1].Velocity += accels[VehicleF1] * dt
	out[VehicleF2].Velocity += accels[VehicleF2] * dt

	preVL = out[VehicleL].Velocity + accels[VehicleL]*dt
	leadNoise = d.sampleLead(t)
	out[VehicleL].Velocity = preVL + leadNoise

	for i := range out {
		out[i].Velocity = lo.Clamp(out[i].Velocity, p.MinV, p.MaxV)
	}
	if p.FollowerMaxVRatio > 0 {
		// 各跟随车的上限以各自前车为基准，F2使用封顶后的F1速度
		out[VehicleF1].Velocity = min(out[VehicleF1].Velocity, p.FollowerMaxVRatio*out[VehicleL].Velocity)
		out[VehicleF2].Velocity = min(out[VehicleF2].Velocity, p.FollowerMaxVRatio*out[VehicleF1].Velocity)
	}

	for i := range out {
		out[i].Position = topo.Wrap(out[i].Position + out[i].Velocity*dt)
	}

	gaps[0] = topo.Gap(out[VehicleL].Position, out[VehicleF1].Position)
	gaps[1] = topo.Gap(out[VehicleF1].Position, out[VehicleF2].Position)

	// 最小安全距离修复只适用于开放道路，环形道路车距定义为短弧，
	// 不存在可回拉的唯一方向
	if !topo.IsRing() {
		if gaps[0] < p.MinSafeGap {
			out[VehicleF1].Position = out[VehicleL].Position - p.MinSafeGap
			out[VehicleF1].Velocity = min(out[VehicleF1].Velocity, out[VehicleL].Velocity)
			gaps[0] = p.MinSafeGap
			gaps[1] = topo.Gap(out[VehicleF1].Position, out[VehicleF2].Position)
		}
		if gaps[1] < p.MinSafeGap {
			out[VehicleF2].Position = out[VehicleF1].Position - p.MinSafeGap
			out[VehicleF2].Velocity = min(out[VehicleF2].Velocity, out[VehicleF1].Velocity)
			gaps[1] = p.MinSafeGap
		}
	}
	return
}
