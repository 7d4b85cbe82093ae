package chain

import (
	"github.com/w0927/platoonsim/utils/config"
	"github.com/w0927/platoonsim/utils/randengine"
)

// disturber 头车速度扰动与跟随车驾驶噪声发生器
// 说明：所有随机数都来自同一个按场景播种的引擎，同种子同轨迹
type disturber struct {
	cfg    config.Disturbance
	engine *randengine.Engine
}

func newDisturber(cfg config.Disturbance, engine *randengine.Engine) *disturber {
	return &disturber{cfg: cfg, engine: engine}
}

// sampleLead 采样t时刻的头车速度扰动
// 算法说明：扰动未启用或仿真时间未达到startTime时恒为0；
// 启用后每步独立采样N(0, std²)并截断到±3σ
func (d *disturber) sampleLead(t float64) float64 {
	if !d.cfg.Enabled || t < d.cfg.StartTime {
		return 0
	}
	return d.engine.ClippedNormal(d.cfg.Std, 3*d.cfg.Std)
}

// perturbAccels 向三车加速度注入驾驶噪声，并向头车注入突发加减速
// 说明：安全约束前调用，注入后的加速度仍会经过裁剪与紧急制动检查
func (d *disturber) perturbAccels(accels [NumVehicles]float64) [NumVehicles]float64 {
	if d.cfg.DriverNoiseStd > 0 {
		for i := range accels {
			accels[i] += d.engine.Normal(d.cfg.DriverNoiseStd)
		}
	}
	if d.cfg.LeadBurstProb > 0 && d.engine.PTrue(d.cfg.LeadBurstProb) {
		accels[VehicleL] += d.engine.Normal(d.cfg.LeadBurstStd)
	}
	return accels
}
