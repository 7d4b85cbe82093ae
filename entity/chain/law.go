package chain

import (
	"fmt"

	"github.com/w0927/platoonsim/utils/config"
)

// controlLaw 控制律接口
// 功能：将（模式，当前状态，固定系数）映射为每车的目标速度与原始加速度
// 说明：四种变体共享同一约定：每步根据当前模式从头计算，不依赖上一步的
// 控制输出，所有平滑效果都来自速度积分的一阶动力学；
// 没有显式目标速度的变体（direct_acceleration）以当前速度作为目标值记录
type controlLaw interface {
	name() config.Law
	// compute 计算目标速度与原始加速度（安全约束前）
	compute(m Mode, v [NumVehicles]float64, gaps [2]float64) (targets, accels [NumVehicles]float64)
}

// newControlLaw 按变体名构造控制律
func newControlLaw(law config.Law, p *ControlParams) (controlLaw, error) {
	switch law {
	case config.LawLookBothWays:
		return &lookBothWays{p: p}, nil
	case config.LawLookForwardOnly:
		return &lookForwardOnly{p: p}, nil
	case config.LawRelativeVelocity:
		return &relativeVelocity{p: p}, nil
	case config.LawDirectAcceleration:
		return &directAcceleration{p: p}, nil
	default:
		return nil, fmt.Errorf("chain: unknown control law %q", law)
	}
}

// proportionalAccels 由目标速度与当前速度计算比例加速度
// 说明：速度目标族共用，acc = (target - v) * responseFactor，
// 即每步重新计算的一阶比例控制器
func proportionalAccels(targets, v [NumVehicles]float64, responseFactor float64) (accels [NumVehicles]float64) {
	for i := range targets {
		accels[i] = (targets[i] - v[i]) * responseFactor
	}
	return
}

// lookBothWays F1车同时观察前后车距的速度目标控制律
// 公式（目标速度相对基础速度v）：
//
//	F1: v + a11·λ1·λ2 + a10·λ1·(1-λ2) + a01·(1-λ1)·λ2 + a00·(1-λ1)·(1-λ2)
//	F2: v + b1·λ2 + b0·(1-λ2)
//	L:  v + c1·λ1 + c0·(1-λ1)
type lookBothWays struct {
	p *ControlParams
}

func (l *lookBothWays) name() config.Law { return config.LawLookBothWays }

func (l *lookBothWays) compute(m Mode, v [NumVehicles]float64, _ [2]float64) (targets, accels [NumVehicles]float64) {
	p := l.p
	l1, l2 := float64(m.Lambda1), float64(m.Lambda2)
	targets[VehicleF1] = p.BaseVelocity +
		p.A11*l1*l2 + p.A10*l1*(1-l2) + p.A01*(1-l1)*l2 + p.A00*(1-l1)*(1-l2)
	targets[VehicleF2] = p.BaseVelocity + p.B1*l2 + p.B0*(1-l2)
	targets[VehicleL] = p.BaseVelocity + p.C1*l1 + p.C0*(1-l1)
	return targets, proportionalAccels(targets, v, p.ResponseFactor)
}

// lookForwardOnly F1车只观察前车的速度目标控制律
// 公式与lookBothWays相同，只是F1改为两分支：
//
//	F1: v + a11·λ1 - a0·(1-λ1)
type lookForwardOnly struct {
	p *ControlParams
}

func (l *lookForwardOnly) name() config.Law { return config.LawLookForwardOnly }

func (l *lookForwardOnly) compute(m Mode, v [NumVehicles]float64, _ [2]float64) (targets, accels [NumVehicles]float64) {
	p := l.p
	l1, l2 := float64(m.Lambda1), float64(m.Lambda2)
	targets[VehicleF1] = p.BaseVelocity + p.A11*l1 - p.A0*(1-l1)
	targets[VehicleF2] = p.BaseVelocity + p.B1*l2 + p.B0*(1-l2)
	targets[VehicleL] = p.BaseVelocity + p.C1*l1 + p.C0*(1-l1)
	return targets, proportionalAccels(targets, v, p.ResponseFactor)
}

// relativeVelocity 目标速度相对当前速度的控制律
// 公式（无基础速度，车辆除受λ规则调整外保持当前速度）：
//
//	F1: v1 + a11·λ1 - a0·(1-λ1)
//	F2: v2 + b1·λ2 - b0·(1-λ2)
//	L:  v0 - c1·λ1 + c0·(1-λ1)
//
// 说明：头车系数符号取反，跟随车距离拉大时头车减速，防止车距无界增长
type relativeVelocity struct {
	p *ControlParams
}

func (l *relativeVelocity) name() config.Law { return config.LawRelativeVelocity }

func (l *relativeVelocity) compute(m Mode, v [NumVehicles]float64, _ [2]float64) (targets, accels [NumVehicles]float64) {
	p := l.p
	l1, l2 := float64(m.Lambda1), float64(m.Lambda2)
	targets[VehicleF1] = v[VehicleF1] + p.A11*l1 - p.A0*(1-l1)
	targets[VehicleF2] = v[VehicleF2] + p.B1*l2 - p.B0*(1-l2)
	targets[VehicleL] = v[VehicleL] - p.C1*l1 + p.C0*(1-l1)
	return targets, proportionalAccels(targets, v, p.ResponseFactor)
}

// directAcceleration 直接加速度控制律
// 公式（分段基础加速度叠加距离比例修正）：
//
//	F1: a11·λ1·λ2 + a10·λ1·(1-λ2) - a01·(1-λ1)·λ2 - a00·(1-λ1)·(1-λ2)
//	F2: b1·λ2 - b0·(1-λ2)
//	L:  -c1·λ1 + c0·(1-λ1)
//
// 跟随车再减去distanceGain·(targetDistance - gap)的修正项（车距小于目标
// 值时误差为正，需要减速），头车不参与距离修正
type directAcceleration struct {
	p *ControlParams
}

func (l *directAcceleration) name() config.Law { return config.LawDirectAcceleration }

func (l *directAcceleration) compute(m Mode, v [NumVehicles]float64, gaps [2]float64) (targets, accels [NumVehicles]float64) {
	p := l.p
	l1, l2 := float64(m.Lambda1), float64(m.Lambda2)
	accels[VehicleF1] = p.A11*l1*l2 + p.A10*l1*(1-l2) - p.A01*(1-l1)*l2 - p.A00*(1-l1)*(1-l2)
	accels[VehicleF2] = p.B1*l2 - p.B0*(1-l2)
	accels[VehicleL] = -p.C1*l1 + p.C0*(1-l1)

	// 距离比例修正
	accels[VehicleF1] -= p.DistanceGain * (p.TargetDistance - gaps[0])
	accels[VehicleF2] -= p.DistanceGain * (p.TargetDistance - gaps[1])

	// 无显式目标速度，记当前速度
	return v, accels
}
