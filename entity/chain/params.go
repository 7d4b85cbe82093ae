package chain

import "github.com/w0927/platoonsim/utils/config"

// 车辆在车队中的下标
const (
	VehicleL  = iota // 头车L
	VehicleF1        // 跟随车F1
	VehicleF2        // 跟随车F2
	NumVehicles
)

// VehicleState 单车状态
// 说明：仅由积分器在每个模拟步内修改，仿真实例独占所有权
type VehicleState struct {
	Position float64 // 位置（米）
	Velocity float64 // 速度（米/秒）
}

// ControlParams 控制参数集
// 功能：保存一次仿真全程固定不变的控制律系数与安全约束
// 说明：构造时从场景配置换算得到（阈值区间形式在此取中点），之后只读
type ControlParams struct {
	// 控制律系数

	A11, A10, A01, A00 float64 // F1车四分支系数（look_both_ways/direct_acceleration）
	A0                 float64 // F1车前车近时的系数（两分支变体）
	B1, B0             float64 // F2车系数
	C1, C0             float64 // L车系数
	BaseVelocity       float64 // 系统基础速度v
	ResponseFactor     float64 // 速度响应系数
	TargetDistance     float64 // 期望保持的车距
	DistanceGain       float64 // 距离误差比例系数

	// 阈值与安全约束

	DistanceThreshold  float64 // 模式切换距离阈值d
	MinSafeGap         float64 // 最小安全车距（开放轨道位置级硬约束）
	EmergencyGapFactor float64 // 紧急制动距离与阈值的比例
	HardBrakeA         float64 // 紧急制动加速度（负值）
	MaxA               float64 // 最大加速度
	MaxBrakingA        float64 // 最大制动加速度（负值）
	MinV, MaxV         float64 // 速度范围
	FollowerMaxVRatio  float64 // 跟随车相对前车的速度上限比例（0表示不启用）
}

// newControlParams 从场景配置换算控制参数
// 说明：阈值的区间形式在此解析为中点标量；
// 调用方保证场景已通过ApplyDefaults与Validate（安全字段非nil）
func newControlParams(scen config.Scenario) ControlParams {
	d, _, _ := scen.Threshold.Resolve()
	return ControlParams{
		A11: scen.Params.A11, A10: scen.Params.A10,
		A01: scen.Params.A01, A00: scen.Params.A00,
		A0: scen.Params.A0,
		B1: scen.Params.B1, B0: scen.Params.B0,
		C1: scen.Params.C1, C0: scen.Params.C0,
		BaseVelocity:   scen.Params.BaseVelocity,
		ResponseFactor: scen.Params.ResponseFactor,
		TargetDistance: scen.Params.TargetDistance,
		DistanceGain:   scen.Params.DistanceGain,

		DistanceThreshold:  d,
		MinSafeGap:         *scen.Safety.MinSafeGap,
		EmergencyGapFactor: *scen.Safety.EmergencyGapFactor,
		HardBrakeA:         *scen.Safety.HardBrakeAccel,
		MaxA:               *scen.Safety.MaxAccel,
		MaxBrakingA:        *scen.Safety.MaxBrakingAccel,
		MinV:               *scen.Safety.MinSpeed,
		MaxV:               *scen.Safety.MaxSpeed,
		FollowerMaxVRatio:  scen.Safety.FollowerMaxVRatio,
	}
}
