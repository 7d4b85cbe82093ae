package config

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/w0927/platoonsim/entity/track"
)

// 缺省安全参数，与原模型的安全约束取值一致
const (
	defaultMaxAccel           = 3.0
	defaultMaxBrakingAccel    = -4.0
	defaultHardBrakeAccel     = -3.0
	defaultEmergencyGapFactor = 0.6
	defaultMinSafeGap         = 5.0
	defaultMinSpeed           = 5.0
	defaultMaxSpeed           = 35.0
)

// numVehicles 车队规模：头车L加两辆跟随车F1、F2
const numVehicles = 3

// ApplyDefaults 填充安全约束的缺省值
// 功能：将未设置（nil）的安全参数替换为缺省值
// 说明：显式设置的值（包括0，如min_speed: 0）不被覆盖；
// 控制律系数不做缺省处理，零系数是合法的实验配置
func (s *Scenario) ApplyDefaults() {
	if s.Safety.MaxAccel == nil {
		s.Safety.MaxAccel = lo.ToPtr(defaultMaxAccel)
	}
	if s.Safety.MaxBrakingAccel == nil {
		s.Safety.MaxBrakingAccel = lo.ToPtr(defaultMaxBrakingAccel)
	}
	if s.Safety.HardBrakeAccel == nil {
		s.Safety.HardBrakeAccel = lo.ToPtr(defaultHardBrakeAccel)
	}
	if s.Safety.EmergencyGapFactor == nil {
		s.Safety.EmergencyGapFactor = lo.ToPtr(defaultEmergencyGapFactor)
	}
	if s.Safety.MinSafeGap == nil {
		s.Safety.MinSafeGap = lo.ToPtr(defaultMinSafeGap)
	}
	if s.Safety.MinSpeed == nil {
		s.Safety.MinSpeed = lo.ToPtr(defaultMinSpeed)
	}
	if s.Safety.MaxSpeed == nil {
		s.Safety.MaxSpeed = lo.ToPtr(defaultMaxSpeed)
	}
}

// Validate 校验单个场景配置
// 功能：执行所有构造期配置检查，发现问题立即返回错误
// 算法说明：
// 1. 场景名与控制律变体必须合法
// 2. 轨道拓扑通过track.New校验
// 3. 时间参数必须为正且至少产生一个模拟步
// 4. 初始位置与速度列表长度必须恰好为3
// 5. 开放轨道要求初始坐标满足L>F1>F2（头车在前的坐标约定），
//    且初始车距不低于最小安全车距
// 6. 阈值、安全参数、扰动参数的取值范围检查
// 说明：配置错误在构造期快速失败，仿真循环自身从不因物理极端状态中止
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("config: scenario name must not be empty")
	}
	if !lo.Contains(Laws, s.Law) {
		return fmt.Errorf("config: scenario %s: unknown law %q (must be one of %v)", s.Name, s.Law, Laws)
	}
	tp, err := track.New(track.Kind(s.Track.Topology), s.Track.Length)
	if err != nil {
		return fmt.Errorf("config: scenario %s: %w", s.Name, err)
	}
	if s.Step.Interval <= 0 {
		return fmt.Errorf("config: scenario %s: step interval must be positive, got %v", s.Name, s.Step.Interval)
	}
	if s.Step.TMax <= 0 {
		return fmt.Errorf("config: scenario %s: t_max must be positive, got %v", s.Name, s.Step.TMax)
	}
	if int(s.Step.TMax/s.Step.Interval) < 1 {
		return fmt.Errorf("config: scenario %s: t_max %v with interval %v yields no steps", s.Name, s.Step.TMax, s.Step.Interval)
	}
	if len(s.Init.Positions) != numVehicles {
		return fmt.Errorf("config: scenario %s: init positions must contain exactly %d values, got %d", s.Name, numVehicles, len(s.Init.Positions))
	}
	if len(s.Init.Velocities) != numVehicles {
		return fmt.Errorf("config: scenario %s: init velocities must contain exactly %d values, got %d", s.Name, numVehicles, len(s.Init.Velocities))
	}
	if !tp.IsRing() {
		// 开放轨道的坐标约定：头车始终在前
		if !(s.Init.Positions[0] > s.Init.Positions[1] && s.Init.Positions[1] > s.Init.Positions[2]) {
			return fmt.Errorf("config: scenario %s: open track requires positions ordered L > F1 > F2, got %v", s.Name, s.Init.Positions)
		}
		// 初始车距不得低于最小安全车距，否则第一条历史记录就会违反
		// 位置级硬约束
		if s.Safety.MinSafeGap != nil {
			minGap := *s.Safety.MinSafeGap
			if s.Init.Positions[0]-s.Init.Positions[1] < minGap || s.Init.Positions[1]-s.Init.Positions[2] < minGap {
				return fmt.Errorf("config: scenario %s: open track initial gaps must be at least min_safe_gap %v, got positions %v", s.Name, minGap, s.Init.Positions)
			}
		}
	}
	if s.Threshold.IsRange() {
		if s.Threshold.Value != 0 {
			return fmt.Errorf("config: scenario %s: threshold value and min/max are mutually exclusive", s.Name)
		}
		if s.Threshold.Min <= 0 || s.Threshold.Max <= s.Threshold.Min {
			return fmt.Errorf("config: scenario %s: threshold range must satisfy 0 < min < max, got [%v, %v]", s.Name, s.Threshold.Min, s.Threshold.Max)
		}
	} else if s.Threshold.Value <= 0 {
		return fmt.Errorf("config: scenario %s: threshold must be positive, got %v", s.Name, s.Threshold.Value)
	}
	// 校验要求先经过ApplyDefaults，未填充的安全参数一律视为非法
	for name, p := range map[string]*float64{
		"max_accel": s.Safety.MaxAccel, "max_braking_accel": s.Safety.MaxBrakingAccel,
		"hard_brake_accel": s.Safety.HardBrakeAccel, "emergency_gap_factor": s.Safety.EmergencyGapFactor,
		"min_safe_gap": s.Safety.MinSafeGap, "min_speed": s.Safety.MinSpeed, "max_speed": s.Safety.MaxSpeed,
	} {
		if p == nil {
			return fmt.Errorf("config: scenario %s: safety field %s is unset (ApplyDefaults must run before Validate)", s.Name, name)
		}
	}
	if *s.Safety.MaxAccel <= 0 {
		return fmt.Errorf("config: scenario %s: max_accel must be positive, got %v", s.Name, *s.Safety.MaxAccel)
	}
	if *s.Safety.MaxBrakingAccel >= 0 {
		return fmt.Errorf("config: scenario %s: max_braking_accel must be negative, got %v", s.Name, *s.Safety.MaxBrakingAccel)
	}
	if *s.Safety.HardBrakeAccel >= 0 {
		return fmt.Errorf("config: scenario %s: hard_brake_accel must be negative, got %v", s.Name, *s.Safety.HardBrakeAccel)
	}
	if *s.Safety.MinSpeed > *s.Safety.MaxSpeed {
		return fmt.Errorf("config: scenario %s: min_speed %v exceeds max_speed %v", s.Name, *s.Safety.MinSpeed, *s.Safety.MaxSpeed)
	}
	if *s.Safety.MinSafeGap < 0 || *s.Safety.EmergencyGapFactor < 0 || s.Safety.FollowerMaxVRatio < 0 {
		return fmt.Errorf("config: scenario %s: safety distances and ratios must not be negative", s.Name)
	}
	if s.Disturbance.Std < 0 || s.Disturbance.StartTime < 0 {
		return fmt.Errorf("config: scenario %s: disturbance std and start_time must not be negative", s.Name)
	}
	if s.Disturbance.DriverNoiseStd < 0 || s.Disturbance.LeadBurstStd < 0 {
		return fmt.Errorf("config: scenario %s: noise std must not be negative", s.Name)
	}
	if s.Disturbance.LeadBurstProb < 0 || s.Disturbance.LeadBurstProb > 1 {
		return fmt.Errorf("config: scenario %s: lead_burst_prob must be in [0, 1], got %v", s.Name, s.Disturbance.LeadBurstProb)
	}
	return nil
}

// RuntimeConfig 运行时配置
// 功能：存储校验并填充缺省值后的配置信息
// 说明：将YAML配置转换为运行时可用的配置对象
type RuntimeConfig struct {
	All       Config              // 全部配置
	Scenarios []Scenario          // 校验后的场景列表
	byName    map[string]Scenario // 按场景名索引
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：填充缺省值、逐场景校验并建立名字索引
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针与错误信息
// 说明：任何一个场景校验失败都会使整个构造失败（配置错误属于致命错误）
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("config: at least one scenario must be specified")
	}
	rc := &RuntimeConfig{All: config}
	rc.Scenarios = make([]Scenario, 0, len(config.Scenarios))
	rc.byName = make(map[string]Scenario, len(config.Scenarios))
	for _, s := range config.Scenarios {
		s.ApplyDefaults()
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, ok := rc.byName[s.Name]; ok {
			return nil, fmt.Errorf("config: duplicated scenario name %q", s.Name)
		}
		rc.Scenarios = append(rc.Scenarios, s)
		rc.byName[s.Name] = s
	}
	return rc, nil
}

// ByName 获取按场景名索引的映射
func (rc *RuntimeConfig) ByName() map[string]Scenario {
	return rc.byName
}
