package config

// Law 控制律变体名
// 功能：标识一次仿真使用的控制律计算方式
// 说明：四种变体共享同一输入输出约定，只是公式不同，可在配置中任意切换
type Law string

const (
	// LawLookBothWays F1车同时观察前后车距的四分支速度目标控制律
	LawLookBothWays Law = "look_both_ways"
	// LawLookForwardOnly F1车只观察前车的两分支速度目标控制律
	LawLookForwardOnly Law = "look_forward_only"
	// LawRelativeVelocity 目标速度相对当前速度的控制律（头车系数符号取反）
	LawRelativeVelocity Law = "relative_velocity"
	// LawDirectAcceleration 直接给出分段加速度并叠加距离比例修正的控制律
	LawDirectAcceleration Law = "direct_acceleration"
)

// Laws 所有已知控制律变体
var Laws = []Law{LawLookBothWays, LawLookForwardOnly, LawRelativeVelocity, LawDirectAcceleration}

// ControlStep 指定模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
type ControlStep struct {
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
	TMax     float64 `yaml:"t_max"`    // 总仿真时长（秒），总步数为t_max/interval
}

// Track 轨道拓扑配置
type Track struct {
	Topology string  `yaml:"topology"`         // 拓扑类型（open或ring）
	Length   float64 `yaml:"length,omitempty"` // 环形轨道周长（米），开放轨道忽略
}

// Init 三车初始状态配置
// 说明：两个列表都必须恰好包含3个元素，顺序为[L, F1, F2]
type Init struct {
	Positions  []float64 `yaml:"positions"`  // 初始位置（米）
	Velocities []float64 `yaml:"velocities"` // 初始速度（米/秒）
}

// Threshold 距离阈值配置
// 功能：定义模式切换的距离阈值d
// 说明：标量形式直接给value；区间形式给min/max，取中点作为阈值，
// 区间边界保留为安全边界参考值
type Threshold struct {
	Value float64 `yaml:"value,omitempty"` // 阈值（标量形式）
	Min   float64 `yaml:"min,omitempty"`   // 阈值区间下界
	Max   float64 `yaml:"max,omitempty"`   // 阈值区间上界
}

// IsRange 是否为区间形式
func (t Threshold) IsRange() bool {
	return t.Min != 0 || t.Max != 0
}

// Resolve 解析出标量阈值与安全边界
// 返回：阈值d、下界、上界
// 算法说明：
// 1. 区间形式：d取中点(min+max)/2，边界即区间端点
// 2. 标量形式：d取value，边界为d±10（与原模型约定一致）
func (t Threshold) Resolve() (d, min, max float64) {
	if t.IsRange() {
		return (t.Min + t.Max) / 2, t.Min, t.Max
	}
	return t.Value, t.Value - 10, t.Value + 10
}

// Params 控制律系数配置
// 说明：不同控制律使用不同的子集：
// look_both_ways使用a11/a10/a01/a00；look_forward_only与relative_velocity
// 使用a11/a0；direct_acceleration使用a11/a10/a01/a00加距离修正项。
// b1/b0为F2车系数，c1/c0为L车系数，符号约定随变体不同（见chain/law.go）
type Params struct {
	A11 float64 `yaml:"a11,omitempty"`
	A10 float64 `yaml:"a10,omitempty"`
	A01 float64 `yaml:"a01,omitempty"`
	A00 float64 `yaml:"a00,omitempty"`
	A0  float64 `yaml:"a0,omitempty"`
	B1  float64 `yaml:"b1,omitempty"`
	B0  float64 `yaml:"b0,omitempty"`
	C1  float64 `yaml:"c1,omitempty"`
	C0  float64 `yaml:"c0,omitempty"`

	BaseVelocity   float64 `yaml:"base_velocity,omitempty"`   // 系统基础速度v（速度目标族使用）
	ResponseFactor float64 `yaml:"response_factor,omitempty"` // 速度响应系数（控制加速度大小）
	TargetDistance float64 `yaml:"target_distance,omitempty"` // 期望保持的车距（direct_acceleration使用）
	DistanceGain   float64 `yaml:"distance_gain,omitempty"`   // 距离误差比例系数（direct_acceleration使用）
}

// Safety 安全约束配置
// 说明：指针字段区分"未设置"与"显式设为0"，未设置的字段由ApplyDefaults
// 填充缺省值，显式的0（如min_speed: 0或min_safe_gap: 0）原样生效
type Safety struct {
	MaxAccel           *float64 `yaml:"max_accel,omitempty"`            // 最大加速度（米/秒²）
	MaxBrakingAccel    *float64 `yaml:"max_braking_accel,omitempty"`    // 最大制动加速度（负值）
	HardBrakeAccel     *float64 `yaml:"hard_brake_accel,omitempty"`     // 紧急制动加速度（负值）
	EmergencyGapFactor *float64 `yaml:"emergency_gap_factor,omitempty"` // 紧急制动距离与阈值的比例（0表示关闭紧急制动）
	MinSafeGap         *float64 `yaml:"min_safe_gap,omitempty"`         // 最小安全车距（米，开放轨道硬约束，0表示关闭）
	MinSpeed           *float64 `yaml:"min_speed,omitempty"`            // 速度下限（米/秒）
	MaxSpeed           *float64 `yaml:"max_speed,omitempty"`            // 速度上限（米/秒）
	FollowerMaxVRatio  float64  `yaml:"follower_max_v_ratio,omitempty"` // 跟随车相对各自前车的速度上限比例（0表示不启用）
}

// Disturbance 随机扰动配置
// 功能：定义头车速度白噪声与可选的驾驶加速度噪声
type Disturbance struct {
	Enabled   bool    `yaml:"enabled,omitempty"`    // 是否启用头车速度白噪声
	Std       float64 `yaml:"std,omitempty"`        // 噪声标准差（米/秒）
	StartTime float64 `yaml:"start_time,omitempty"` // 噪声开始时间（秒），之前扰动值恒为0
	Seed      *uint64 `yaml:"seed,omitempty"`       // 随机种子，缺省时按时间取种子（复现实验必须给定）

	DriverNoiseStd float64 `yaml:"driver_noise_std,omitempty"` // 三车加速度驾驶噪声标准差（0表示关闭）
	LeadBurstProb  float64 `yaml:"lead_burst_prob,omitempty"`  // 头车额外突发扰动的每步概率
	LeadBurstStd   float64 `yaml:"lead_burst_std,omitempty"`   // 头车突发扰动标准差
}

// Scenario 单个仿真场景配置
// 功能：一次独立仿真运行所需的全部构造参数
type Scenario struct {
	Name        string      `yaml:"name"`                  // 场景名
	Law         Law         `yaml:"law"`                   // 控制律变体
	Track       Track       `yaml:"track"`                 // 轨道拓扑
	Step        ControlStep `yaml:"step"`                  // 时间控制
	Init        Init        `yaml:"init"`                  // 初始状态
	Threshold   Threshold   `yaml:"threshold"`             // 距离阈值
	Params      Params      `yaml:"params"`                // 控制律系数
	Safety      Safety      `yaml:"safety,omitempty"`      // 安全约束
	Disturbance Disturbance `yaml:"disturbance,omitempty"` // 随机扰动
}

// Config YAML配置文件的根结构
type Config struct {
	Scenarios []Scenario `yaml:"scenarios"` // 场景列表，各场景相互独立并可并行运行
}
