package chain

// Record 单步记录
// 说明：记录的是该步决策所依据的观测量（位置、车距、模式）与该步产生的
// 控制量（目标速度、加速度），速度为积分后的新值
type Record struct {
	Time              float64            // 仿真时间（秒）
	Positions         [NumVehicles]float64 // 各车位置（环形道路上已取模）
	Velocities        [NumVehicles]float64 // 积分后速度
	Gaps              [2]float64         // 决策时观测车距 [L-F1, F1-F2]
	Mode              Mode               // 决策时模式
	Targets           [NumVehicles]float64 // 目标速度
	Accels            [NumVehicles]float64 // 约束后加速度
	Emergency         [NumVehicles]bool  // 紧急制动标志
	LeadDisturbance   float64            // 头车速度扰动采样值
	PreDisturbanceVL  float64            // 注入扰动前的头车速度
}

// History 仿真历史，按列存储的只追加日志
// 说明：场景的多次Run共用同一份历史，重复运行为续写而非重置
type History struct {
	Time             []float64
	PosL, PosF1, PosF2 []float64
	VL, VF1, VF2     []float64
	GapLF1, GapF1F2  []float64
	Lambda1, Lambda2 []int
	Mode             []string
	TargetVL, TargetVF1, TargetVF2 []float64
	AccelL, AccelF1, AccelF2       []float64
	Disturbance      []float64
	PreDisturbanceVL []float64
}

func newHistory() *History {
	return &History{}
}

// Len 已记录步数
func (h *History) Len() int { return len(h.Time) }

func (h *History) append(r Record) {
	h.Time = append(h.Time, r.Time)
	h.PosL = append(h.PosL, r.Positions[VehicleL])
	h.PosF1 = append(h.PosF1, r.Positions[VehicleF1])
	h.PosF2 = append(h.PosF2, r.Positions[VehicleF2])
	h.VL = append(h.VL, r.Velocities[VehicleL])
	h.VF1 = append(h.VF1, r.Velocities[VehicleF1])
	h.VF2 = append(h.VF2, r.Velocities[VehicleF2])
	h.GapLF1 = append(h.GapLF1, r.Gaps[0])
	h.GapF1F2 = append(h.GapF1F2, r.Gaps[1])
	h.Lambda1 = append(h.Lambda1, r.Mode.Lambda1)
	h.Lambda2 = append(h.Lambda2, r.Mode.Lambda2)
	h.Mode = append(h.Mode, r.Mode.String())
	h.TargetVL = append(h.TargetVL, r.Targets[VehicleL])
	h.TargetVF1 = append(h.TargetVF1, r.Targets[VehicleF1])
	h.TargetVF2 = append(h.TargetVF2, r.Targets[VehicleF2])
	h.AccelL = append(h.AccelL, r.Accels[VehicleL])
	h.AccelF1 = append(h.AccelF1, r.Accels[VehicleF1])
	h.AccelF2 = append(h.AccelF2, r.Accels[VehicleF2])
	h.Disturbance = append(h.Disturbance, r.LeadDisturbance)
	h.PreDisturbanceVL = append(h.PreDisturbanceVL, r.PreDisturbanceVL)
}
