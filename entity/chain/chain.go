package chain

import (
	"flag"
	"fmt"
	"time"

	"github.com/w0927/platoonsim/clock"
	"github.com/w0927/platoonsim/entity/track"
	"github.com/w0927/platoonsim/utils/config"
	"github.com/w0927/platoonsim/utils/randengine"
)

var heartbeatInterval = flag.Int("log.heartbeat_interval", 100, "仿真心跳日志间隔（步数），0表示关闭")

// Chain 三车跟驰车队仿真实例
// 功能：维护头车L与跟随车F1、F2的状态，按模式切换控制律逐步推进
// 说明：实例拥有独立的随机引擎与历史记录，多个实例可并行运行；
// 单实例内的方法不保证并发安全
type Chain struct {
	scen config.Scenario
	topo track.Topology

	params ControlParams
	law    controlLaw
	noise  *disturber
	engine *randengine.Engine

	clock       *clock.Clock
	stepsPerRun int32

	vehicles [NumVehicles]VehicleState
	gaps     [2]float64 // 当前观测车距 [L-F1, F1-F2]

	history *History
}

// New 从场景配置构造仿真实例
// 功能：补全默认值、校验配置、播种随机引擎并初始化车辆状态
// 算法说明：
//  1. ApplyDefaults补全安全约束缺省值后Validate做完整校验
//  2. 随机种子来自配置，缺省时按当前时间取种子（此时结果不可复现）
//  3. 初始车距由初始位置在对应拓扑上直接计算
func New(scen config.Scenario) (*Chain, error) {
	scen.ApplyDefaults()
	if err := scen.Validate(); err != nil {
		return nil, fmt.Errorf("chain: bad scenario: %w", err)
	}
	topo, err := track.New(track.Kind(scen.Track.Topology), scen.Track.Length)
	if err != nil {
		return nil, fmt.Errorf("chain: bad scenario %s: %w", scen.Name, err)
	}
	params := newControlParams(scen)
	law, err := newControlLaw(scen.Law, &params)
	if err != nil {
		return nil, err
	}

	var seed uint64
	if scen.Disturbance.Seed != nil {
		seed = *scen.Disturbance.Seed
	} else {
		seed = uint64(time.Now().UnixNano())
	}
	engine := randengine.New(seed)

	c := &Chain{
		scen:        scen,
		topo:        topo,
		params:      params,
		law:         law,
		noise:       newDisturber(scen.Disturbance, engine),
		engine:      engine,
		clock:       clock.New(scen.Step.Interval, scen.Step.TMax),
		history:     newHistory(),
	}
	c.stepsPerRun = c.clock.END_STEP - c.clock.START_STEP
	for i := range c.vehicles {
		c.vehicles[i] = VehicleState{
			Position: scen.Init.Positions[i],
			Velocity: scen.Init.Velocities[i],
		}
	}
	c.gaps[0] = topo.Gap(c.vehicles[VehicleL].Position, c.vehicles[VehicleF1].Position)
	c.gaps[1] = topo.Gap(c.vehicles[VehicleF1].Position, c.vehicles[VehicleF2].Position)
	return c, nil
}

// Step 推进一个模拟步
// 算法说明：
//  1. 按当前车距分类模式
//  2. 控制律计算目标速度与原始加速度
//  3. 注入驾驶噪声（如启用）后施加安全约束
//  4. 显式欧拉积分得到新状态与新车距
//  5. 追加历史记录并推进时钟
//
// 说明：记录中的位置、车距与模式为本步决策所依据的观测值，
// 速度与加速度为本步产生的结果
func (c *Chain) Step() {
	m := Classify(c.gaps[0], c.gaps[1], c.params.DistanceThreshold)

	var v [NumVehicles]float64
	var positions [NumVehicles]float64
	for i := range c.vehicles {
		v[i] = c.vehicles[i].Velocity
		positions[i] = c.vehicles[i].Position
	}
	targets, raw := c.law.compute(m, v, c.gaps)
	raw = c.noise.perturbAccels(raw)
	accels, emergency := govern(&c.params, raw, c.gaps)

	next, gaps, leadNoise, preVL := integrate(
		c.topo, &c.params, c.noise, c.clock.T, c.clock.DT, c.vehicles, accels)

	var newV [NumVehicles]float64
	for i := range next {
		newV[i] = next[i].Velocity
	}
	c.history.append(Record{
		Time:             c.clock.T,
		Positions:        positions,
		Velocities:       newV,
		Gaps:             c.gaps,
		Mode:             m,
		Targets:          targets,
		Accels:           accels,
		Emergency:        emergency,
		LeadDisturbance:  leadNoise,
		PreDisturbanceVL: preVL,
	})

	c.vehicles = next
	c.gaps = gaps
	c.clock.Tick()

	if *heartbeatInterval > 0 && int(c.clock.InternalStep)%*heartbeatInterval == 0 {
		log.Debugf("scenario %s step %d (t=%s): gaps=[%.2f %.2f] mode=%s",
			c.scen.Name, c.clock.InternalStep, c.clock, c.gaps[0], c.gaps[1], m)
	}
}

// Run 运行一轮完整仿真
// 功能：从当前状态连续推进t_max/interval个模拟步
// 说明：重复调用为续跑语义，状态与历史在上一轮末尾基础上继续，
// 时钟不回绕，需要全新轨迹时应重新构造实例
func (c *Chain) Run() {
	start := time.Now()
	for i := int32(0); i < c.stepsPerRun; i++ {
		c.Step()
	}
	log.Infof("scenario %s: ran %d steps to t=%.1fs in %v",
		c.scen.Name, c.stepsPerRun, c.clock.T, time.Since(start))
}

// Name 场景名
func (c *Chain) Name() string { return c.scen.Name }

// History 仿真历史（只追加，调用方不应修改）
func (c *Chain) History() *History { return c.history }

// Vehicles 当前车辆状态快照
func (c *Chain) Vehicles() [NumVehicles]VehicleState { return c.vehicles }

// Gaps 当前观测车距 [L-F1, F1-F2]
func (c *Chain) Gaps() [2]float64 { return c.gaps }

// T 当前仿真时间（秒）
func (c *Chain) T() float64 { return c.clock.T }
