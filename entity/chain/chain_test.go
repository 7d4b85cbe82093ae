package chain_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w0927/platoonsim/entity/chain"
	"github.com/w0927/platoonsim/utils/config"
)

// ringScenario 环形轨道上全零系数的基准场景，所有车辆匀速前进
func ringScenario() config.Scenario {
	return config.Scenario{
		Name: "test-ring",
		Law:  config.LawLookBothWays,
		Track: config.Track{
			Topology: "ring",
			Length:   1000,
		},
		Step: config.ControlStep{Interval: 5, TMax: 5},
		Init: config.Init{
			Positions:  []float64{200, 150, 100},
			Velocities: []float64{20, 20, 20},
		},
		Threshold: config.Threshold{Value: 50},
	}
}

func TestNewRejectsBadScenario(t *testing.T) {
	scen := ringScenario()
	scen.Law = "no_such_law"
	_, err := chain.New(scen)
	assert.Error(t, err)

	scen = ringScenario()
	scen.Init.Positions = []float64{1, 2}
	_, err = chain.New(scen)
	assert.Error(t, err)

	// 开放轨道初始车距低于最小安全车距：第一条历史记录就会违反
	// 位置级硬约束，构造期直接拒绝
	scen = ringScenario()
	scen.Track = config.Track{Topology: "open"}
	scen.Init.Positions = []float64{100, 98, 96}
	_, err = chain.New(scen)
	assert.Error(t, err)
}

func TestZeroCoefficientUniformMotion(t *testing.T) {
	// 全零系数时加速度恒为0，单步后所有车前进v·dt=100米
	scen := ringScenario()
	scen.Threshold = config.Threshold{Value: 30}
	c, err := chain.New(scen)
	require.NoError(t, err)
	c.Run()

	h := c.History()
	require.Equal(t, 1, h.Len())
	vehicles := c.Vehicles()
	assert.InDelta(t, 300, vehicles[chain.VehicleL].Position, 1e-9)
	assert.InDelta(t, 250, vehicles[chain.VehicleF1].Position, 1e-9)
	assert.InDelta(t, 200, vehicles[chain.VehicleF2].Position, 1e-9)
	for i := range vehicles {
		assert.InDelta(t, 20, vehicles[i].Velocity, 1e-9)
	}
	assert.InDelta(t, 0, h.AccelL[0], 1e-9)
	assert.InDelta(t, 50, h.GapLF1[0], 1e-9)
	assert.InDelta(t, 50, h.GapF1F2[0], 1e-9)
}

func TestEmergencyHardBrake(t *testing.T) {
	scen := config.Scenario{
		Name: "test-emergency",
		Law:  config.LawLookBothWays,
		Track: config.Track{
			Topology: "open",
		},
		Step: config.ControlStep{Interval: 1, TMax: 1},
		Init: config.Init{
			// L-F1车距5米，低于0.6*40=24的紧急制动距离
			Positions:  []float64{100, 95, 40},
			Velocities: []float64{20, 20, 20},
		},
		Threshold: config.Threshold{Value: 40},
	}
	c, err := chain.New(scen)
	require.NoError(t, err)
	c.Step()

	h := c.History()
	require.Equal(t, 1, h.Len())
	// 控制律要求0加速度，紧急制动仍强制-3
	assert.InDelta(t, -3, h.AccelF1[0], 1e-9)
	assert.InDelta(t, 0, h.AccelL[0], 1e-9)
	assert.InDelta(t, 0, h.AccelF2[0], 1e-9)
	assert.InDelta(t, 17, h.VF1[0], 1e-9)
}

func TestOpenMinSafeGapRepair(t *testing.T) {
	// F1初速远高于头车，车距很快跌破最小安全距离并被位置修复
	scen := config.Scenario{
		Name: "test-min-gap",
		Law:  config.LawLookBothWays,
		Track: config.Track{
			Topology: "open",
		},
		Step: config.ControlStep{Interval: 1, TMax: 20},
		Init: config.Init{
			Positions:  []float64{120, 100, 50},
			Velocities: []float64{5, 35, 35},
		},
		Threshold: config.Threshold{Value: 100},
		Safety:    config.Safety{HardBrakeAccel: lo.ToPtr(-0.1), MaxBrakingAccel: lo.ToPtr(-0.1)},
	}
	c, err := chain.New(scen)
	require.NoError(t, err)
	c.Run()

	h := c.History()
	for i := 0; i < h.Len(); i++ {
		assert.GreaterOrEqual(t, h.GapLF1[i], 5.0-1e-9, "step %d", i)
		assert.GreaterOrEqual(t, h.GapF1F2[i], 5.0-1e-9, "step %d", i)
	}
	gaps := c.Gaps()
	assert.GreaterOrEqual(t, gaps[0], 5.0-1e-9)
	assert.GreaterOrEqual(t, gaps[1], 5.0-1e-9)
}

func TestFollowerVelocityCeilingPerLeader(t *testing.T) {
	// F1的相对上限以头车为基准，F2以封顶后的F1为基准：
	// 头车很快而F1很慢时，F2不得借头车的速度上限超越F1
	scen := ringScenario()
	scen.Name = "test-follower-ceiling"
	scen.Step = config.ControlStep{Interval: 1, TMax: 1}
	scen.Init.Velocities = []float64{35, 6, 30}
	scen.Safety = config.Safety{FollowerMaxVRatio: 1.1}
	c, err := chain.New(scen)
	require.NoError(t, err)
	c.Step()

	vehicles := c.Vehicles()
	assert.InDelta(t, 35, vehicles[chain.VehicleL].Velocity, 1e-9)
	assert.InDelta(t, 6, vehicles[chain.VehicleF1].Velocity, 1e-9)
	assert.InDelta(t, 6.6, vehicles[chain.VehicleF2].Velocity, 1e-9)
}

func TestDisturbanceGating(t *testing.T) {
	scen := ringScenario()
	scen.Name = "test-gating"
	scen.Step = config.ControlStep{Interval: 2, TMax: 160}
	scen.Disturbance = config.Disturbance{
		Enabled:   true,
		Std:       5,
		StartTime: 150,
		Seed:      lo.ToPtr(uint64(42)),
	}
	c, err := chain.New(scen)
	require.NoError(t, err)
	c.Run()

	h := c.History()
	require.Equal(t, 80, h.Len())
	sawNonzero := false
	for i := 0; i < h.Len(); i++ {
		d := h.Disturbance[i]
		if h.Time[i] < 150 {
			assert.Zero(t, d, "disturbance before start_time at t=%v", h.Time[i])
		} else if d != 0 {
			sawNonzero = true
		}
		// 截断到±3σ
		assert.LessOrEqual(t, math.Abs(d), 15.0+1e-9)
	}
	assert.True(t, sawNonzero, "expected at least one nonzero sample after start_time")
}

func TestDeterminismWithSeed(t *testing.T) {
	scen := ringScenario()
	scen.Name = "test-determinism"
	scen.Step = config.ControlStep{Interval: 1, TMax: 100}
	scen.Disturbance = config.Disturbance{
		Enabled: true,
		Std:     3,
		Seed:    lo.ToPtr(uint64(7)),
	}
	run := func() *chain.History {
		c, err := chain.New(scen)
		require.NoError(t, err)
		c.Run()
		return c.History()
	}
	h1, h2 := run(), run()
	assert.Equal(t, h1.Disturbance, h2.Disturbance)
	assert.Equal(t, h1.VL, h2.VL)
	assert.Equal(t, h1.PosL, h2.PosL)
	assert.Equal(t, h1.Mode, h2.Mode)
}

func TestRerunContinues(t *testing.T) {
	scen := ringScenario()
	scen.Name = "test-rerun"
	scen.Step = config.ControlStep{Interval: 1, TMax: 10}
	c, err := chain.New(scen)
	require.NoError(t, err)

	c.Run()
	require.Equal(t, 10, c.History().Len())
	assert.InDelta(t, 10, c.T(), 1e-9)

	// 重复运行为续跑：历史追加，时间不回绕
	c.Run()
	h := c.History()
	require.Equal(t, 20, h.Len())
	assert.InDelta(t, 20, c.T(), 1e-9)
	assert.InDelta(t, 10, h.Time[10], 1e-9)
}

func TestPresetScenarioProperties(t *testing.T) {
	// 所有预置场景（覆盖全部四种控制律）的通用性质：
	// 速度始终在限速区间内，模式记录与车距观测一致
	for _, scen := range config.Presets().Scenarios {
		t.Run(scen.Name, func(t *testing.T) {
			withDefaults := scen
			withDefaults.ApplyDefaults()
			d, _, _ := scen.Threshold.Resolve()

			c, err := chain.New(scen)
			require.NoError(t, err)
			c.Run()

			h := c.History()
			require.Equal(t, int(scen.Step.TMax/scen.Step.Interval), h.Len())
			for i := 0; i < h.Len(); i++ {
				for name, v := range map[string]float64{"L": h.VL[i], "F1": h.VF1[i], "F2": h.VF2[i]} {
					assert.LessOrEqual(t, v, *withDefaults.Safety.MaxSpeed+1e-9,
						"%s over speed limit at step %d", name, i)
					if withDefaults.Safety.FollowerMaxVRatio == 0 {
						assert.GreaterOrEqual(t, v, *withDefaults.Safety.MinSpeed-1e-9,
							"%s under speed floor at step %d", name, i)
					}
				}
				wantL1 := 0
				if h.GapLF1[i] > d {
					wantL1 = 1
				}
				wantL2 := 0
				if h.GapF1F2[i] > d {
					wantL2 = 1
				}
				assert.Equal(t, wantL1, h.Lambda1[i], "lambda1 at step %d", i)
				assert.Equal(t, wantL2, h.Lambda2[i], "lambda2 at step %d", i)
				assert.Equal(t, fmt.Sprintf("%d%d", wantL1, wantL2), h.Mode[i])
			}
		})
	}
}
