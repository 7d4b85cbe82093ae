package config_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w0927/platoonsim/utils/config"
)

func validScenario() config.Scenario {
	return config.Scenario{
		Name:  "t",
		Law:   config.LawLookBothWays,
		Track: config.Track{Topology: "ring", Length: 2000},
		Step:  config.ControlStep{Interval: 2, TMax: 300},
		Init: config.Init{
			Positions:  []float64{1000, 960, 930},
			Velocities: []float64{20, 20, 20},
		},
		Threshold: config.Threshold{Value: 40},
	}
}

func TestValidate(t *testing.T) {
	s := validScenario()
	s.ApplyDefaults()
	assert.NoError(t, s.Validate())

	// 初始状态列表长度错误
	s = validScenario()
	s.ApplyDefaults()
	s.Init.Velocities = []float64{20, 20}
	assert.Error(t, s.Validate())

	s = validScenario()
	s.ApplyDefaults()
	s.Init.Positions = []float64{1000, 960, 930, 900}
	assert.Error(t, s.Validate())

	// 非法时间参数
	s = validScenario()
	s.ApplyDefaults()
	s.Step.Interval = 0
	assert.Error(t, s.Validate())

	s = validScenario()
	s.ApplyDefaults()
	s.Step.TMax = -1
	assert.Error(t, s.Validate())

	// 非法轨道长度
	s = validScenario()
	s.ApplyDefaults()
	s.Track.Length = 0
	assert.Error(t, s.Validate())

	// 未知控制律
	s = validScenario()
	s.ApplyDefaults()
	s.Law = "pid"
	assert.Error(t, s.Validate())

	// 开放轨道要求L > F1 > F2
	s = validScenario()
	s.ApplyDefaults()
	s.Track = config.Track{Topology: "open"}
	s.Init.Positions = []float64{100, 150, 200}
	assert.Error(t, s.Validate())

	// 开放轨道初始车距不得低于最小安全车距（缺省5米）
	s = validScenario()
	s.ApplyDefaults()
	s.Track = config.Track{Topology: "open"}
	s.Init.Positions = []float64{100, 98, 96}
	assert.Error(t, s.Validate())

	// 恰好等于最小安全车距则合法
	s = validScenario()
	s.ApplyDefaults()
	s.Track = config.Track{Topology: "open"}
	s.Init.Positions = []float64{100, 95, 90}
	assert.NoError(t, s.Validate())

	// 未经ApplyDefaults的安全字段视为非法
	s = validScenario()
	assert.Error(t, s.Validate())
}

func TestThresholdResolve(t *testing.T) {
	// 标量形式
	d, min, max := (config.Threshold{Value: 40}).Resolve()
	assert.Equal(t, 40.0, d)
	assert.Equal(t, 30.0, min)
	assert.Equal(t, 50.0, max)

	// 区间形式取中点
	d, min, max = (config.Threshold{Min: 30, Max: 50}).Resolve()
	assert.Equal(t, 40.0, d)
	assert.Equal(t, 30.0, min)
	assert.Equal(t, 50.0, max)
}

func TestThresholdMutuallyExclusive(t *testing.T) {
	s := validScenario()
	s.ApplyDefaults()
	s.Threshold = config.Threshold{Value: 40, Min: 30, Max: 50}
	assert.Error(t, s.Validate())

	s.Threshold = config.Threshold{Min: 50, Max: 30}
	assert.Error(t, s.Validate())
}

func TestApplyDefaults(t *testing.T) {
	s := validScenario()
	s.ApplyDefaults()
	assert.Equal(t, 3.0, *s.Safety.MaxAccel)
	assert.Equal(t, -4.0, *s.Safety.MaxBrakingAccel)
	assert.Equal(t, -3.0, *s.Safety.HardBrakeAccel)
	assert.Equal(t, 0.6, *s.Safety.EmergencyGapFactor)
	assert.Equal(t, 5.0, *s.Safety.MinSafeGap)
	assert.Equal(t, 5.0, *s.Safety.MinSpeed)
	assert.Equal(t, 35.0, *s.Safety.MaxSpeed)

	// 已显式设置的值不被覆盖
	s = validScenario()
	s.Safety.MaxSpeed = lo.ToPtr(80.0)
	s.ApplyDefaults()
	assert.Equal(t, 80.0, *s.Safety.MaxSpeed)

	// 显式的0与"未设置"不同，不被缺省值覆盖
	s = validScenario()
	s.Safety.MinSpeed = lo.ToPtr(0.0)
	s.Safety.MinSafeGap = lo.ToPtr(0.0)
	s.Safety.EmergencyGapFactor = lo.ToPtr(0.0)
	s.ApplyDefaults()
	assert.Equal(t, 0.0, *s.Safety.MinSpeed)
	assert.Equal(t, 0.0, *s.Safety.MinSafeGap)
	assert.Equal(t, 0.0, *s.Safety.EmergencyGapFactor)
	assert.NoError(t, s.Validate())
}

func TestNewRuntimeConfig(t *testing.T) {
	rc, err := config.NewRuntimeConfig(config.Config{Scenarios: []config.Scenario{validScenario()}})
	require.NoError(t, err)
	assert.Len(t, rc.Scenarios, 1)
	assert.Contains(t, rc.ByName(), "t")

	// 空配置
	_, err = config.NewRuntimeConfig(config.Config{})
	assert.Error(t, err)

	// 重名场景
	_, err = config.NewRuntimeConfig(config.Config{Scenarios: []config.Scenario{validScenario(), validScenario()}})
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	rc, err := config.NewRuntimeConfig(config.Presets())
	require.NoError(t, err)
	// 四种控制律变体都有覆盖
	laws := map[config.Law]bool{}
	for _, s := range rc.Scenarios {
		laws[s.Law] = true
	}
	for _, l := range config.Laws {
		assert.True(t, laws[l], "preset missing law %s", l)
	}
}
