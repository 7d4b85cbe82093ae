package config

import (
	"github.com/samber/lo"

	"github.com/w0927/platoonsim/entity/track"
)

// Presets 内置场景集合
// 功能：在未提供配置文件时给出一组可直接运行的实验场景
// 说明：取值来自跟车模型的标准实验设定，覆盖全部四种控制律变体；
// 带扰动的场景显式给定随机种子以保证可复现
func Presets() Config {
	return Config{Scenarios: []Scenario{
		{
			Name:  "ring-default",
			Law:   LawLookBothWays,
			Track: Track{Topology: string(track.KindRing), Length: 2000},
			Step:  ControlStep{Interval: 2, TMax: 300},
			Init: Init{
				Positions:  []float64{1000, 960, 930},
				Velocities: []float64{20, 20, 20},
			},
			Threshold: Threshold{Value: 40},
			Params: Params{
				A11: 0.5, A10: -1.0, A01: 1.5, A00: -2.0,
				B1: 1.0, B0: -1.5, C1: -0.3, C0: 0.5,
				BaseVelocity: 20, ResponseFactor: 0.3,
			},
		},
		{
			Name:  "ring-aggressive",
			Law:   LawLookBothWays,
			Track: Track{Topology: string(track.KindRing), Length: 2000},
			Step:  ControlStep{Interval: 2, TMax: 300},
			Init: Init{
				Positions:  []float64{1000, 960, 930},
				Velocities: []float64{20, 20, 20},
			},
			Threshold: Threshold{Value: 40},
			Params: Params{
				A11: 1.0, A10: -2.5, A01: 3.0, A00: -3.5,
				B1: 2.0, B0: -2.5, C1: -0.3, C0: 0.5,
				BaseVelocity: 20, ResponseFactor: 0.4,
			},
		},
		{
			Name:  "ring-phantom-jam",
			Law:   LawLookBothWays,
			Track: Track{Topology: string(track.KindRing), Length: 2000},
			Step:  ControlStep{Interval: 2, TMax: 300},
			Init: Init{
				Positions:  []float64{1000, 960, 930},
				Velocities: []float64{22, 20, 18},
			},
			Threshold: Threshold{Value: 40},
			Params: Params{
				A11: 0.8, A10: -1.8, A01: 2.2, A00: -2.8,
				B1: 1.0, B0: -1.5, C1: -0.3, C0: 0.5,
				BaseVelocity: 20, ResponseFactor: 0.35,
			},
		},
		{
			Name:  "ring-forward-only",
			Law:   LawLookForwardOnly,
			Track: Track{Topology: string(track.KindRing), Length: 2000},
			Step:  ControlStep{Interval: 2, TMax: 300},
			Init: Init{
				Positions:  []float64{1000, 960, 930},
				Velocities: []float64{20, 20, 20},
			},
			Threshold: Threshold{Value: 40},
			Params: Params{
				A11: 1.0, A0: 1.5,
				B1: 1.0, B0: -1.5, C1: -0.3, C0: 0.5,
				BaseVelocity: 20, ResponseFactor: 0.3,
			},
		},
		{
			Name:  "ring-white-noise",
			Law:   LawRelativeVelocity,
			Track: Track{Topology: string(track.KindRing), Length: 6000},
			Step:  ControlStep{Interval: 2, TMax: 400},
			Init: Init{
				// 头车位于轨道中部，前后间距均为50米
				Positions:  []float64{3000, 2950, 2900},
				Velocities: []float64{60, 60, 60},
			},
			Threshold: Threshold{Value: 40},
			Params: Params{
				A11: 0.5, A0: 0.3,
				B1: 1.0, B0: 1.5, C1: 0.3, C0: 0.5,
				ResponseFactor: 0.3,
			},
			Safety: Safety{MaxSpeed: lo.ToPtr(80.0)},
			Disturbance: Disturbance{
				Enabled:   true,
				Std:       5,
				StartTime: 150,
				Seed:      lo.ToPtr(uint64(42)),
			},
		},
		{
			Name:  "line-default",
			Law:   LawDirectAcceleration,
			Track: Track{Topology: string(track.KindOpen)},
			Step:  ControlStep{Interval: 5, TMax: 100},
			Init: Init{
				Positions:  []float64{200, 150, 100},
				Velocities: []float64{20, 20, 20},
			},
			Threshold: Threshold{Value: 30},
			Params: Params{
				A11: 2.0, A10: 1.5, A01: 1.0, A00: 0.5,
				B1: 2.0, B0: 1.0, C1: 1.5, C0: 1.0,
				TargetDistance: 30, DistanceGain: 0.15,
			},
			Safety: Safety{MaxBrakingAccel: lo.ToPtr(-5.0)},
		},
	}}
}
