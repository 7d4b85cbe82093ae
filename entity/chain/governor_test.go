package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func safetyParams() ControlParams {
	return ControlParams{
		DistanceThreshold:  50,
		EmergencyGapFactor: 0.6,
		HardBrakeA:         -3,
		MaxA:               3,
		MaxBrakingA:        -4,
	}
}

func TestGovernClamp(t *testing.T) {
	p := safetyParams()
	out, emergency := govern(&p, [NumVehicles]float64{10, -10, 1.5}, [2]float64{60, 60})
	assert.InDelta(t, 3, out[VehicleL], 1e-9)
	assert.InDelta(t, -4, out[VehicleF1], 1e-9)
	assert.InDelta(t, 1.5, out[VehicleF2], 1e-9)
	assert.Equal(t, [NumVehicles]bool{}, emergency)
}

func TestGovernEmergencyBrake(t *testing.T) {
	p := safetyParams()
	// 车距低于0.6*50=30时强制紧急制动，即便控制律要求加速
	out, emergency := govern(&p, [NumVehicles]float64{2, 2, 2}, [2]float64{29, 60})
	assert.InDelta(t, 2, out[VehicleL], 1e-9)
	assert.InDelta(t, -3, out[VehicleF1], 1e-9)
	assert.InDelta(t, 2, out[VehicleF2], 1e-9)
	assert.True(t, emergency[VehicleF1])
	assert.False(t, emergency[VehicleF2])

	// 已在更猛烈制动时不放松到紧急制动值
	out, _ = govern(&p, [NumVehicles]float64{0, -4, 0}, [2]float64{10, 60})
	assert.InDelta(t, -4, out[VehicleF1], 1e-9)
}

func TestGovernCollisionGuard(t *testing.T) {
	p := safetyParams()
	// 车距非正时后车直接取最大制动
	out, _ := govern(&p, [NumVehicles]float64{0, 3, 3}, [2]float64{-1, 0})
	assert.InDelta(t, -4, out[VehicleF1], 1e-9)
	assert.InDelta(t, -4, out[VehicleF2], 1e-9)
}
