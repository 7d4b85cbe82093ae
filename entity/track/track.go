package track

import (
	"fmt"
	"math"
)

// Kind 轨道拓扑类型
type Kind string

const (
	KindOpen Kind = "open" // 开放直线轨道，位置不回绕
	KindRing Kind = "ring" // 环形轨道，位置按轨道长度取模
)

// Topology 轨道拓扑
// 功能：描述车辆运动所在的一维轨道，决定车距计算与位置回绕方式
// 说明：构造后不可变，一次仿真全程使用同一个拓扑
type Topology struct {
	kind   Kind
	length float64 // 环形轨道周长（开放轨道无意义）
}

// New 创建轨道拓扑
// 功能：根据类型与长度构造拓扑并校验参数
// 参数：kind-拓扑类型，length-环形轨道周长（开放轨道忽略）
// 返回：拓扑实例与错误信息
// 说明：环形轨道周长必须为正值
func New(kind Kind, length float64) (Topology, error) {
	switch kind {
	case KindOpen:
		return Topology{kind: KindOpen}, nil
	case KindRing:
		if length <= 0 {
			return Topology{}, fmt.Errorf("track: ring length must be positive, got %v", length)
		}
		return Topology{kind: KindRing, length: length}, nil
	default:
		return Topology{}, fmt.Errorf("track: unknown topology kind %q", kind)
	}
}

// Open 创建开放直线轨道
func Open() Topology {
	return Topology{kind: KindOpen}
}

// Ring 创建环形轨道（length必须为正，否则panic）
// 说明：测试与内部构造的便捷入口，外部配置请走New以获得错误返回
func Ring(length float64) Topology {
	t, err := New(KindRing, length)
	if err != nil {
		panic(err)
	}
	return t
}

// Kind 获取拓扑类型
func (t Topology) Kind() Kind {
	return t.kind
}

// Length 获取环形轨道周长
func (t Topology) Length() float64 {
	return t.length
}

// IsRing 是否为环形轨道
func (t Topology) IsRing() bool {
	return t.kind == KindRing
}

// Gap 计算前车到后车的车距
// 功能：根据拓扑类型计算两个标量位置之间的跟车距离
// 参数：front-前车位置，rear-后车位置
// 返回：车距（米）
// 算法说明：
// 1. 开放轨道：直接返回front-rear；约定前车坐标始终大于后车坐标，
//    中间状态可能出现负值，由积分器的最小安全距离修正消除
// 2. 环形轨道：最短弧距离min(|Δ|, L-|Δ|)，结果恒在[0, L/2]内且对称
func (t Topology) Gap(front, rear float64) float64 {
	if t.kind == KindRing {
		diff := math.Abs(front - rear)
		return math.Min(diff, t.length-diff)
	}
	return front - rear
}

// Wrap 位置回绕
// 功能：将位置归一化到轨道范围内
// 参数：pos-原始位置
// 返回：回绕后的位置
// 说明：开放轨道原样返回；环形轨道取模到[0, L)，负值也能正确处理
func (t Topology) Wrap(pos float64) float64 {
	if t.kind == KindRing {
		p := math.Mod(pos, t.length)
		if p < 0 {
			p += t.length
		}
		return p
	}
	return pos
}
