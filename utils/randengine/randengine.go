// 随机数引擎，包装了golang.org/x/exp/rand，为仿真提供可复现的随机数来源
package randengine

import (
	"flag"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：为单个仿真实例提供独立的随机数生成功能
// 说明：基于golang.org/x/exp/rand库，每个仿真实例持有自己的引擎，
// 避免共享全局随机状态导致并行运行互相干扰
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 功能：初始化一个新的随机数引擎实例
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改代码的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// Normal 生成正态分布随机数
// 功能：按N(0, std²)生成一个随机样本
// 参数：std-标准差
// 返回：随机样本值
func (e *Engine) Normal(std float64) float64 {
	return e.NormFloat64() * std
}

// ClippedNormal 生成截断的正态分布随机数
// 功能：按N(0, std²)生成随机样本并截断到[-maxAbs, maxAbs]范围
// 参数：std-标准差，maxAbs-绝对值上限
// 返回：截断后的随机样本值
// 说明：用于白噪声扰动，避免出现超出物理合理范围的极端样本
func (e *Engine) ClippedNormal(std, maxAbs float64) float64 {
	return lo.Clamp(e.Normal(std), -maxAbs, maxAbs)
}

// PTrue 以指定概率返回true
// 功能：根据给定概率返回布尔值
// 参数：p-返回true的概率（0.0到1.0之间）
// 返回：true或false
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}
