package chain

import "fmt"

// heaviside Heaviside阶跃函数：x > 0 返回1，否则返回0
func heaviside(x float64) int {
	if x > 0 {
		return 1
	}
	return 0
}

// Mode 运行模式指示对（λ1, λ2）
// 功能：二位模式指示，λ1表示L-F1车距是否超过阈值，λ2对应F1-F2车距
// 说明：模式是当前车距与阈值的纯函数，每步重新计算，不保存历史、无滞回；
// 四种模式之间允许任意单步切换
type Mode struct {
	Lambda1 int // gapLF1 > d 时为1，否则为0
	Lambda2 int // gapF1F2 > d 时为1，否则为0
}

// Classify 由当前车距导出运行模式
// 功能：将两个车距与距离阈值比较得到模式指示对
// 参数：gapLF1-头车到F1的车距，gapF1F2-F1到F2的车距，threshold-距离阈值d
// 返回：模式指示对
// 说明：采用严格不等式，车距恰好等于阈值时λ取0
func Classify(gapLF1, gapF1F2, threshold float64) Mode {
	return Mode{
		Lambda1: heaviside(gapLF1 - threshold),
		Lambda2: heaviside(gapF1F2 - threshold),
	}
}

// String 获取模式的两字符标签（如"10"表示λ1=1，λ2=0）
func (m Mode) String() string {
	return fmt.Sprintf("%d%d", m.Lambda1, m.Lambda2)
}
