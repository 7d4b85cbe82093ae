package task

import (
	"fmt"
	"sync/atomic"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/sirupsen/logrus"

	"github.com/w0927/platoonsim/analysis"
	"github.com/w0927/platoonsim/entity/chain"
	"github.com/w0927/platoonsim/utils"
	"github.com/w0927/platoonsim/utils/config"
)

const (
	SelfName = "platoonsim" // 本程序在日志与输出中的名字
)

var log = logrus.WithField("module", "task")

// Result 单场景运行结果
type Result struct {
	Name   string           // 场景名
	Chain  *chain.Chain     // 运行后的仿真实例（含完整历史）
	Report *analysis.Report // 稳定性评估报告，评估失败时为nil
	Err    error            // 评估错误
}

// Context 仿真任务上下文
// 功能：包含一次批量仿真任务的所有变量和状态，替代全局变量
// 说明：各场景的仿真实例相互独立（独立随机引擎与历史），
// 批量运行时按场景并行
type Context struct {

	// 任务名
	job string
	// 关闭指令
	closed atomic.Bool

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig
	// 各场景的仿真实例
	chains []*chain.Chain
	// 按场景名索引
	byName map[string]*chain.Chain
}

// NewContext 创建新的仿真任务上下文
// 功能：校验配置并为每个场景构造仿真实例
// 参数：job-任务名称，c-配置对象
// 返回：初始化完成的Context实例与错误信息
// 算法说明：
// 1. 构造运行时配置（填充缺省值并逐场景校验）
// 2. 逐场景构造仿真实例，任何一个失败则整体失败
func NewContext(job string, c config.Config) (*Context, error) {
	rc, err := config.NewRuntimeConfig(c)
	if err != nil {
		return nil, err
	}
	ctx := &Context{
		job:           job,
		runtimeConfig: rc,
		chains:        make([]*chain.Chain, 0, len(rc.Scenarios)),
		byName:        make(map[string]*chain.Chain, len(rc.Scenarios)),
	}
	for _, scen := range rc.Scenarios {
		c, err := chain.New(scen)
		if err != nil {
			return nil, err
		}
		ctx.chains = append(ctx.chains, c)
		ctx.byName[scen.Name] = c
	}
	log.Infof("job %s: %d scenarios loaded", job, len(ctx.chains))
	return ctx, nil
}

func (ctx *Context) Job() string {
	return ctx.job
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) Chains() []*chain.Chain {
	return ctx.chains
}

// Run 批量运行场景
// 功能：并行运行指定场景并逐场景做稳定性评估
// 参数：names-要运行的场景名列表，为空时运行全部场景
// 返回：与所选场景一一对应的结果列表
// 算法说明：
// 1. 按名字筛选场景，未命中的名字记录警告后忽略
// 2. 各场景仿真实例相互独立，使用并行Map推进
// 3. 评估窗口取历史的后一半（排除初始瞬态），
//    车距参考值取该场景的模式切换阈值
func (ctx *Context) Run(names []string) ([]Result, error) {
	if ctx.closed.Load() {
		return nil, fmt.Errorf("task: context is closed")
	}
	selected, failedNames := utils.Find(ctx.byName, ctx.chains, names)
	if len(failedNames) > 0 {
		log.Warnf("job %s: no such scenarios: %v", ctx.job, failedNames)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("task: no scenario matched %v", names)
	}
	results := parallel.GoMap(selected, func(c *chain.Chain) Result {
		c.Run()
		scen := ctx.runtimeConfig.ByName()[c.Name()]
		d, _, _ := scen.Threshold.Resolve()
		h := c.History()
		window := max(h.Len()/2, 1)
		report, err := analysis.Assess(h, window, d)
		if err != nil {
			log.Warnf("scenario %s: assessment failed: %v", c.Name(), err)
		}
		return Result{Name: c.Name(), Chain: c, Report: report, Err: err}
	})
	return results, nil
}

// Close 关闭任务上下文，之后的Run调用直接报错
func (ctx *Context) Close() {
	ctx.closed.Store(true)
}
