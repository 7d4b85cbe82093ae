package main

import (
	"encoding/base64"
	"flag"
	"os"
	"strings"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/w0927/platoonsim/task"
	"github.com/w0927/platoonsim/utils/config"
)

var (
	// 模拟任务名，用于日志标识
	job = flag.String("job", "job0", "the name of the whole simulation task")
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 要运行的场景名（逗号分隔），为空则运行配置中的全部场景
	scenarioNames = flag.String("scenario", "", "comma-separated scenario names to run (empty means all)")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", task.SelfName)
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置，未指定时回落到内置预置场景
	var c config.Config
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	}
	if file != nil {
		if err := yaml.UnmarshalStrict(file, &c); err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else {
		log.Info("no config specified, using built-in preset scenarios")
		c = config.Presets()
	}
	log.Infof("%+v", c)

	t, err := task.NewContext(*job, c)
	if err != nil {
		log.Panicf("task init err: %v", err)
	}
	defer t.Close()

	var names []string
	if *scenarioNames != "" {
		names = strings.Split(*scenarioNames, ",")
	}
	results, err := t.Run(names)
	if err != nil {
		log.Panicf("task run err: %v", err)
	}
	for _, r := range results {
		if r.Err != nil {
			log.Warnf("scenario %s: %v", r.Name, r.Err)
			continue
		}
		log.Infof("scenario %s: %v", r.Name, r.Report)
	}
	log.Infof("engine complete")
}
