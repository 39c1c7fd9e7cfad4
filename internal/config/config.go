// Package config 运行时配置，yaml 文件经 viper 读取，缺省项用默认值补齐。
package config

import (
	"github.com/idokutela/Jack/pkg/errs"
	"github.com/idokutela/Jack/pkg/glog"
	"github.com/spf13/viper"
)

// Config 运行时配置
type Config struct {
	// Glog 日志配置
	Glog glog.Config `json:"glog" yaml:"glog"`
	// Runtime actor 运行时配置
	Runtime RuntimeConfig `json:"runtime" yaml:"runtime"`
}

// RuntimeConfig actor 运行时配置
type RuntimeConfig struct {
	// PoolSize 默认调度器协程池大小
	PoolSize int `json:"poolSize" yaml:"poolSize"`
	// MailboxCapacity 未显式指定时新建 actor 的邮箱容量
	MailboxCapacity int `json:"mailboxCapacity" yaml:"mailboxCapacity"`
	// TimerTickMs 延迟投递时间轮的刻度（毫秒）
	TimerTickMs int `json:"timerTickMs" yaml:"timerTickMs"`
	// TimerWheelSize 时间轮槽数
	TimerWheelSize int64 `json:"timerWheelSize" yaml:"timerWheelSize"`
}

// Default 生成默认配置
func Default() *Config {
	return &Config{
		Glog: *glog.DefaultConfig(),
		Runtime: RuntimeConfig{
			PoolSize:        1024,
			MailboxCapacity: 10000000,
			TimerTickMs:     1,
			TimerWheelSize:  4096,
		},
	}
}

// Load 从 yaml 文件加载配置，文件里缺失的键保留默认值
func Load(path string) (*Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return nil, errs.ErrReadConfigFileFailed(err)
	}
	config := Default()
	if err := vp.Unmarshal(config); err != nil {
		return nil, errs.ErrUnmarshalConfigFailed(err)
	}
	return config, nil
}
