package ioc

import (
	"context"
	"os"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/repository"
	"gitee.com/flycash/vendor-dispatch/internal/repository/dao"
	"github.com/gotomicro/ego/core/econf"
)

const (
	SourceConfig = "config"
	SourceDB     = "db"
	SourceEtcd   = "etcd"
)

// InitChannelConfigs 从配置文件读取渠道，字符串中的 ${ENV} 会被环境变量替换
func InitChannelConfigs() []domain.ChannelConfig {
	var configs []domain.ChannelConfig
	err := econf.UnmarshalKey("channels", &configs)
	if err != nil {
		panic(err)
	}
	for i := range configs {
		configs[i] = expandEnv(configs[i])
	}
	return configs
}

// InitChannelSource 按 channelSource.source 选择渠道配置来源
func InitChannelSource() repository.ChannelSource {
	type Config struct {
		Source        string `yaml:"source"`
		EtcdPrefix    string `yaml:"etcdPrefix"`
		ImportOnStart bool   `yaml:"importOnStart"` // 数据库模式下启动时导入 channels 中的渠道
	}
	cfg := Config{
		Source:     SourceConfig,
		EtcdPrefix: "/vendor-dispatch/channels/",
	}
	err := econf.UnmarshalKey("channelSource", &cfg)
	if err != nil {
		panic(err)
	}

	switch cfg.Source {
	case SourceDB:
		db := InitDB()
		if err = dao.InitTables(db); err != nil {
			panic(err)
		}
		repo := repository.NewChannelRepository(dao.NewChannelDAO(db, InitChannelEncryptKey()))
		if cfg.ImportOnStart {
			if err = repository.ImportChannels(context.Background(), repo, InitChannelConfigs()); err != nil {
				panic(err)
			}
		}
		return repo
	case SourceEtcd:
		return repository.NewEtcdChannelSource(InitEtcdClient(), cfg.EtcdPrefix)
	default:
		return repository.NewStaticChannelSource(InitChannelConfigs())
	}
}

func expandEnv(cfg domain.ChannelConfig) domain.ChannelConfig {
	cfg.Endpoint = os.ExpandEnv(cfg.Endpoint)
	cfg.AppID = os.ExpandEnv(cfg.AppID)
	cfg.AccessKeyID = os.ExpandEnv(cfg.AccessKeyID)
	cfg.Secret = os.ExpandEnv(cfg.Secret)
	cfg.Region = os.ExpandEnv(cfg.Region)
	cfg.SignName = os.ExpandEnv(cfg.SignName)
	cfg.DefaultTemplateID = os.ExpandEnv(cfg.DefaultTemplateID)
	if len(cfg.Extra) == 0 {
		return cfg
	}
	extra := make(map[string]string, len(cfg.Extra))
	for k, v := range cfg.Extra {
		extra[k] = os.ExpandEnv(v)
	}
	cfg.Extra = extra
	return cfg
}
