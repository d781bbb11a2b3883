package ioc

import (
	"os"

	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
)

func InitDB() *egorm.Component {
	return egorm.Load("mysql").Build()
}

// InitChannelEncryptKey 渠道密钥的加密密钥
func InitChannelEncryptKey() string {
	key := os.ExpandEnv(econf.GetString("channelSource.encryptKey"))
	if key == "" {
		panic("channelSource.encryptKey 未配置")
	}
	return key
}
