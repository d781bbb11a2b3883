package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// etcdChannelSource prefix 下每个 key 存一个 JSON 格式的渠道配置
type etcdChannelSource struct {
	kv     clientv3.KV
	prefix string
}

func NewEtcdChannelSource(kv clientv3.KV, prefix string) ChannelSource {
	return &etcdChannelSource{
		kv:     kv,
		prefix: prefix,
	}
}

func (s *etcdChannelSource) Load(ctx context.Context) ([]domain.ChannelConfig, error) {
	resp, err := s.kv.Get(ctx, s.prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}
	if len(resp.Kvs) == 0 {
		return nil, fmt.Errorf("%w: prefix = %s", errs.ErrChannelConfigNotFound, s.prefix)
	}

	configs := make([]domain.ChannelConfig, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var cfg domain.ChannelConfig
		if err = json.Unmarshal(kv.Value, &cfg); err != nil {
			return nil, fmt.Errorf("%w: key = %s: %w", errs.ErrInvalidChannelContext, string(kv.Key), err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}
