package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"gitee.com/flycash/vendor-dispatch/internal/repository/dao"
)

// ChannelSource 启动时一次性读取全部渠道配置
type ChannelSource interface {
	Load(ctx context.Context) ([]domain.ChannelConfig, error)
}

// staticChannelSource 配置文件中已经解析好的渠道
type staticChannelSource struct {
	configs []domain.ChannelConfig
}

func NewStaticChannelSource(configs []domain.ChannelConfig) ChannelSource {
	return &staticChannelSource{configs: configs}
}

func (s *staticChannelSource) Load(_ context.Context) ([]domain.ChannelConfig, error) {
	if len(s.configs) == 0 {
		return nil, fmt.Errorf("%w", errs.ErrChannelConfigNotFound)
	}
	res := make([]domain.ChannelConfig, len(s.configs))
	copy(res, s.configs)
	return res, nil
}

// ChannelRepository 数据库中的渠道配置
type ChannelRepository interface {
	ChannelSource
	// Save 创建渠道
	Save(ctx context.Context, cfg domain.ChannelConfig) error
	// Update 更新渠道，Secret 为空时不修改
	Update(ctx context.Context, cfg domain.ChannelConfig) error
}

type channelRepository struct {
	dao dao.ChannelDAO
}

func NewChannelRepository(d dao.ChannelDAO) ChannelRepository {
	return &channelRepository{dao: d}
}

func (r *channelRepository) Load(ctx context.Context) ([]domain.ChannelConfig, error) {
	channels, err := r.dao.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w", errs.ErrChannelConfigNotFound)
	}

	result := make([]domain.ChannelConfig, 0, len(channels))
	for i := range channels {
		cfg, err := r.toDomain(channels[i])
		if err != nil {
			return nil, err
		}
		result = append(result, cfg)
	}
	return result, nil
}

func (r *channelRepository) Save(ctx context.Context, cfg domain.ChannelConfig) error {
	entity, err := r.toEntity(cfg)
	if err != nil {
		return err
	}
	_, err = r.dao.Create(ctx, entity)
	return err
}

func (r *channelRepository) Update(ctx context.Context, cfg domain.ChannelConfig) error {
	entity, err := r.toEntity(cfg)
	if err != nil {
		return err
	}
	entity.Status = dao.ChannelStatusActive
	return r.dao.Update(ctx, entity)
}

// ImportChannels 把配置文件中的渠道写入数据库，已存在的渠道按配置更新
func ImportChannels(ctx context.Context, repo ChannelRepository, configs []domain.ChannelConfig) error {
	for _, cfg := range configs {
		err := repo.Save(ctx, cfg)
		if errors.Is(err, errs.ErrChannelDuplicate) {
			err = repo.Update(ctx, cfg)
		}
		if err != nil {
			return fmt.Errorf("导入渠道 %s 失败: %w", cfg.Key(), err)
		}
	}
	return nil
}

func (r *channelRepository) toDomain(c dao.Channel) (domain.ChannelConfig, error) {
	var extra map[string]string
	if c.Extra != "" {
		if err := json.Unmarshal([]byte(c.Extra), &extra); err != nil {
			return domain.ChannelConfig{}, fmt.Errorf("%w: 渠道 %s-%s 的扩展配置: %w",
				errs.ErrInvalidChannelContext, c.Vendor, c.Capability, err)
		}
	}
	return domain.ChannelConfig{
		Vendor:            c.Vendor,
		Capability:        domain.Capability(c.Capability),
		Endpoint:          c.Endpoint,
		AppID:             c.AppID,
		AccessKeyID:       c.AccessKeyID,
		Secret:            c.Secret,
		Region:            c.Region,
		SignName:          c.SignName,
		DefaultTemplateID: c.DefaultTemplateID,
		Extra:             extra,
	}, nil
}

func (r *channelRepository) toEntity(cfg domain.ChannelConfig) (dao.Channel, error) {
	extra := ""
	if len(cfg.Extra) > 0 {
		b, err := json.Marshal(cfg.Extra)
		if err != nil {
			return dao.Channel{}, err
		}
		extra = string(b)
	}
	return dao.Channel{
		Vendor:            cfg.Vendor,
		Capability:        string(cfg.Capability),
		Endpoint:          cfg.Endpoint,
		AppID:             cfg.AppID,
		AccessKeyID:       cfg.AccessKeyID,
		Secret:            cfg.Secret,
		Region:            cfg.Region,
		SignName:          cfg.SignName,
		DefaultTemplateID: cfg.DefaultTemplateID,
		Extra:             extra,
	}, nil
}
