package registry

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"gitee.com/flycash/vendor-dispatch/internal/domain"
	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"gitee.com/flycash/vendor-dispatch/internal/service/provider"
	"github.com/gotomicro/ego/core/elog"
)

// State 注册表状态，只能 StateEmpty -> StateBuilding -> StateSealed 单向变化
type State int32

const (
	StateEmpty State = iota
	StateBuilding
	StateSealed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StateSealed:
		return "sealed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Entry 一个渠道：供应商实现 + 渠道配置
type Entry struct {
	Key      domain.ChannelKey
	Provider provider.Provider
	Context  domain.ChannelContext
}

// Registry 渠道注册表
// 启动阶段单线程注册，Seal 之后只读，Resolve 不加锁。
type Registry struct {
	mu      sync.Mutex
	state   atomic.Int32
	entries map[domain.ChannelKey]Entry

	logger *elog.Component
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[domain.ChannelKey]Entry),
		logger:  elog.DefaultLogger,
	}
}

// Register 注册渠道，重复注册或封存后注册都会返回错误
func (r *Registry) Register(key domain.ChannelKey, p provider.Provider, cc domain.ChannelContext) error {
	if p == nil {
		return fmt.Errorf("%w: 渠道 %s 的供应商为空", errs.ErrInvalidParameter, key)
	}
	if _, err := domain.ParseChannelKey(key.String()); err != nil {
		return err
	}
	if cc.Key() != key {
		return fmt.Errorf("%w: 渠道标识 %s 与配置 %s 不一致", errs.ErrInvalidChannelContext, key, cc.Key())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.State() == StateSealed {
		return fmt.Errorf("%w: %s", errs.ErrRegistrySealed, key)
	}
	if _, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %s", errs.ErrChannelDuplicate, key)
	}
	r.entries[key] = Entry{
		Key:      key,
		Provider: p,
		Context:  cc,
	}
	r.state.Store(int32(StateBuilding))
	r.logger.Info("注册渠道", elog.String("channel", key.String()), elog.String("provider", p.Name()))
	return nil
}

// Seal 封存注册表，重复调用无副作用
func (r *Registry) Seal() {
	if r.State() == StateSealed {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.State() == StateSealed {
		return
	}
	r.state.Store(int32(StateSealed))
	r.logger.Info("注册表已封存", elog.Int("channels", len(r.entries)))
}

func (r *Registry) Sealed() bool {
	return r.State() == StateSealed
}

func (r *Registry) State() State {
	return State(r.state.Load())
}

// Resolve 查找渠道，并在配置副本上依次合并 overrides
func (r *Registry) Resolve(key domain.ChannelKey, overrides ...domain.Override) (Entry, error) {
	if !r.Sealed() {
		return Entry{}, fmt.Errorf("%w: %s", errs.ErrRegistryNotSealed, key)
	}
	entry, ok := r.entries[key]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", errs.ErrChannelNotRegistered, key)
	}
	for _, o := range overrides {
		entry.Context = entry.Context.WithOverride(o)
	}
	return entry, nil
}

// Keys 返回已注册的渠道标识，按字典序排列
func (r *Registry) Keys() []domain.ChannelKey {
	if !r.Sealed() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	keys := make([]domain.ChannelKey, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}
