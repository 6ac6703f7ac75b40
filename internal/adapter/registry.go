// internal/adapter/registry.go
package adapter

import (
	"EsportsSchedule/internal/config"
	"EsportsSchedule/internal/interfaces"
	"EsportsSchedule/internal/model"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// ========== 全局工厂函数注册表（各数据源包在 init 中注册） ==========
var factoryRegistry = make(map[model.SourceType]interfaces.Factory)

// Register 供数据源包 init 函数调用，注册工厂函数
func Register(source model.SourceType, factory interfaces.Factory) {
	if factory == nil {
		panic(fmt.Sprintf("数据源%s的工厂函数不能为nil", source))
	}
	if _, exists := factoryRegistry[source]; exists {
		logrus.Warnf("数据源%s已注册，将覆盖原有实现", source)
	}
	factoryRegistry[source] = factory
}

// GetFactory 获取指定数据源的工厂函数
func GetFactory(source model.SourceType) (interfaces.Factory, bool) {
	factory, ok := factoryRegistry[source]
	return factory, ok
}

// ListFactories 列出所有已注册的数据源（排序后返回，便于日志比对）
func ListFactories() []model.SourceType {
	sources := make([]model.SourceType, 0, len(factoryRegistry))
	for s := range factoryRegistry {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}

// FetcherRegistry 数据源实例注册表，每种数据源只创建一个实例（共享 HTTP 客户端与限速器）
type FetcherRegistry struct {
	cfg      *config.LiquipediaConfig
	logger   *logrus.Logger
	fetchers map[model.SourceType]interfaces.ScheduleFetcher
}

func NewFetcherRegistry(cfg *config.LiquipediaConfig, logger *logrus.Logger) *FetcherRegistry {
	r := &FetcherRegistry{
		cfg:      cfg,
		logger:   logger,
		fetchers: make(map[model.SourceType]interfaces.ScheduleFetcher),
	}
	r.initFromFactories()
	return r
}

// initFromFactories 从工厂函数注册表初始化数据源实例
func (r *FetcherRegistry) initFromFactories() {
	for _, source := range ListFactories() {
		factory, _ := GetFactory(source)
		fetcher := factory(r.cfg, r.logger)
		if fetcher == nil {
			r.logger.WithField("source", source).Error("工厂函数返回nil数据源实例")
			continue
		}
		r.fetchers[source] = fetcher
	}
	r.logger.WithField("sources", r.ListSources()).Debug("数据源实例初始化完成")
}

// ListSources 获取所有已初始化的数据源
func (r *FetcherRegistry) ListSources() []model.SourceType {
	sources := make([]model.SourceType, 0, len(r.fetchers))
	for s := range r.fetchers {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}

// GetFetcher 获取数据源实例
func (r *FetcherRegistry) GetFetcher(source model.SourceType) (interfaces.ScheduleFetcher, error) {
	fetcher, ok := r.fetchers[source]
	if !ok {
		return nil, fmt.Errorf("数据源%s未初始化（已初始化：%v）", source, r.ListSources())
	}
	return fetcher, nil
}
