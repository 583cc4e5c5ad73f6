package adapter

import (
	"fmt"
	"sort"

	"ContestSync/internal/config"
	"ContestSync/internal/interfaces"
	"ContestSync/internal/model"

	"github.com/sirupsen/logrus"
)

type PlatformRegistry struct {
	cfg    *config.Config
	logger *logrus.Logger
	// 存储平台类型→适配器实例的映射
	adapters map[model.PlatformType]interfaces.PlatformAdapter
}

func NewPlatformRegistry(cfg *config.Config, logger *logrus.Logger) *PlatformRegistry {
	r := &PlatformRegistry{
		cfg:      cfg,
		logger:   logger,
		adapters: make(map[model.PlatformType]interfaces.PlatformAdapter),
	}
	r.initAdaptersFromFactories()
	return r
}

// initAdaptersFromFactories 遍历配置中已启用的平台，从工厂函数注册表创建实例
func (r *PlatformRegistry) initAdaptersFromFactories() {
	r.logger.WithField("factory_platforms", ListFactories()).Debug("adapter包中已注册的工厂函数")

	for platformStr, platformCfg := range r.cfg.Platforms {
		platformType := model.PlatformType(platformStr)
		if !r.cfg.Sync.IsPlatformEnabled(platformStr) {
			r.logger.WithField("platform", platformType).Info("平台未启用，跳过")
			continue
		}

		factory, ok := GetFactory(platformType)
		if !ok {
			r.logger.WithField("platform", platformType).Error("未找到对应的工厂函数（init未注册？）")
			continue
		}

		pc := platformCfg
		adapterIns := factory(&pc, r.logger)
		if adapterIns == nil {
			r.logger.WithField("platform", platformType).Error("工厂函数返回nil适配器实例")
			continue
		}

		// 验证实例的平台类型是否匹配
		if adapterIns.GetType() != platformType {
			r.logger.WithFields(logrus.Fields{
				"config_platform":  platformType,
				"adapter_platform": adapterIns.GetType(),
			}).Error("适配器平台类型与配置不匹配")
			continue
		}

		r.adapters[platformType] = adapterIns
		r.logger.WithField("platform", platformType).Debug("适配器实例初始化成功并加入注册表")
	}

	r.logger.WithField("platforms", r.ListRegisteredPlatforms()).Info("平台适配器初始化完成")
}

// ListRegisteredPlatforms 获取所有已初始化的平台类型列表（按名称排序）
func (r *PlatformRegistry) ListRegisteredPlatforms() []model.PlatformType {
	platforms := make([]model.PlatformType, 0, len(r.adapters))
	for p := range r.adapters {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}

// Adapters 按平台名称排序返回全部适配器实例
func (r *PlatformRegistry) Adapters() []interfaces.PlatformAdapter {
	list := make([]interfaces.PlatformAdapter, 0, len(r.adapters))
	for _, p := range r.ListRegisteredPlatforms() {
		list = append(list, r.adapters[p])
	}
	return list
}

// GetAdapter 获取适配器实例
func (r *PlatformRegistry) GetAdapter(platform model.PlatformType) (interfaces.PlatformAdapter, error) {
	adapterIns, ok := r.adapters[platform]
	if !ok {
		return nil, fmt.Errorf("平台%s未初始化适配器实例（已初始化：%v）", platform, r.ListRegisteredPlatforms())
	}
	return adapterIns, nil
}

// GetPlatformCount 获取已初始化实例的平台数量
func (r *PlatformRegistry) GetPlatformCount() int {
	return len(r.adapters)
}
