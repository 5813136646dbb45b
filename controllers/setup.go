package controllers

import (
	"github.com/leadflow/leadflow_end/config"
	"github.com/leadflow/leadflow_end/repository"
	"github.com/leadflow/leadflow_end/service"
)

var (
	leadRepo      *repository.LeadRepository
	leadCache     *service.LeadCache
	advanceEngine *service.AdvanceEngine
	mailer        *service.Mailer
)

// Setup 初始化控制器依赖, 必须在数据库连接建立后调用
func Setup(cfg *config.Config) {
	leadRepo = repository.NewLeadRepository()
	leadCache = service.NewLeadCache(leadRepo)
	advanceEngine = service.NewAdvanceEngine(leadRepo)
	mailer = service.NewMailer(cfg)
}

// LeadRepo 返回线索仓库, 供后台任务复用
func LeadRepo() *repository.LeadRepository {
	return leadRepo
}

// LeadCache 返回线索缓存
func LeadCache() *service.LeadCache {
	return leadCache
}

// AdvanceEngine 返回自动推进引擎
func AdvanceEngine() *service.AdvanceEngine {
	return advanceEngine
}
