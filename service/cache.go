package service

import (
	"context"
	"sync"

	"github.com/leadflow/leadflow_end/models"
	"github.com/leadflow/leadflow_end/utils"
)

// LeadCache 线索列表的内存快照
// 列表接口优先读取快照, 数据变更后由变更监听触发刷新
type LeadCache struct {
	mu    sync.RWMutex
	leads []models.Lead
	valid bool
	store LeadStore
}

// NewLeadCache 创建线索缓存
func NewLeadCache(store LeadStore) *LeadCache {
	return &LeadCache{store: store}
}

// Snapshot 返回当前快照的副本, 快照无效时返回false
func (c *LeadCache) Snapshot() ([]models.Lead, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return nil, false
	}

	snapshot := make([]models.Lead, len(c.leads))
	copy(snapshot, c.leads)
	return snapshot, true
}

// Replace 整体替换快照内容
func (c *LeadCache) Replace(leads []models.Lead) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.leads = leads
	c.valid = true
}

// Invalidate 标记快照失效, 下次读取会回源
func (c *LeadCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.leads = nil
	c.valid = false
}

// Refresh 从存储层重新加载全部线索
func (c *LeadCache) Refresh(ctx context.Context) error {
	leads, err := c.store.List(ctx, models.OwnerScope{Role: models.UserRoleADMIN})
	if err != nil {
		c.Invalidate()
		return err
	}

	c.Replace(leads)
	utils.Logger.Debug().Int("count", len(leads)).Msg("线索缓存已刷新")
	return nil
}
