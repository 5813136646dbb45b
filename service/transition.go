package service

import (
	"context"
	"time"

	"github.com/leadflow/leadflow_end/models"
	"github.com/leadflow/leadflow_end/utils"
)

// ApplyManualTransition 手动修改线索状态
// 未知状态静默忽略, 目标与当前状态相同时不产生任何写操作
// 允许跳跃和回退, 返回是否实际发生了写入
func ApplyManualTransition(ctx context.Context, store LeadStore, lead models.Lead, target models.LeadStatus, now time.Time) (bool, error) {
	if !models.IsValidLeadStatus(target) {
		utils.Logger.Warn().
			Str("leadId", lead.ID.Hex()).
			Str("target", string(target)).
			Msg("忽略未知的目标状态")
		return false, nil
	}

	if lead.Status == target {
		return false, nil
	}

	if err := store.UpdateStatus(ctx, lead.ID.Hex(), target, now); err != nil {
		return false, err
	}

	utils.Logger.Info().
		Str("leadId", lead.ID.Hex()).
		Str("from", string(lead.Status)).
		Str("to", string(target)).
		Msg("线索状态已手动更新")

	return true, nil
}

// ResolveDropTarget 解析看板拖拽的落点状态
// 落点可能是状态列本身, 也可能是列内的另一张卡片 (取该卡片所在的状态)
// statusOf 根据卡片ID查询其线索状态, 查不到时落点无效
func ResolveDropTarget(overID string, statusOf func(id string) (models.LeadStatus, bool)) (models.LeadStatus, bool) {
	if status := models.LeadStatus(overID); models.IsValidLeadStatus(status) {
		return status, true
	}

	if status, ok := statusOf(overID); ok {
		return status, true
	}

	return "", false
}

// ResolveStatusRequest 解析状态更新请求的目标状态
// 携带overId时按拖拽落点解析, 否则直接取status; 两者都缺失时无目标
func ResolveStatusRequest(status models.LeadStatus, overID string, statusOf func(id string) (models.LeadStatus, bool)) (models.LeadStatus, bool) {
	if overID != "" {
		return ResolveDropTarget(overID, statusOf)
	}

	if status == "" {
		return "", false
	}

	return status, true
}
