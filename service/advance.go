package service

import (
	"context"
	"fmt"
	"time"

	"github.com/leadflow/leadflow_end/models"
	"github.com/leadflow/leadflow_end/utils"
)

// advanceRule 单条推进规则: 在当前状态停留满days天后推进到next
type advanceRule struct {
	next models.LeadStatus
	days int
}

// advanceRules 自动推进规则表, 只有邮件跟进链路上的状态会被自动推进
var advanceRules = map[models.LeadStatus]advanceRule{
	models.LeadStatusEmailSent: {next: models.LeadStatusFollowup1, days: 3},
	models.LeadStatusFollowup1: {next: models.LeadStatusFollowup2, days: 4},
	models.LeadStatusFollowup2: {next: models.LeadStatusFollowup3, days: 7},
}

// DaysElapsed 计算从updatedAt到now经过的完整天数, 不足一天按0计
func DaysElapsed(updatedAt, now time.Time) int {
	return int(now.Sub(updatedAt).Hours() / 24)
}

// NextAdvance 判断线索当前是否到期应推进, 返回目标状态
// 已有回复的线索不参与自动推进, 到期判定为包含边界 (满3天即推进)
func NextAdvance(lead models.Lead, now time.Time) (models.LeadStatus, bool) {
	if lead.HasReplies {
		return "", false
	}

	rule, ok := advanceRules[lead.Status]
	if !ok {
		return "", false
	}

	if DaysElapsed(lead.UpdatedAt, now) >= rule.days {
		return rule.next, true
	}

	return "", false
}

// AdvanceEngine 跟进自动推进引擎
type AdvanceEngine struct {
	store LeadStore
	now   func() time.Time
}

// NewAdvanceEngine 创建推进引擎
func NewAdvanceEngine(store LeadStore) *AdvanceEngine {
	return &AdvanceEngine{
		store: store,
		now:   time.Now,
	}
}

// Run 扫描可见范围内的全部线索, 推进所有到期的跟进状态, 返回被推进的线索ID
// 推进写入是原子的 (状态+updatedAt+跟进次数一次写入), 单条失败只记录日志不中断扫描
func (e *AdvanceEngine) Run(ctx context.Context, scope models.OwnerScope) ([]string, error) {
	leads, err := e.store.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("扫描线索失败: %w", err)
	}

	now := e.now()
	advanced := []string{}

	for _, lead := range leads {
		next, ok := NextAdvance(lead, now)
		if !ok {
			continue
		}

		if err := e.store.ApplyAdvance(ctx, lead.ID.Hex(), next, now); err != nil {
			utils.LogError(err, map[string]interface{}{
				"leadId": lead.ID.Hex(),
				"from":   lead.Status,
				"to":     next,
			}, "自动推进单条线索失败")
			continue
		}

		utils.Logger.Info().
			Str("leadId", lead.ID.Hex()).
			Str("company", lead.CompanyName).
			Str("from", string(lead.Status)).
			Str("to", string(next)).
			Int("daysElapsed", DaysElapsed(lead.UpdatedAt, now)).
			Msg("线索跟进已自动推进")

		advanced = append(advanced, lead.ID.Hex())
	}

	if len(advanced) > 0 {
		utils.Logger.Info().Int("count", len(advanced)).Msg("本轮自动推进完成")
	}

	return advanced, nil
}

// AdvanceScheduler 后台定时推进调度器
type AdvanceScheduler struct {
	engine   *AdvanceEngine
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewAdvanceScheduler 创建调度器
func NewAdvanceScheduler(engine *AdvanceEngine, interval time.Duration) *AdvanceScheduler {
	return &AdvanceScheduler{
		engine:   engine,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start 启动调度循环, 启动时先执行一次, 之后按间隔执行
func (s *AdvanceScheduler) Start() {
	utils.Logger.Info().Dur("interval", s.interval).Msg("自动推进调度器启动")

	go func() {
		defer close(s.done)

		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stop:
				utils.Logger.Info().Msg("自动推进调度器停止")
				return
			}
		}
	}()
}

// Stop 停止调度器并等待当前轮次结束
func (s *AdvanceScheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *AdvanceScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// 后台扫描覆盖全部线索
	scope := models.OwnerScope{Role: models.UserRoleADMIN}
	if _, err := s.engine.Run(ctx, scope); err != nil {
		utils.LogError(err, nil, "后台自动推进执行失败")
	}
}
