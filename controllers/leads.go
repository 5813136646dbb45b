package controllers

import (
	"net/http"
	"time"

	"github.com/leadflow/leadflow_end/models"
	"github.com/leadflow/leadflow_end/repository"
	"github.com/leadflow/leadflow_end/service"
	"github.com/leadflow/leadflow_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// canAccessLead 管理员和经理可见全部线索, 实习生只能访问自己的
func canAccessLead(user *utils.LoginUser, lead *models.Lead) bool {
	return utils.IsElevatedRole(user.Role) || lead.UserID == user.ID
}

// loadVisibleLeads 读取当前用户可见的线索, 优先走缓存
func loadVisibleLeads(c *gin.Context, user *utils.LoginUser) ([]models.Lead, error) {
	leads, ok := leadCache.Snapshot()
	if !ok {
		if err := leadCache.Refresh(c.Request.Context()); err != nil {
			return nil, err
		}
		leads, _ = leadCache.Snapshot()
	}

	if utils.IsElevatedRole(user.Role) {
		return leads, nil
	}

	mine := []models.Lead{}
	for _, lead := range leads {
		if lead.UserID == user.ID {
			mine = append(mine, lead)
		}
	}
	return mine, nil
}

// GetLeads 获取线索列表, 支持搜索/快捷标签/状态/实习生/创建日期区间筛选
func GetLeads(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	leads, err := loadVisibleLeads(c, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	filter := service.LeadFilter{
		Search: c.Query("search"),
		Quick:  service.QuickTab(c.Query("quick")),
		Status: models.LeadStatus(c.Query("status")),
		Intern: c.Query("intern"),
		Now:    time.Now(),
	}

	// 日期区间按自然日解析, 上界取当天结束
	if from := c.Query("dateFrom"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("dateTo"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.DateTo = &end
		}
	}

	result := service.FilterLeads(leads, filter)
	utils.SuccessResponse(c, result, "")
}

// GetLeadStatuses 获取管道阶段列表
func GetLeadStatuses(c *gin.Context) {
	utils.SuccessResponse(c, models.LeadStatuses, "")
}

// GetLead 获取单条线索
func GetLead(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	lead, err := leadRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrLeadNotFound {
			utils.HandleError(c, utils.CreateNotFoundError("线索"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !canAccessLead(user, lead) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	utils.SuccessResponse(c, lead, "")
}

// CreateLead 创建线索, 归属于当前用户
func CreateLead(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	var req models.LeadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数: "+err.Error()))
		return
	}

	status := req.Status
	if status == "" || !models.IsValidLeadStatus(status) {
		status = models.LeadStatusNew
	}

	lead := models.Lead{
		CompanyName:       req.CompanyName,
		Website:           req.Website,
		ContactPersonName: req.ContactPersonName,
		ContactEmail:      req.ContactEmail,
		LinkedinProfile:   req.LinkedinProfile,
		AssignedIntern:    user.Name,
		Status:            status,
		UserID:            user.ID,
	}

	if err := leadRepo.Create(c.Request.Context(), &lead); err != nil {
		if err == repository.ErrDuplicateEmail {
			utils.HandleError(c, utils.CreateDuplicateEmailError(req.ContactEmail))
			return
		}
		utils.HandleError(c, err)
		return
	}

	leadCache.Invalidate()

	// 通过表单提交线索计入当日提交任务
	incrementDailyTaskCounter(c, user.ID, models.DailyTaskSubmitLeads)

	utils.SuccessResponse(c, lead, "线索创建成功", http.StatusCreated)
}

// UpdateLead 更新线索字段
func UpdateLead(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	lead, err := leadRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrLeadNotFound {
			utils.HandleError(c, utils.CreateNotFoundError("线索"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !canAccessLead(user, lead) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数"))
		return
	}

	// 只允许更新白名单内的字段
	allowed := []string{
		"companyName", "website", "contactPersonName", "contactEmail",
		"linkedinProfile", "assignedIntern", "hasReplies",
	}
	fields := bson.M{}
	for _, key := range allowed {
		if value, exists := body[key]; exists {
			fields[key] = value
		}
	}

	// 状态变更单独校验, 未知状态静默忽略
	if raw, exists := body["status"]; exists {
		if status, ok := raw.(string); ok && models.IsValidLeadStatus(models.LeadStatus(status)) {
			fields["status"] = status
		}
	}

	if len(fields) == 0 {
		utils.SuccessResponse(c, lead, "")
		return
	}

	updated, err := leadRepo.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		if err == repository.ErrDuplicateEmail {
			utils.HandleError(c, utils.CreateDuplicateEmailError(""))
			return
		}
		utils.HandleError(c, err)
		return
	}

	leadCache.Invalidate()
	utils.SuccessResponse(c, updated, "线索更新成功")
}

// UpdateLeadStatus 手动修改线索状态, 看板拖拽和详情页编辑都走这里
func UpdateLeadStatus(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	var req models.LeadStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数"))
		return
	}

	lead, err := leadRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrLeadNotFound {
			utils.HandleError(c, utils.CreateNotFoundError("线索"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !canAccessLead(user, lead) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	// 拖拽落点解析: 落在卡片上时取该卡片所在线索的状态
	target, ok := service.ResolveStatusRequest(req.Status, req.OverID, func(id string) (models.LeadStatus, bool) {
		other, err := leadRepo.FindByID(c.Request.Context(), id)
		if err != nil {
			return "", false
		}
		return other.Status, true
	})
	if !ok {
		// 落点无法识别, 按无操作处理
		utils.SuccessResponse(c, gin.H{"changed": false}, "")
		return
	}

	changed, err := service.ApplyManualTransition(c.Request.Context(), leadRepo, *lead, target, time.Now())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if changed {
		leadCache.Invalidate()
		// 状态维护计入当日更新状态任务
		incrementDailyTaskCounter(c, user.ID, models.DailyTaskUpdateStatuses)
	}

	utils.SuccessResponse(c, gin.H{"changed": changed}, "")
}

// DeleteLead 删除线索
func DeleteLead(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	lead, err := leadRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrLeadNotFound {
			utils.HandleError(c, utils.CreateNotFoundError("线索"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !canAccessLead(user, lead) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	// 删除线索需要删除权限, 实习生不具备
	if !utils.HasPermission(models.UserRole(user.Role), "leads", "delete") {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	if err := leadRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}

	leadCache.Invalidate()
	utils.SuccessResponse(c, nil, "线索删除成功")
}

// AutoAdvanceLeads 触发一轮自动推进, 返回被推进的线索ID
// 前端在看板和列表加载时调用, 后台调度器按固定间隔调用同一逻辑
func AutoAdvanceLeads(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	advanced, err := advanceEngine.Run(c.Request.Context(), user.Scope())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if len(advanced) > 0 {
		leadCache.Invalidate()
	}

	utils.SuccessResponse(c, gin.H{
		"advancedIds": advanced,
		"count":       len(advanced),
	}, "")
}

// GetLeadStats 按可见范围统计线索
func GetLeadStats(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	stats, err := leadRepo.Stats(c.Request.Context(), user.Scope())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, stats, "")
}

// SendLeadEmail 用邮件模板向线索联系人发送邮件
// 发送成功后把仍处于new状态的线索推进到email-sent
func SendLeadEmail(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	if mailer == nil {
		utils.HandleError(c, utils.NewApiError("邮件服务未配置", http.StatusServiceUnavailable, "MAIL_NOT_CONFIGURED"))
		return
	}

	var req models.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数"))
		return
	}

	lead, err := leadRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrLeadNotFound {
			utils.HandleError(c, utils.CreateNotFoundError("线索"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !canAccessLead(user, lead) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	tmpl, err := findUsableEmailTemplate(c, user, req.TemplateID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	subject, err := service.RenderTemplate(tmpl.Subject, *lead)
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError(err.Error()))
		return
	}
	body, err := service.RenderTemplate(tmpl.Body, *lead)
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError(err.Error()))
		return
	}

	if err := mailer.Send(lead.ContactEmail, subject, body); err != nil {
		utils.HandleError(c, err)
		return
	}

	if lead.Status == models.LeadStatusNew {
		if _, err := service.ApplyManualTransition(c.Request.Context(), leadRepo, *lead, models.LeadStatusEmailSent, time.Now()); err != nil {
			utils.LogError(err, map[string]interface{}{"leadId": lead.ID.Hex()}, "发送后更新线索状态失败")
		} else {
			leadCache.Invalidate()
		}
	}

	// 发送邮件计入当日发邮件任务
	incrementDailyTaskCounter(c, user.ID, models.DailyTaskSendEmails)

	utils.SuccessResponse(c, nil, "邮件发送成功")
}
