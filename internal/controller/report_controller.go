package controller

import (
	"skill_quiz_backend/internal/config"
	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/service"
	"skill_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
	Cfg           *config.ReportConfig
}

func NewReportController(reportService *service.ReportService, cfg *config.ReportConfig) *ReportController {
	return &ReportController{
		ReportService: reportService,
		Cfg:           cfg,
	}
}

// UserPerformance godoc
// @Summary 用户成绩报表
// @Description 管理员或本人可查看；avg 为已完成答题的平均分
// @Tags 报表
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户ID"
// @Param quizId query int false "测验ID"
// @Success 200 {object} util.Response{data=model.UserPerformanceReport}
// @Router /api/reports/user/{userId} [get]
func (c *ReportController) UserPerformance(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	quizID, err := util.ParseOptionalUint(ctx.Query("quizId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	report, err := c.ReportService.UserPerformance(ctx.Request.Context(), util.GetUserFromContext(ctx), userID, quizID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// SkillGap godoc
// @Summary 技能短板报表
// @Description from/to 均按 finished_at 过滤，仅日期的 to 包含当天
// @Tags 报表
// @Produce json
// @Security ApiKeyAuth
// @Param userId query int false "用户ID"
// @Param quizId query int false "测验ID"
// @Param from query string false "开始时间 (RFC3339 或 YYYY-MM-DD)"
// @Param to query string false "结束时间 (RFC3339 或 YYYY-MM-DD)"
// @Success 200 {object} util.Response{data=[]model.SkillGapRow}
// @Router /api/reports/skill-gap [get]
func (c *ReportController) SkillGap(ctx *gin.Context) {
	var (
		f   model.SkillGapFilter
		err error
	)
	if f.UserID, err = util.ParseOptionalUint(ctx.Query("userId")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	if f.QuizID, err = util.ParseOptionalUint(ctx.Query("quizId")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	if f.From, err = util.ParseTimeBound(ctx.Query("from"), false); err != nil {
		util.HandleError(ctx, err)
		return
	}
	if f.To, err = util.ParseTimeBound(ctx.Query("to"), true); err != nil {
		util.HandleError(ctx, err)
		return
	}

	rows, err := c.ReportService.SkillGap(ctx.Request.Context(), f)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// TimeSeries godoc
// @Summary 按天统计答题
// @Tags 报表
// @Produce json
// @Security ApiKeyAuth
// @Param range query string false "时间窗口，如 7d"
// @Param quizId query int false "测验ID"
// @Success 200 {object} util.Response{data=[]model.TimeSeriesPoint}
// @Router /api/reports/time-series [get]
func (c *ReportController) TimeSeries(ctx *gin.Context) {
	days, err := util.ParseDayRange(ctx.Query("range"), c.Cfg.DefaultRangeDays, c.Cfg.MaxRangeDays)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	quizID, err := util.ParseOptionalUint(ctx.Query("quizId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	points, err := c.ReportService.TimeSeries(ctx.Request.Context(), days, quizID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, points)
}

// Export godoc
// @Summary 导出用户成绩报表
// @Tags 报表
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "用户ID"
// @Param quizId query int false "测验ID"
// @Param format query string false "csv 或 json"
// @Success 200 {object} util.Response{data=service.ExportResult}
// @Router /api/reports/user/{userId}/export [get]
func (c *ReportController) Export(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	quizID, err := util.ParseOptionalUint(ctx.Query("quizId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	res, err := c.ReportService.ExportUserReport(ctx.Request.Context(), userID, quizID, ctx.DefaultQuery("format", util.ExportCSV))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
