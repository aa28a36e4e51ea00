package controller

import (
	"skill_quiz_backend/internal/service"
	"skill_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

type StartAttemptRequest struct {
	QuizID uint                   `json:"quiz_id"`
	Meta   map[string]interface{} `json:"meta"`
}

type SubmitAttemptRequest struct {
	AttemptID uint                  `json:"attempt_id"`
	Answers   []service.AnswerInput `json:"answers" binding:"dive"`
}

type EndAttemptRequest struct {
	AttemptID uint `json:"attempt_id"`
}

// Start godoc
// @Summary 开始答题
// @Tags 答题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartAttemptRequest true "测验ID"
// @Success 201 {object} util.Response{data=service.StartAttemptResult}
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/attempts/start [post]
func (c *AttemptController) Start(ctx *gin.Context) {
	var req StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AttemptService.Start(ctx.Request.Context(), util.GetUserFromContext(ctx), req.QuizID, req.Meta)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// Submit godoc
// @Summary 提交答案
// @Description 校验题目归属并判分，整个过程在一个事务内完成
// @Tags 答题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitAttemptRequest true "答案"
// @Success 200 {object} util.Response{data=service.SubmitAttemptResult}
// @Failure 400 {object} util.Response "题目不属于该测验"
// @Failure 403 {object} util.Response "无权操作"
// @Failure 404 {object} util.Response "答题记录不存在"
// @Failure 409 {object} util.Response "答题已结束"
// @Router /api/attempts/submit [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	var req SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AttemptService.Submit(ctx.Request.Context(), util.GetUserFromContext(ctx), req.AttemptID, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// End godoc
// @Summary 结束答题
// @Description 只记录结束时间，不判分
// @Tags 答题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EndAttemptRequest true "答题ID"
// @Success 200 {object} util.Response{data=service.EndAttemptResult}
// @Failure 409 {object} util.Response "答题已结束"
// @Router /api/attempts/end [post]
func (c *AttemptController) End(ctx *gin.Context) {
	var req EndAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AttemptService.End(ctx.Request.Context(), util.GetUserFromContext(ctx), req.AttemptID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Get godoc
// @Summary 答题详情
// @Tags 答题
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "答题ID"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Router /api/attempts/{id} [get]
func (c *AttemptController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	attempt, err := c.AttemptService.Get(ctx.Request.Context(), util.GetUserFromContext(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}
