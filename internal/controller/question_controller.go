package controller

import (
	"skill_quiz_backend/internal/service"
	"skill_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// List godoc
// @Summary 题目列表
// @Tags 题目
// @Produce json
// @Security ApiKeyAuth
// @Param skill_id query int false "技能ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	skillID, err := util.ParseOptionalUint(ctx.Query("skill_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"), util.DefaultPageSize)

	questions, err := c.QuestionService.List(ctx.Request.Context(), skillID, page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Create godoc
// @Summary 创建题目
// @Description correct_index 必须落在 options 范围内
// @Tags 题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateQuestionInput true "题目信息"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "技能不存在"
// @Router /api/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.CreateQuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, q)
}
