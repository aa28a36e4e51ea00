package controller

import (
	"skill_quiz_backend/internal/service"
	"skill_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

type CreateSkillRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// List godoc
// @Summary 技能列表
// @Tags 技能
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Skill}
// @Router /api/skills [get]
func (c *SkillController) List(ctx *gin.Context) {
	skills, err := c.SkillService.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// Create godoc
// @Summary 创建技能
// @Description 名称不区分大小写唯一
// @Tags 技能
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateSkillRequest true "技能信息"
// @Success 201 {object} util.Response{data=model.Skill}
// @Failure 409 {object} util.Response "技能已存在"
// @Router /api/skills [post]
func (c *SkillController) Create(ctx *gin.Context) {
	var req CreateSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.SkillService.Create(ctx.Request.Context(), req.Name, req.Description)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, skill)
}
