package controller

import (
	"strconv"

	"learnsphere_backend/internal/service"
	"learnsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type setLessonProgressRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
	Percent  *int `json:"percent" binding:"required"`
}

// @Summary 更新课时进度
// @Description 上报课时观看百分比，达到 100 视为完成并重算课程进度
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "课时ID"
// @Param progress body setLessonProgressRequest true "进度百分比"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId}/progress [put]
func (c *ProgressController) SetLessonProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID, err := strconv.Atoi(ctx.Param("lessonId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid lesson ID")
		return
	}

	var req setLessonProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courseProgress, err := c.ProgressService.SetLessonProgress(user.UserID, uint(lessonID), req.CourseID, *req.Percent)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, courseProgress)
}

// @Summary 查询学习总览
// @Description 返回当前用户的课程进度、测验统计、成就与经验值
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/progress/summary [get]
func (c *ProgressController) GetSummary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.ProgressService.GetProgressSummary(user.UserID)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
