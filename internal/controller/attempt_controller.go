package controller

import (
	"errors"
	"strconv"

	"learnsphere_backend/internal/service"
	"learnsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// writeEngineError 将引擎的哨兵错误映射到 HTTP 状态码。
// NotFound/InvalidState 属于用法错误，直接返回不重试。
func writeEngineError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAttemptAlreadyCompleted),
		errors.Is(err, util.ErrAttemptInProgress),
		errors.Is(err, util.ErrInvalidAttemptState):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidSelection):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 开始测验作答
// @Description 为当前用户创建一次作答会话并返回题目快照与倒计时
// @Tags 测验作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "测验ID"
// @Success 201 {object} util.Response
// @Router /api/quizzes/{quizId}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := strconv.Atoi(ctx.Param("quizId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid quiz ID")
		return
	}

	result, err := c.AttemptService.StartAttempt(user.UserID, uint(quizID))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

type recordAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	OptionIDs  []uint `json:"optionIds"`
}

// @Summary 记录答案
// @Description 记录某题的选择，同题重复提交以最后一次为准，正式落库发生在交卷时
// @Tags 测验作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attemptId path int true "作答ID"
// @Param answer body recordAnswerRequest true "选择的选项"
// @Success 200 {object} util.Response
// @Router /api/attempts/{attemptId}/answers [put]
func (c *AttemptController) RecordAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attemptID, err := strconv.Atoi(ctx.Param("attemptId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid attempt ID")
		return
	}

	var req recordAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AttemptService.RecordAnswer(user.UserID, uint(attemptID), req.QuestionID, req.OptionIDs); err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Answer recorded"})
}

// @Summary 交卷
// @Description 结束作答并评分，返回每题得分与总分
// @Tags 测验作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attemptId path int true "作答ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{attemptId}/submit [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attemptID, err := strconv.Atoi(ctx.Param("attemptId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid attempt ID")
		return
	}

	result, err := c.AttemptService.Submit(user.UserID, uint(attemptID))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 查询作答记录
// @Description 返回作答记录及每题 Response，仅本人可见
// @Tags 测验作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attemptId path int true "作答ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{attemptId} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attemptID, err := strconv.Atoi(ctx.Param("attemptId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid attempt ID")
		return
	}

	attempt, responses, err := c.AttemptService.GetAttempt(user.UserID, uint(attemptID))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"attempt": attempt, "responses": responses})
}

// @Summary 测验作答记录列表
// @Description 返回某测验的全部作答记录，仅教师与管理员可见
// @Tags 教学管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{quizId}/attempts [get]
func (c *AttemptController) ListQuizAttempts(ctx *gin.Context) {
	quizID, err := strconv.Atoi(ctx.Param("quizId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid quiz ID")
		return
	}

	attempts, err := c.AttemptService.ListQuizAttempts(uint(quizID))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// @Summary 查询剩余时间
// @Description 返回进行中作答会话的剩余秒数，不限时测验返回 null
// @Tags 测验作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attemptId path int true "作答ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{attemptId}/countdown [get]
func (c *AttemptController) GetCountdown(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attemptID, err := strconv.Atoi(ctx.Param("attemptId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid attempt ID")
		return
	}

	remaining, err := c.AttemptService.RemainingSeconds(user.UserID, uint(attemptID))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"countdownSeconds": remaining})
}
