package controller

import (
	"strconv"

	"learnsphere_backend/internal/service"
	"learnsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary 课程列表
// @Description 返回全部已发布课程
// @Tags 课程内容
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	courses, err := c.ContentService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// @Summary 课程详情
// @Description 返回课程及其课时列表
// @Tags 课程内容
// @Accept json
// @Produce json
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId} [get]
func (c *ContentController) GetCourse(ctx *gin.Context) {
	courseID, err := strconv.Atoi(ctx.Param("courseId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}

	course, err := c.ContentService.GetCourse(uint(courseID))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary 课程测验列表
// @Description 返回课程下的测验，不含正确答案
// @Tags 课程内容
// @Accept json
// @Produce json
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/quizzes [get]
func (c *ContentController) ListCourseQuizzes(ctx *gin.Context) {
	courseID, err := strconv.Atoi(ctx.Param("courseId"))
	if err != nil {
		util.BadRequest(ctx, "Invalid course ID")
		return
	}

	quizzes, err := c.ContentService.ListCourseQuizzes(uint(courseID))
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}
