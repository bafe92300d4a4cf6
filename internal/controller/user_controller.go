package controller

import (
	"strconv"

	"learnsphere_backend/internal/service"
	"learnsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// @Summary 每日签到
// @Description 记录签到，同一天重复签到幂等，连续签到计入成就
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/users/checkin [post]
func (c *UserController) Checkin(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	checkin, err := c.UserService.Checkin(user.UserID)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, checkin)
}

// @Summary 经验值排行榜
// @Description 按经验值降序返回用户榜单
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param limit query int false "返回条数，默认10"
// @Success 200 {object} util.Response
// @Router /api/leaderboard [get]
func (c *UserController) GetLeaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	users, err := c.UserService.GetLeaderboard(limit)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, users)
}

// @Summary 查询个人档案
// @Description 返回当前用户档案，含经验值
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.GetProfile(user.UserID)
	if err != nil {
		writeEngineError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}
