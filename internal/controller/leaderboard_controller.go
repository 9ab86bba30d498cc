package controller

import (
	"peer-support-be/internal/pkg/serverutils"
	"peer-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILeaderboardController interface {
	RegisterRoutes(r fiber.Router)
	Leaderboard(ctx *fiber.Ctx) error
}

type leaderboardController struct {
	service service.ILeaderboardService
}

func NewLeaderboardController(service service.ILeaderboardService) ILeaderboardController {
	return &leaderboardController{service: service}
}

func (c *leaderboardController) RegisterRoutes(r fiber.Router) {
	r.Get("/leaderboard", serverutils.JwtMiddleware, c.Leaderboard)
}

func (c *leaderboardController) Leaderboard(ctx *fiber.Ctx) error {
	res, err := c.service.Leaderboard(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Leaderboard retrieved", res))
}
