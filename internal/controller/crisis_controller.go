package controller

import (
	"peer-support-be/internal/dto"
	"peer-support-be/internal/entity"
	"peer-support-be/internal/pkg/serverutils"
	"peer-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICrisisController interface {
	RegisterRoutes(r fiber.Router)
	ListAlerts(ctx *fiber.Ctx) error
	Acknowledge(ctx *fiber.Ctx) error
}

type crisisController struct {
	service service.ICrisisService
}

func NewCrisisController(service service.ICrisisService) ICrisisController {
	return &crisisController{service: service}
}

func (c *crisisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/crisis-alerts", serverutils.JwtMiddleware, requireHelperRole)
	h.Get("/", c.ListAlerts)
	h.Post("/:id/acknowledge", c.Acknowledge)
}

// requireHelperRole gates alert access to responders and admins.
func requireHelperRole(ctx *fiber.Ctx) error {
	role := entity.UserRole(currentRole(ctx))
	if !role.IsHelperRole() && role != entity.UserRoleAdmin {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(fiber.StatusForbidden, "helper role required"))
	}
	return ctx.Next()
}

func (c *crisisController) ListAlerts(ctx *fiber.Ctx) error {
	var req dto.ListAlertsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.ListAlerts(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Alerts retrieved", res))
}

func (c *crisisController) Acknowledge(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	alertID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid alert id")
	}

	if err := c.service.Acknowledge(ctx.Context(), alertID, userID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Alert acknowledged", nil))
}
