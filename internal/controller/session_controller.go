package controller

import (
	"errors"

	"peer-support-be/internal/dto"
	"peer-support-be/internal/pkg/serverutils"
	"peer-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	GetScores(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions", serverutils.JwtMiddleware)
	h.Post("/", c.Start)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Post("/:id/messages", c.SendMessage)
	h.Post("/:id/complete", c.Complete)
	h.Get("/:id/scores", c.GetScores)
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.Context(), userID, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session started", res))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessions retrieved", res))
}

func (c *sessionController) Get(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.Context(), userID, sessionID)
	if err != nil {
		return sessionError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Session retrieved", res))
}

func (c *sessionController) SendMessage(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), userID, sessionID, &req)
	if err != nil {
		return sessionError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *sessionController) Complete(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Complete(ctx.Context(), userID, sessionID)
	if err != nil {
		return sessionError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Session completed, scoring queued", res))
}

func (c *sessionController) GetScores(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	sessionID, err := sessionIDParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetScores(ctx.Context(), userID, sessionID)
	if err != nil {
		return sessionError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Scores retrieved", res))
}

func sessionIDParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	return id, nil
}

func sessionError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrSessionCompleted), errors.Is(err, service.ErrSessionNotScored):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(fiber.StatusConflict, err.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
