package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUserID reads the authenticated user id the JWT middleware stored in
// locals.
func currentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	idStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}
	return id, nil
}

// currentRole reads the authenticated role from locals.
func currentRole(ctx *fiber.Ctx) string {
	role, _ := ctx.Locals("role").(string)
	return role
}
