package controller

import (
	"coreclad-be/internal/dto"
	"coreclad-be/internal/pkg/serverutils"
	"coreclad-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
}

type authController struct {
	service  service.IAuthService
	registry *service.ClientRegistry
}

func NewAuthController(service service.IAuthService, registry *service.ClientRegistry) IAuthController {
	return &authController{
		service:  service,
		registry: registry,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
	h.Get("/session", c.Session)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return fail(ctx, err)
	}

	client := c.registry.Get(serverutils.ClientID(ctx))
	res, err := c.service.Login(ctx.UserContext(), client, &req)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	client := c.registry.Get(serverutils.ClientID(ctx))
	if err := c.service.Logout(ctx.UserContext(), client); err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out", nil))
}

// Session reports the current state without waiting for a pending restore.
func (c *authController) Session(ctx *fiber.Ctx) error {
	client := c.registry.Get(serverutils.ClientID(ctx))
	return ctx.JSON(serverutils.SuccessResponse("Session state", c.service.Session(ctx.UserContext(), client)))
}
