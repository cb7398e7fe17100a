package controller

import (
	"coreclad-be/internal/dto"
	"coreclad-be/internal/pkg/serverutils"
	"coreclad-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	GetProducts(ctx *fiber.Ctx) error
	GetProduct(ctx *fiber.Ctx) error
}

type productController struct {
	service service.IProductService
}

func NewProductController(service service.IProductService) IProductController {
	return &productController{service: service}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/products")
	h.Get("/", c.GetProducts)
	h.Get("/:id", c.GetProduct)
}

func (c *productController) GetProducts(ctx *fiber.Ctx) error {
	var query dto.ProductQuery
	if err := serverutils.ParseQuery(ctx, &query); err != nil {
		return fail(ctx, err)
	}

	res, err := c.service.ListPublic(ctx.UserContext(), query.Type)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Products", res))
}

func (c *productController) GetProduct(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid product id"))
	}

	res, err := c.service.GetPublic(ctx.UserContext(), id)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Product", res))
}
