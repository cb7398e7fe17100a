package controller

import (
	"context"
	"time"

	"coreclad-be/internal/dto"
	"coreclad-be/internal/pkg/serverutils"
	"coreclad-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const adminClientLocal = "admin_client"

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetDashboardStats(ctx *fiber.Ctx) error
	GetProducts(ctx *fiber.Ctx) error
	ToggleSelect(ctx *fiber.Ctx) error
	ToggleSelectAll(ctx *fiber.Ctx) error
	BulkDelete(ctx *fiber.Ctx) error
}

type adminController struct {
	service        service.IAdminService
	productService service.IProductService
	registry       *service.ClientRegistry
	restoreWait    time.Duration
}

func NewAdminController(
	service service.IAdminService,
	productService service.IProductService,
	registry *service.ClientRegistry,
	restoreWait time.Duration,
) IAdminController {
	if restoreWait <= 0 {
		restoreWait = 5 * time.Second
	}
	return &adminController{
		service:        service,
		productService: productService,
		registry:       registry,
		restoreWait:    restoreWait,
	}
}

// adminMiddleware admits only clients whose session is authenticated. It waits
// for a pending restore so a page reload does not bounce a signed-in admin.
func (c *adminController) adminMiddleware(ctx *fiber.Ctx) error {
	client := c.registry.Get(serverutils.ClientID(ctx))

	waitCtx, cancel := context.WithTimeout(ctx.UserContext(), c.restoreWait)
	defer cancel()
	sess := client.Store.Restore(waitCtx)

	if sess.Loading {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, "Session is still loading"))
	}
	if !sess.IsAuthenticated() {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Sign in required"))
	}

	ctx.Locals(adminClientLocal, client)
	return ctx.Next()
}

func adminClient(ctx *fiber.Ctx) *service.AdminClient {
	client, _ := ctx.Locals(adminClientLocal).(*service.AdminClient)
	return client
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Get("/dashboard", c.adminMiddleware, c.GetDashboardStats)

	h.Get("/products", c.adminMiddleware, c.GetProducts)
	h.Post("/products/select-all", c.adminMiddleware, c.ToggleSelectAll)
	h.Post("/products/bulk-delete", c.adminMiddleware, c.BulkDelete)
	h.Post("/products/:id/select", c.adminMiddleware, c.ToggleSelect)
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	res, err := c.service.GetDashboardStats(ctx.UserContext())
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats", res))
}

func (c *adminController) GetProducts(ctx *fiber.Ctx) error {
	var query dto.ProductQuery
	if err := serverutils.ParseQuery(ctx, &query); err != nil {
		return fail(ctx, err)
	}

	// Filters persist per client, so only the ones present on the request change
	var filter dto.ProductFilter
	args := ctx.Context().QueryArgs()
	if args.Has("q") {
		filter.Search = &query.Search
	}
	if args.Has("type") {
		filter.Type = &query.Type
	}

	res, err := c.productService.AdminList(ctx.UserContext(), adminClient(ctx), filter)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Products", res))
}

func (c *adminController) ToggleSelect(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid product id"))
	}

	res, err := c.productService.ToggleSelect(ctx.UserContext(), adminClient(ctx), id)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection updated", res))
}

func (c *adminController) ToggleSelectAll(ctx *fiber.Ctx) error {
	res, err := c.productService.ToggleSelectAll(ctx.UserContext(), adminClient(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection updated", res))
}

func (c *adminController) BulkDelete(ctx *fiber.Ctx) error {
	var req dto.BulkDeleteRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return fail(ctx, err)
	}

	res, err := c.productService.BulkDelete(ctx.UserContext(), adminClient(ctx), *req.Confirm)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Products deleted", res))
}
