package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/pkg/serverutils"
	"ai-advisor-be/internal/service"
)

type ICompanyController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
}

type companyController struct {
	companyService service.ICompanyService
}

func NewCompanyController(companyService service.ICompanyService) ICompanyController {
	return &companyController{
		companyService: companyService,
	}
}

func (c *companyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/company/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.Create)
	h.Get("/", c.Index)
	h.Get("/summary", c.Summary)
}

func (c *companyController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.companyService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create company", res))
}

func (c *companyController) Index(ctx *fiber.Ctx) error {
	res, err := c.companyService.GetAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get companies", res))
}

func (c *companyController) Summary(ctx *fiber.Ctx) error {
	res, err := c.companyService.Summary(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get summary", res))
}
