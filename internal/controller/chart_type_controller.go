package controller

import (
	"report-service-be/internal/pkg/serverutils"
	"report-service-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChartTypeController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type chartTypeController struct {
	chartService service.IChartService
}

func NewChartTypeController(chartService service.IChartService) IChartTypeController {
	return &chartTypeController{chartService: chartService}
}

func (c *chartTypeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chart-type/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
}

func (c *chartTypeController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.chartService.GetChartTypes(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chart types", res))
}

func (c *chartTypeController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.chartService.GetChartType(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chart type", res))
}
