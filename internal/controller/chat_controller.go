package controller

import (
	"report-service-be/internal/apperror"
	"report-service-be/internal/dto"
	"report-service-be/internal/pkg/serverutils"
	"report-service-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	GetUserSessions(ctx *fiber.Ctx) error
	GetSessionMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	UpdateGeneratedSql(ctx *fiber.Ctx) error
	UpdateMessageOrGeneratedSql(ctx *fiber.Ctx) error
	UpdateReportName(ctx *fiber.Ctx) error
	GetNextStep(ctx *fiber.Ctx) error
	AddMeasuredValue(ctx *fiber.Ctx) error
	UpdateChart(ctx *fiber.Ctx) error
	GetChartTypes(ctx *fiber.Ctx) error
	GetWorkflowStatus(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService     service.IChatService
	chartService    service.IChartService
	workflowService service.IWorkflowService
}

func NewChatController(
	chatService service.IChatService,
	chartService service.IChartService,
	workflowService service.IWorkflowService,
) IChatController {
	return &chatController{
		chatService:     chatService,
		chartService:    chartService,
		workflowService: workflowService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("create-session", c.CreateSession)
	h.Get("session/:id", c.GetSession)
	h.Get("user-sessions", c.GetUserSessions)
	h.Get("session/:id/messages", c.GetSessionMessages)
	h.Post("send-message", c.SendMessage)
	h.Post("update-generated-sql", c.UpdateGeneratedSql)
	h.Post("update-message-or-generated-sql", c.UpdateMessageOrGeneratedSql)
	h.Post("update-report-name", c.UpdateReportName)
	h.Get("next-step/:sessionId", c.GetNextStep)
	h.Post("session/:id/measured-values", c.AddMeasuredValue)
	h.Post("update-chart", c.UpdateChart)
	h.Get("chart-types", c.GetChartTypes)
	h.Get("status/:sessionId", c.GetWorkflowStatus)
	h.Post("publish/:sessionId", c.Publish)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	res, err := c.chatService.CreateSession(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatController) GetSession(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)
	sessionId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.chatService.GetSession(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat session", res))
}

func (c *chatController) GetUserSessions(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.chatService.GetUserSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get user sessions", res))
}

func (c *chatController) GetSessionMessages(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)
	sessionId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.chatService.GetSessionMessages(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session messages", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.ProcessMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process message", res))
}

func (c *chatController) UpdateGeneratedSql(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.UpdateGeneratedSqlRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.UpdateLatestGeneratedSql(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update generated sql", res))
}

func (c *chatController) UpdateMessageOrGeneratedSql(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.UpdateMessageOrSqlRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.UpdateMessageAndGeneratedSql(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update message", res))
}

func (c *chatController) UpdateReportName(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.UpdateReportNameRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.UpdateReportName(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update report name", res))
}

func (c *chatController) GetNextStep(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)
	sessionId, err := parseIdParam(ctx, "sessionId")
	if err != nil {
		return err
	}

	res, err := c.chatService.GetNextStep(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.JSON(serverutils.SuccessResponse[*dto.NextStepResponse]("All steps completed", nil))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get next step", res))
}

func (c *chatController) AddMeasuredValue(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)
	sessionId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AddMeasuredValueRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.AddMeasuredValue(ctx.Context(), userId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add measured value", res))
}

func (c *chatController) UpdateChart(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.UpdateChartConfigurationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chartService.UpdateChartConfiguration(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update chart configuration", res))
}

func (c *chatController) GetChartTypes(ctx *fiber.Ctx) error {
	res, err := c.chartService.GetChartTypes(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chart types", res))
}

func (c *chatController) GetWorkflowStatus(ctx *fiber.Ctx) error {
	sessionId, err := parseIdParam(ctx, "sessionId")
	if err != nil {
		return err
	}

	res, err := c.workflowService.GetStatus(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get workflow status", res))
}

func (c *chatController) Publish(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)
	sessionId, err := parseIdParam(ctx, "sessionId")
	if err != nil {
		return err
	}

	res, err := c.workflowService.Publish(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success publish report", res))
}

func parseIdParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid %s parameter", name)
	}
	return id, nil
}
