package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruitment-backend/controllers"
	interviewround "recruitment-backend/lib/interview-round"
	apimodels "recruitment-backend/models/api"
	interviewapimodels "recruitment-backend/models/api/interview"
)

type interviewRoundApiController struct {
	controllers.BaseAPIController
}

func InitInterviewRoundApiRouters(app *fiber.App) {
	controller := interviewRoundApiController{}
	app.Route("interview-round", func(router fiber.Router) {
		router.Get("list", controller.list)
		router.Post("", controller.create)
		router.Get(":id", controller.get)
	})
}

func (c *interviewRoundApiController) create(ctx *fiber.Ctx) error {
	var payload interviewapimodels.RoundData
	if err := c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := interviewround.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

func (c *interviewRoundApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interviewround.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *interviewRoundApiController) list(ctx *fiber.Ctx) error {
	list, err := interviewround.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
