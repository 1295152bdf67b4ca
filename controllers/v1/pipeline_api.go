package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruitment-backend/controllers"
	"recruitment-backend/lib/pipeline"
	apimodels "recruitment-backend/models/api"
)

type pipelineApiController struct {
	controllers.BaseAPIController
}

func InitPipelineApiRouters(app *fiber.App) {
	controller := pipelineApiController{}
	app.Route("pipeline", func(router fiber.Router) {
		router.Get("list", controller.list)
		router.Post("setup", controller.setup) // создать недостающие воронки и этапы
	})
}

func (c *pipelineApiController) list(ctx *fiber.Ctx) error {
	list, err := pipeline.Instance.List()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

func (c *pipelineApiController) setup(ctx *fiber.Ctx) error {
	result, err := pipeline.Instance.Setup()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
