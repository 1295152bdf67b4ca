package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruitment-backend/controllers"
	visaprocess "recruitment-backend/lib/visa-process"
	apimodels "recruitment-backend/models/api"
	visaapimodels "recruitment-backend/models/api/visa"
)

type visaProcessApiController struct {
	controllers.BaseAPIController
}

func InitVisaProcessApiRouters(app *fiber.App) {
	controller := visaProcessApiController{}
	app.Route("visa-process", func(router fiber.Router) {
		router.Post("start/:id", controller.start) // id кандидата на этапе Offer Letter Accepted
		router.Get(":id", controller.get)
		router.Put(":id/stage", controller.completeStage)
	})
}

func (c *visaProcessApiController) start(ctx *fiber.Ctx) error {
	jobApplicantID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := visaprocess.Instance.Start(jobApplicantID, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *visaProcessApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := visaprocess.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Завершить этап визового процесса
// @Tags Визовый процесс
// @Param   id   path string true "ID визового процесса"
// @Param   body body visaapimodels.CompleteStageRequest true "request body"
// @Success 200 {object} apimodels.Response{data=visaapimodels.VisaProcessView}
// @Failure 409 {object} apimodels.Response
// @router /api/v1/visa-process/{id}/stage [put]
func (c *visaProcessApiController) completeStage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload visaapimodels.CompleteStageRequest
	if err = c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := visaprocess.Instance.CompleteStage(id, payload, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
