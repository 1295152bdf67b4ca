package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruitment-backend/controllers"
	jobapplicant "recruitment-backend/lib/job-applicant"
	jobapplicanthistoryhandler "recruitment-backend/lib/job-applicant-history"
	apimodels "recruitment-backend/models/api"
	jobapplicantapimodels "recruitment-backend/models/api/jobapplicant"
)

type jobApplicantApiController struct {
	controllers.BaseAPIController
}

func InitJobApplicantApiRouters(app *fiber.App) {
	controller := jobApplicantApiController{}
	app.Route("job-applicant", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export) // выгрузка в xlsx
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("ready-for-pipeline", controller.readyForPipeline)
			idRouter.Put("pipeline", controller.assignPipeline)
			idRouter.Delete("pipeline", controller.clearPipeline)
			idRouter.Put("stage", controller.moveToStage)
			idRouter.Put("convert", controller.convert)
			idRouter.Get("passport-warning", controller.passportWarning)
			idRouter.Post("history", controller.history)
		})
	})
}

func (c *jobApplicantApiController) create(ctx *fiber.Ctx) error {
	var payload jobapplicantapimodels.JobApplicantData
	if err := c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := jobapplicant.Instance.Create(payload, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *jobApplicantApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := jobapplicant.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *jobApplicantApiController) list(ctx *fiber.Ctx) error {
	var payload jobapplicantapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := jobapplicant.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

func (c *jobApplicantApiController) export(ctx *fiber.Ctx) error {
	var payload jobapplicantapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := jobapplicant.Instance.Export(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Attachment("job_applicants.xlsx")
	return ctx.Send(buffer.Bytes())
}

// @Summary Признак "готов к воронке"
// @Tags Кандидат
// @Description Включение проверяет карточку человека и документы и переводит кандидата на первый этап воронки Interviews
// @Param   id   path string true "ID кандидата"
// @Param   body body jobapplicantapimodels.ReadyForPipelineRequest true "request body"
// @Success 200 {object} apimodels.Response{data=jobapplicantapimodels.JobApplicantView}
// @Failure 409 {object} apimodels.Response{data=[]string}
// @router /api/v1/job-applicant/{id}/ready-for-pipeline [put]
func (c *jobApplicantApiController) readyForPipeline(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapplicantapimodels.ReadyForPipelineRequest
	if err = c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := jobapplicant.Instance.SetReadyForPipeline(id, *payload.Ready, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *jobApplicantApiController) assignPipeline(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapplicantapimodels.AssignPipelineRequest
	if err = c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := jobapplicant.Instance.AssignPipeline(id, payload.Pipeline, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *jobApplicantApiController) clearPipeline(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := jobapplicant.Instance.ClearPipeline(id, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *jobApplicantApiController) moveToStage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapplicantapimodels.MoveToStageRequest
	if err = c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := jobapplicant.Instance.MoveToStage(id, payload.StageName, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *jobApplicantApiController) convert(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := jobapplicant.Instance.ConvertToApplication(id, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *jobApplicantApiController) passportWarning(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	warning, err := jobapplicant.Instance.PassportExpiryWarning(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(warning))
}

func (c *jobApplicantApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapplicantapimodels.HistoryFilter
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := jobapplicanthistoryhandler.Instance.List(id, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}
