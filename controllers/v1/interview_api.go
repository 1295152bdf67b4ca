package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"recruitment-backend/controllers"
	xlsexport "recruitment-backend/lib/export/xls"
	"recruitment-backend/lib/interview"
	interviewdraft "recruitment-backend/lib/interview-draft"
	interviewbulk "recruitment-backend/lib/interview/bulk"
	apimodels "recruitment-backend/models/api"
	interviewapimodels "recruitment-backend/models/api/interview"
)

type interviewApiController struct {
	controllers.BaseAPIController
}

func InitInterviewApiRouters(app *fiber.App) {
	controller := interviewApiController{}
	app.Route("interview", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Route("bulk", func(bulkRouter fiber.Router) {
			bulkRouter.Post("", controller.createBulk)
			bulkRouter.Post("selection", controller.selectionContext) // проверка общей заявки и позиции
			bulkRouter.Post("export", controller.exportBulkReport)    // отчет о массовом назначении в xlsx
		})
		router.Route("draft", func(draftRouter fiber.Router) {
			draftRouter.Post("", controller.createDraft)
			draftRouter.Get(":token", controller.getDraft)
		})
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("result", controller.setResult)
			idRouter.Put("cancel", controller.cancel)
			idRouter.Get("letter", controller.letter) // приглашение на собеседование в pdf
		})
	})
}

// @Summary Назначить собеседование
// @Tags Собеседование
// @Description Кандидат указывается идентификатором или токеном черновика
// @Param   body body interviewapimodels.InterviewData true "request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/interview [post]
func (c *interviewApiController) create(ctx *fiber.Ctx) error {
	var payload interviewapimodels.InterviewData
	if err := c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interview.Instance.Create(payload, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *interviewApiController) list(ctx *fiber.Ctx) error {
	var payload interviewapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := interview.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

func (c *interviewApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interview.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Результат собеседования
// @Tags Собеседование
// @Param   id   path string true "ID собеседования"
// @Param   body body interviewapimodels.ResultRequest true "request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 409 {object} apimodels.Response
// @router /api/v1/interview/{id}/result [put]
func (c *interviewApiController) setResult(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload interviewapimodels.ResultRequest
	if err = c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interview.Instance.SetResult(id, payload, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *interviewApiController) cancel(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = interview.Instance.Cancel(id, c.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *interviewApiController) letter(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, err := interview.Instance.Letter(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Attachment(fmt.Sprintf("interview_%s.pdf", id))
	return ctx.Send(body)
}

// @Summary Массовое назначение собеседований
// @Tags Собеседование
// @Description Отказ по отдельному кандидату попадает в отчет и не прерывает обработку остальных
// @Param   body body interviewapimodels.BulkRequest true "request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.BulkReport}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/bulk [post]
func (c *interviewApiController) createBulk(ctx *fiber.Ctx) error {
	var payload interviewapimodels.BulkRequest
	if err := c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	report, err := interviewbulk.Instance.CreateBulk(ctx.UserContext(), payload, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(report))
}

func (c *interviewApiController) selectionContext(ctx *fiber.Ctx) error {
	var payload interviewapimodels.SelectionRequest
	if err := c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := interviewbulk.Instance.SelectionContext(payload.JobApplicantIDs)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

func (c *interviewApiController) exportBulkReport(ctx *fiber.Ctx) error {
	var payload interviewapimodels.BulkReport
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := xlsexport.Instance.ExportBulkReport(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Attachment("bulk_interviews.xlsx")
	return ctx.Send(buffer.Bytes())
}

func (c *interviewApiController) createDraft(ctx *fiber.Ctx) error {
	var payload interviewapimodels.DraftRequest
	if err := c.BodyParserValid(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interviewdraft.Instance.Create(payload, c.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

func (c *interviewApiController) getDraft(ctx *fiber.Ctx) error {
	token, err := c.GetParam(ctx, "token")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interviewdraft.Instance.Get(token)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
