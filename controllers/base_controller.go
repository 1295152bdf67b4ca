package controllers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"recruitment-backend/models"
	apimodels "recruitment-backend/models/api"
)

// UserIDHeader идентификатор пользователя передает шлюз авторизации
const UserIDHeader = "X-User-ID"

var validate = validator.New()

type BaseAPIController struct{}

type validatable interface {
	Validate() error
}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

// BodyParserValid разбор тела, проверка тегов validate и метода Validate запроса
func (c *BaseAPIController) BodyParserValid(ctx *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(ctx, out); err != nil {
		return err
	}
	if err := validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fieldErr := range validationErrors {
				fields = append(fields, fieldErr.Field())
			}
			return errors.Errorf("некорректно заполнены поля: %s", strings.Join(fields, ", "))
		}
		return err
	}
	if v, ok := out.(validatable); ok {
		return v.Validate()
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetParam(ctx, "id")
}

func (c *BaseAPIController) GetParam(ctx *fiber.Ctx, name string) (string, error) {
	value := ctx.Params(name)
	if value == "" {
		return "", errors.Errorf("не указан параметр %s", name)
	}
	return value, nil
}

func (c *BaseAPIController) GetUserID(ctx *fiber.Ctx) string {
	return ctx.Get(UserIDHeader)
}

// SendError ошибки движка отдаются с кодом причины, прочие - 500
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	status, body := ErrorResponse(err)
	return ctx.Status(status).JSON(body)
}

func ErrorResponse(err error) (int, apimodels.Response) {
	var notFound *models.ErrNotFound
	var invalid *models.ErrInvalidTransition
	var blocked *models.ErrPreconditionBlocked
	var conflict *models.ErrConcurrencyConflict
	var validation *models.ErrValidation
	switch {
	case errors.As(err, &notFound):
		return fiber.StatusNotFound, apimodels.NewRejection(err.Error(), string(notFound.Reason), nil)
	case errors.As(err, &blocked):
		return fiber.StatusConflict, apimodels.NewRejection(err.Error(), string(blocked.Reason), blocked.Details)
	case errors.As(err, &invalid):
		return fiber.StatusConflict, apimodels.NewRejection(err.Error(), string(invalid.Reason), nil)
	case errors.As(err, &conflict):
		return fiber.StatusConflict, apimodels.NewRejection(err.Error(), string(models.ReasonOf(err)), nil)
	case errors.As(err, &validation):
		return fiber.StatusBadRequest, apimodels.NewRejection(err.Error(), string(validation.Reason), nil)
	}
	return fiber.StatusInternalServerError, apimodels.NewError(err.Error())
}
