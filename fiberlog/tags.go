package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const (
	TagPid      = "pid"
	TagStatus   = "status"
	TagLatency  = "latency"
	TagMethod   = "method"
	TagPath     = "path"
	TagURL      = "url"
	TagIP       = "ip"
	TagBody     = "body"
	TagResBody  = "res_body"
	TagRoute    = "route"
	RequestID   = "request_id"
	TagBytesOut = "bytes_out"
	TagUserID   = "user_id"
)

// userIDHeader заголовок с идентификатором пользователя, выставляется шлюзом
const userIDHeader = "X-User-ID"

// maxBodyLength тело длиннее обрезается, выгрузки xlsx и pdf в лог не попадают целиком
const maxBodyLength = 2048

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(_ *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Path()
		},
		TagURL: func(c *fiber.Ctx, _ *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, _ *data) interface{} {
			return c.IP()
		},
		TagBody: func(c *fiber.Ctx, _ *data) interface{} {
			return truncate(c.Body(), string(c.Request().Header.ContentType()))
		},
		TagResBody: func(c *fiber.Ctx, _ *data) interface{} {
			return truncate(c.Response().Body(), string(c.Response().Header.ContentType()))
		},
		TagRoute: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Route().Path
		},
		RequestID: func(c *fiber.Ctx, _ *data) interface{} {
			if value, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
				return value
			}
			return string(c.Response().Header.Peek(fiber.HeaderXRequestID))
		},
		TagBytesOut: func(c *fiber.Ctx, _ *data) interface{} {
			return len(c.Response().Body())
		},
		TagUserID: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Get(userIDHeader)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func truncate(body []byte, contentType string) string {
	if len(body) == 0 {
		return ""
	}
	switch contentType {
	case fiber.MIMEApplicationJSON, fiber.MIMEApplicationJSONCharsetUTF8, fiber.MIMETextPlain, fiber.MIMETextPlainCharsetUTF8, "":
	default:
		return "<" + contentType + ">"
	}
	if len(body) > maxBodyLength {
		return string(body[:maxBodyLength]) + "..."
	}
	return string(body)
}
