package shared

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var jsonAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

var (
	successResponse       = mustMarshal(Response{Code: 200, Message: "Success"})
	createdResponse       = mustMarshal(Response{Code: 201, Message: "Created"})
	badRequestResponse    = mustMarshal(Response{Code: 400, Message: "Bad Request"})
	unauthorizedResponse  = mustMarshal(Response{Code: 401, Message: "Unauthorized"})
	forbiddenResponse     = mustMarshal(Response{Code: 403, Message: "Forbidden"})
	notFoundResponse      = mustMarshal(Response{Code: 404, Message: "Not Found"})
	internalErrorResponse = mustMarshal(Response{Code: 500, Message: "Internal Server Error"})
)

var cannedResponses = map[int]struct {
	message string
	body    []byte
}{
	200: {"Success", successResponse},
	201: {"Created", createdResponse},
	400: {"Bad Request", badRequestResponse},
	401: {"Unauthorized", unauthorizedResponse},
	403: {"Forbidden", forbiddenResponse},
	404: {"Not Found", notFoundResponse},
	500: {"Internal Server Error", internalErrorResponse},
}

func mustMarshal(v interface{}) []byte {
	b, _ := jsonAPI.Marshal(v)
	return b
}

func ResponseJSON(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	if data == nil {
		if canned, ok := cannedResponses[httpCode]; ok && canned.message == message {
			return c.Status(httpCode).Send(canned.body)
		}
	}

	body, err := jsonAPI.Marshal(Response{
		Code:    httpCode,
		Message: message,
		Data:    data,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).Send(internalErrorResponse)
	}

	return c.Status(httpCode).Send(body)
}

func ResponseOK(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, 200, "Success", data)
}

func ResponseCreated(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, 201, "Created", data)
}

func ResponseBadRequest(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Bad Request"
	}
	return ResponseJSON(c, 400, message, nil)
}

func ResponseUnauthorized(c *fiber.Ctx) error {
	return ResponseJSON(c, 401, "Unauthorized", nil)
}

func ResponseForbidden(c *fiber.Ctx) error {
	return ResponseJSON(c, 403, "Forbidden", nil)
}

func ResponseNotFound(c *fiber.Ctx) error {
	return ResponseJSON(c, 404, "Not Found", nil)
}

func ResponseInternalError(c *fiber.Ctx) error {
	return ResponseJSON(c, 500, "Internal Server Error", nil)
}
