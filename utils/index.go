package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Business-level failure codes carried inside the response envelope.
const (
	CodeOK            = 0
	CodeNotFound      = 404
	CodeWrongPassword = 1001
)

const (
	MsgOrderNotFound = "订单不存在"
	MsgWrongPassword = "支付密码错误"
)

func SuccessResponse(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"success": true,
		"code":    CodeOK,
		"data":    data,
	})
}

func SuccessResponseWithMessage(c *fiber.Ctx, data any, message string) error {
	return c.JSON(fiber.Map{
		"success": true,
		"code":    CodeOK,
		"data":    data,
		"message": message,
	})
}

func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"code":    CodeNotFound,
		"message": message,
	})
}

// BusinessErrorResponse reports a domain-level failure over HTTP 200 so
// stress-test clients can branch on the code without status gymnastics.
func BusinessErrorResponse(c *fiber.Ctx, code int, message string) error {
	return c.JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
		"data":    nil,
	})
}

func BadRequestResponse(c *fiber.Ctx, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"code":    fiber.StatusBadRequest,
		"message": message,
		"error":   errMsg,
	})
}
