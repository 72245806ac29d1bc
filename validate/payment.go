package validate

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"payment_simulator/model"
	"payment_simulator/utils"
)

var validate = validator.New()

// CreateOrder parses and validates the order-creation body. All fields are
// optional; defaults apply downstream.
func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.BadRequestResponse(c, "请求格式错误", err)
			}
		}

		if err := validate.Struct(&input); err != nil {
			return utils.BadRequestResponse(c, "请求参数无效", err)
		}

		// Save input to context locals
		c.Locals("input", input)

		// Continue to next handler
		return c.Next()
	}
}

func ValidatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ValidatePaymentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequestResponse(c, "请求格式错误", err)
		}

		if err := validate.Struct(&input); err != nil {
			return utils.BadRequestResponse(c, "请求参数无效", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
