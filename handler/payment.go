package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"payment_simulator/checkout"
	"payment_simulator/model"
	"payment_simulator/utils"
)

type Handler struct {
	Checkout *checkout.Service
	Logger   *zap.SugaredLogger
}

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	input, _ := c.Locals("input").(model.CreateOrderInput)

	order := h.Checkout.CreateOrder(c.UserContext(), input)
	return utils.SuccessResponseWithMessage(c, order, "订单创建成功")
}

func (h *Handler) GetOrderInfo(c *fiber.Ctx) error {
	orderId := c.Params("orderId")

	order, err := h.Checkout.GetOrderInfo(c.UserContext(), orderId)
	if err != nil {
		return utils.NotFoundResponse(c, utils.MsgOrderNotFound)
	}
	return utils.SuccessResponse(c, order)
}

func (h *Handler) ValidatePayment(c *fiber.Ctx) error {
	input, _ := c.Locals("input").(model.ValidatePaymentInput)

	payment, err := h.Checkout.ValidateCredential(c.UserContext(), input.OrderId, input.Password)
	if err != nil {
		if errors.Is(err, checkout.ErrOrderNotFound) {
			return utils.NotFoundResponse(c, utils.MsgOrderNotFound)
		}
		return utils.BusinessErrorResponse(c, utils.CodeWrongPassword, utils.MsgWrongPassword)
	}
	return utils.SuccessResponseWithMessage(c, payment, "支付成功")
}

func (h *Handler) QueryResult(c *fiber.Ctx) error {
	orderId := c.Params("orderId")

	result, err := h.Checkout.QueryResult(c.UserContext(), orderId)
	if err != nil {
		return utils.NotFoundResponse(c, utils.MsgOrderNotFound)
	}
	return utils.SuccessResponse(c, result)
}

func (h *Handler) SecurityCheck(c *fiber.Ctx) error {
	result := h.Checkout.SecurityCheck(c.UserContext())
	return utils.SuccessResponse(c, result)
}

func (h *Handler) GetStats(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Checkout.Stats())
}

// CheckoutQRCode renders a QR code pointing at the checkout page for an
// existing order, the way a real gateway hands off to a scan-to-pay client.
func (h *Handler) CheckoutQRCode(c *fiber.Ctx) error {
	orderId := c.Params("orderId")

	if _, err := h.Checkout.GetOrderInfo(c.UserContext(), orderId); err != nil {
		return utils.NotFoundResponse(c, utils.MsgOrderNotFound)
	}

	checkoutUrl := fmt.Sprintf("%s/checkout.html?orderId=%s", c.BaseURL(), orderId)
	png, err := utils.GenerateQRCode(checkoutUrl, 256)
	if err != nil {
		h.Logger.Errorw("failed to render qr code", "orderId", orderId, "error", err)
		return utils.BadRequestResponse(c, "二维码生成失败", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
