package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"payment_simulator/model"
	"payment_simulator/store"
	"payment_simulator/utils"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrCredentialRejected = errors.New("wrong payment password")
)

// Per-operation injected latency ranges, matching a mid-tier gateway under
// moderate load.
const (
	createDelayMin   = 50 * time.Millisecond
	createDelayMax   = 200 * time.Millisecond
	infoDelayMin     = 30 * time.Millisecond
	infoDelayMax     = 130 * time.Millisecond
	validateDelayMin = 100 * time.Millisecond
	validateDelayMax = 500 * time.Millisecond
	queryDelayMin    = 20 * time.Millisecond
	queryDelayMax    = 100 * time.Millisecond
	securityDelayMin = 10 * time.Millisecond
	securityDelayMax = 60 * time.Millisecond
)

// Service drives the order lifecycle: pending on creation, success after a
// validated settlement. Stores are injected so parallel tests can run
// isolated instances.
type Service struct {
	orders        *store.OrderStore
	payments      *store.PaymentStore
	sampler       Sampler
	failureRate   float64
	validPassword string
	logger        *zap.SugaredLogger
	notify        func(model.PaymentEvent)
}

func NewService(orders *store.OrderStore, payments *store.PaymentStore, sampler Sampler, failureRate float64, validPassword string, logger *zap.SugaredLogger) *Service {
	return &Service{
		orders:        orders,
		payments:      payments,
		sampler:       sampler,
		failureRate:   failureRate,
		validPassword: validPassword,
		logger:        logger,
	}
}

// OnEvent registers a callback invoked for every lifecycle event.
func (s *Service) OnEvent(fn func(model.PaymentEvent)) {
	s.notify = fn
}

// wait parks only the calling goroutine; the server keeps handling other
// requests while the artificial delay elapses.
func (s *Service) wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (s *Service) publish(eventType string, orderId, paymentId string, amount float64, status string) {
	if s.notify == nil {
		return
	}
	s.notify(model.PaymentEvent{
		Type:      eventType,
		OrderId:   orderId,
		PaymentId: paymentId,
		Amount:    amount,
		Status:    status,
		Timestamp: time.Now(),
	})
}

// CreateOrder never fails. Unset fields get the demo defaults.
func (s *Service) CreateOrder(ctx context.Context, input model.CreateOrderInput) model.Order {
	order := &model.Order{
		OrderId:    utils.NewOrderId(),
		Amount:     input.Amount,
		Subject:    input.Subject,
		BankCard:   input.BankCard,
		BankName:   model.BankName,
		Status:     model.OrderStatusPending,
		CreateTime: time.Now(),
	}
	if order.Amount <= 0 {
		order.Amount = model.DefaultAmount
	}
	if order.Subject == "" {
		order.Subject = model.DefaultSubject
	}
	if order.BankCard == "" {
		order.BankCard = model.DefaultBankCard
	}
	s.orders.Put(order)
	created := *order

	s.logger.Infow("order created", "orderId", created.OrderId, "amount", created.Amount)
	s.publish(model.EventOrderCreated, created.OrderId, "", created.Amount, created.Status)

	s.wait(ctx, s.sampler.Delay(createDelayMin, createDelayMax))
	return created
}

func (s *Service) GetOrderInfo(ctx context.Context, orderId string) (model.Order, error) {
	order, err := s.orders.Get(orderId)
	if err != nil {
		return model.Order{}, ErrOrderNotFound
	}
	s.wait(ctx, s.sampler.Delay(infoDelayMin, infoDelayMax))
	return order, nil
}

// ValidateCredential settles the order when the password matches and the
// spurious-failure draw passes. A rejected attempt leaves the order pending
// and retryable. An unknown order fails fast, before any jitter.
//
// Known quirk kept from the original gateway: validating an already settled
// order re-runs the full check and, on success, mints a second payment and
// overwrites payTime.
func (s *Service) ValidateCredential(ctx context.Context, orderId, password string) (model.Payment, error) {
	if _, err := s.orders.Get(orderId); err != nil {
		return model.Payment{}, ErrOrderNotFound
	}

	randomFailure := s.sampler.Fail(s.failureRate)
	wrongPassword := password != s.validPassword

	s.wait(ctx, s.sampler.Delay(validateDelayMin, validateDelayMax))

	if randomFailure || wrongPassword {
		order, _ := s.orders.Get(orderId)
		s.logger.Infow("payment rejected", "orderId", orderId, "randomFailure", randomFailure)
		s.publish(model.EventPaymentRejected, orderId, "", order.Amount, order.Status)
		return model.Payment{}, ErrCredentialRejected
	}

	payTime := time.Now()
	order, err := s.orders.Update(orderId, func(o *model.Order) error {
		o.Status = model.OrderStatusSuccess
		o.PayTime = &payTime
		return nil
	})
	if err != nil {
		return model.Payment{}, ErrOrderNotFound
	}

	payment := &model.Payment{
		PaymentId: utils.NewPaymentId(),
		OrderId:   order.OrderId,
		Amount:    order.Amount,
		Status:    model.PaymentStatusSuccess,
		PayTime:   payTime,
	}
	s.payments.Put(payment)

	s.logger.Infow("payment settled", "orderId", order.OrderId, "paymentId", payment.PaymentId, "amount", payment.Amount)
	s.publish(model.EventPaymentSuccess, order.OrderId, payment.PaymentId, payment.Amount, payment.Status)
	return *payment, nil
}

func (s *Service) QueryResult(ctx context.Context, orderId string) (model.QueryResult, error) {
	order, err := s.orders.Get(orderId)
	if err != nil {
		return model.QueryResult{}, ErrOrderNotFound
	}
	s.wait(ctx, s.sampler.Delay(queryDelayMin, queryDelayMax))

	var result model.QueryResult
	copier.Copy(&result, &order)
	return result, nil
}

// SecurityCheck simulates the auxiliary pre-payment risk scan. Always passes.
func (s *Service) SecurityCheck(ctx context.Context) model.SecurityCheckResult {
	s.wait(ctx, s.sampler.Delay(securityDelayMin, securityDelayMax))
	return model.SecurityCheckResult{DeviceCheck: true, RiskLevel: "low"}
}

// Stats is synchronous, no injected delay. Used by monitors polling mid-run.
func (s *Service) Stats() model.Stats {
	totalOrders := s.orders.Count()
	totalPayments := s.payments.Count()
	divisor := totalOrders
	if divisor < 1 {
		divisor = 1
	}
	return model.Stats{
		TotalOrders:   totalOrders,
		TotalPayments: totalPayments,
		SuccessRate:   float64(totalPayments) / float64(divisor),
	}
}
