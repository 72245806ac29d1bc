package checkout

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"payment_simulator/model"
	"payment_simulator/store"
)

// stubSampler injects no delay and replays a scripted failure sequence so
// both branches of the validation can be asserted deterministically.
type stubSampler struct {
	failures []bool
	idx      int
}

func (s *stubSampler) Delay(min, max time.Duration) time.Duration { return 0 }

func (s *stubSampler) Fail(probability float64) bool {
	if s.idx >= len(s.failures) {
		return false
	}
	f := s.failures[s.idx]
	s.idx++
	return f
}

// statSampler keeps real Bernoulli draws but no delay, for statistical runs.
type statSampler struct {
	real Sampler
}

func (s *statSampler) Delay(min, max time.Duration) time.Duration { return 0 }
func (s *statSampler) Fail(probability float64) bool              { return s.real.Fail(probability) }

func newTestService(sampler Sampler, failureRate float64) *Service {
	return NewService(store.NewOrderStore(), store.NewPaymentStore(), sampler, failureRate, "123456", zap.NewNop().Sugar())
}

func TestCreateOrderEchoesFields(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0.05)

	order := svc.CreateOrder(context.Background(), model.CreateOrderInput{
		Amount:   100,
		Subject:  "会员充值",
		BankCard: "**** 1234",
	})

	assert.True(t, strings.HasPrefix(order.OrderId, "ORDER"))
	assert.Equal(t, 100.0, order.Amount)
	assert.Equal(t, "会员充值", order.Subject)
	assert.Equal(t, "**** 1234", order.BankCard)
	assert.Equal(t, model.BankName, order.BankName)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.False(t, order.CreateTime.IsZero())
	assert.Nil(t, order.PayTime)
}

func TestCreateOrderAppliesDefaults(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0.05)

	order := svc.CreateOrder(context.Background(), model.CreateOrderInput{})

	assert.Equal(t, model.DefaultAmount, order.Amount)
	assert.Equal(t, model.DefaultSubject, order.Subject)
	assert.Equal(t, model.DefaultBankCard, order.BankCard)
}

func TestGetOrderInfoUnknownOrder(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0.05)

	_, err := svc.GetOrderInfo(context.Background(), "ORDER000000XXXXXX")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestValidateUnknownOrder(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0.05)

	_, err := svc.ValidateCredential(context.Background(), "ORDER000000XXXXXX", "123456")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestValidateWrongPassword(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0)
	order := svc.CreateOrder(context.Background(), model.CreateOrderInput{Amount: 100})

	_, err := svc.ValidateCredential(context.Background(), order.OrderId, "000000")
	assert.ErrorIs(t, err, ErrCredentialRejected)

	// Rejection leaves the order pending and retryable.
	current, err := svc.GetOrderInfo(context.Background(), order.OrderId)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, current.Status)
	assert.Nil(t, current.PayTime)
	assert.Equal(t, 0, svc.Stats().TotalPayments)
}

func TestValidateSpuriousFailure(t *testing.T) {
	svc := newTestService(&stubSampler{failures: []bool{true}}, 0.05)
	order := svc.CreateOrder(context.Background(), model.CreateOrderInput{})

	// Correct password still gets rejected when the failure draw triggers.
	_, err := svc.ValidateCredential(context.Background(), order.OrderId, "123456")
	assert.ErrorIs(t, err, ErrCredentialRejected)

	current, _ := svc.GetOrderInfo(context.Background(), order.OrderId)
	assert.Equal(t, model.OrderStatusPending, current.Status)
}

func TestValidateSuccess(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0)
	order := svc.CreateOrder(context.Background(), model.CreateOrderInput{Amount: 250.50})

	payment, err := svc.ValidateCredential(context.Background(), order.OrderId, "123456")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(payment.PaymentId, "PAY"))
	assert.Equal(t, order.OrderId, payment.OrderId)
	assert.Equal(t, 250.50, payment.Amount)
	assert.Equal(t, model.PaymentStatusSuccess, payment.Status)
	assert.False(t, payment.PayTime.IsZero())

	current, err := svc.GetOrderInfo(context.Background(), order.OrderId)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusSuccess, current.Status)
	require.NotNil(t, current.PayTime)
	assert.Equal(t, payment.PayTime, *current.PayTime)

	stats := svc.Stats()
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 1, stats.TotalPayments)
}

func TestRepeatedValidationMintsSecondPayment(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0)
	order := svc.CreateOrder(context.Background(), model.CreateOrderInput{Amount: 50})

	first, err := svc.ValidateCredential(context.Background(), order.OrderId, "123456")
	require.NoError(t, err)
	second, err := svc.ValidateCredential(context.Background(), order.OrderId, "123456")
	require.NoError(t, err)

	// Settling twice is allowed and mints a distinct payment each time.
	assert.NotEqual(t, first.PaymentId, second.PaymentId)
	assert.Equal(t, 2, svc.Stats().TotalPayments)

	current, _ := svc.GetOrderInfo(context.Background(), order.OrderId)
	require.NotNil(t, current.PayTime)
	assert.Equal(t, second.PayTime, *current.PayTime)
}

func TestQueryResult(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0)
	order := svc.CreateOrder(context.Background(), model.CreateOrderInput{Amount: 100})

	result, err := svc.QueryResult(context.Background(), order.OrderId)
	require.NoError(t, err)
	assert.Equal(t, order.OrderId, result.OrderId)
	assert.Equal(t, model.OrderStatusPending, result.Status)
	assert.Equal(t, 100.0, result.Amount)
	assert.Nil(t, result.PayTime)

	_, err = svc.ValidateCredential(context.Background(), order.OrderId, "123456")
	require.NoError(t, err)

	result, err = svc.QueryResult(context.Background(), order.OrderId)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusSuccess, result.Status)
	assert.NotNil(t, result.PayTime)

	_, err = svc.QueryResult(context.Background(), "ORDER000000XXXXXX")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSecurityCheck(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0.05)

	result := svc.SecurityCheck(context.Background())
	assert.True(t, result.DeviceCheck)
	assert.Equal(t, "low", result.RiskLevel)
}

func TestStatsZeroOrders(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0.05)

	stats := svc.Stats()
	assert.Equal(t, 0, stats.TotalOrders)
	assert.Equal(t, 0, stats.TotalPayments)
	assert.Equal(t, 0.0, stats.SuccessRate)
}

func TestStatsSuccessRate(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		svc.CreateOrder(ctx, model.CreateOrderInput{})
	}
	order := svc.CreateOrder(ctx, model.CreateOrderInput{})
	_, err := svc.ValidateCredential(ctx, order.OrderId, "123456")
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, 5, stats.TotalOrders)
	assert.Equal(t, 1, stats.TotalPayments)
	assert.InDelta(t, 0.2, stats.SuccessRate, 1e-9)
}

func TestValidateSuccessRateStatistical(t *testing.T) {
	sampler := &statSampler{real: NewSampler(rand.NewSource(42))}
	svc := newTestService(sampler, 0.05)
	ctx := context.Background()

	const trials = 2000
	successes := 0
	for i := 0; i < trials; i++ {
		order := svc.CreateOrder(ctx, model.CreateOrderInput{})
		if _, err := svc.ValidateCredential(ctx, order.OrderId, "123456"); err == nil {
			successes++
		}
	}

	rate := float64(successes) / float64(trials)
	assert.InDelta(t, 0.95, rate, 0.02)

	// Any other password never settles, regardless of the failure draw.
	order := svc.CreateOrder(ctx, model.CreateOrderInput{})
	for i := 0; i < 100; i++ {
		_, err := svc.ValidateCredential(ctx, order.OrderId, "654321")
		assert.ErrorIs(t, err, ErrCredentialRejected)
	}
}

func TestEventsPublishedInOrder(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0)

	var mu sync.Mutex
	var events []model.PaymentEvent
	svc.OnEvent(func(ev model.PaymentEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	ctx := context.Background()
	order := svc.CreateOrder(ctx, model.CreateOrderInput{Amount: 100})
	_, err := svc.ValidateCredential(ctx, order.OrderId, "000000")
	require.Error(t, err)
	payment, err := svc.ValidateCredential(ctx, order.OrderId, "123456")
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, model.EventOrderCreated, events[0].Type)
	assert.Equal(t, model.EventPaymentRejected, events[1].Type)
	assert.Equal(t, model.EventPaymentSuccess, events[2].Type)
	assert.Equal(t, payment.PaymentId, events[2].PaymentId)
	assert.Equal(t, order.OrderId, events[2].OrderId)
}

func TestConcurrentValidationNoLostUpdates(t *testing.T) {
	svc := newTestService(&stubSampler{}, 0)
	ctx := context.Background()
	order := svc.CreateOrder(ctx, model.CreateOrderInput{Amount: 10})

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.ValidateCredential(ctx, order.OrderId, "123456")
		}()
	}
	wg.Wait()

	current, err := svc.GetOrderInfo(ctx, order.OrderId)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusSuccess, current.Status)
	assert.NotNil(t, current.PayTime)
	// Every successful validation mints a payment; none may be lost.
	assert.Equal(t, workers, svc.Stats().TotalPayments)
}

func TestInjectedDelayBounds(t *testing.T) {
	svc := newTestService(DefaultSampler(), 0)
	ctx := context.Background()

	start := time.Now()
	order := svc.CreateOrder(ctx, model.CreateOrderInput{})
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, time.Second)

	start = time.Now()
	_, err := svc.ValidateCredential(ctx, order.OrderId, "123456")
	require.NoError(t, err)
	elapsed = time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	svc := newTestService(DefaultSampler(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	svc.CreateOrder(ctx, model.CreateOrderInput{})
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
