package helper

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"payment_simulator/checkout"
)

var statsScheduler gocron.Scheduler

// StartStatsScheduler logs a stats snapshot on a fixed interval so an
// operator can watch settlement rates while a stress run is in flight.
func StartStatsScheduler(svc *checkout.Service, interval time.Duration, logger *zap.SugaredLogger) {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatalw("failed to create stats scheduler", "error", err)
	}

	statsScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			stats := svc.Stats()
			logger.Infow("stats snapshot",
				"totalOrders", stats.TotalOrders,
				"totalPayments", stats.TotalPayments,
				"successRate", stats.SuccessRate,
			)
		}),
	)
	if err != nil {
		logger.Fatalw("failed to schedule stats job", "error", err)
	}

	s.Start()
	logger.Infow("stats scheduler started", "interval", interval)
}

func StopStatsScheduler() {
	if statsScheduler != nil {
		statsScheduler.Shutdown()
	}
}
