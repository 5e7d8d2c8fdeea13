package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rahul4469/truthguardian/internal/models"
	"go.uber.org/zap"
)

// DefaultSubmitDelay is how long a simulated submission takes.
const DefaultSubmitDelay = time.Second

// SimulatedSink accepts reports without sending them anywhere. It waits a
// fixed delay, logs the report and hands back a receipt.
type SimulatedSink struct {
	delay  time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewSimulatedSink creates a sink that takes delay per submission.
func NewSimulatedSink(delay time.Duration, logger *zap.Logger) *SimulatedSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulatedSink{
		delay:  delay,
		logger: logger.Named("reports"),
		now:    time.Now,
	}
}

// Submit implements models.ReportSink.
func (s *SimulatedSink) Submit(ctx context.Context, form models.ReportForm) (*models.ReportReceipt, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	receipt := &models.ReportReceipt{
		ID:          uuid.NewString(),
		SubmittedAt: s.now().UTC(),
	}

	s.logger.Info("report received",
		zap.String("receipt", receipt.ID),
		zap.String("url", form.URL),
		zap.String("category", form.Category),
		zap.Int("description_length", len(form.Description)))

	return receipt, nil
}
