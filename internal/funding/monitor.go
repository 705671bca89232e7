package funding

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
	"aqarshare/admin-portal/admin-portal-backend/internal/properties"
)

// SubscriptionMonitor periodically scans open properties and raises an
// admin advisory for each one whose roster has reached soft capacity.
type SubscriptionMonitor struct {
	allocator  Service
	properties properties.Repository
	notifier   Notifier
	logger     *zap.Logger
	cron       *cron.Cron
}

func NewSubscriptionMonitor(allocator Service, propertyRepo properties.Repository, notifier Notifier, logger *zap.Logger) *SubscriptionMonitor {
	return &SubscriptionMonitor{
		allocator:  allocator,
		properties: propertyRepo,
		notifier:   notifier,
		logger:     logger,
		cron:       cron.New(),
	}
}

// Start schedules the scan with the given cron expression and begins running.
func (m *SubscriptionMonitor) Start(expression string) error {
	_, err := m.cron.AddFunc(expression, func() {
		if err := m.Scan(context.Background()); err != nil {
			m.logger.Error("subscription scan failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid monitor schedule %q: %w", expression, err)
	}
	m.cron.Start()
	return nil
}

// Stop halts the schedule, waiting for a running scan to finish.
func (m *SubscriptionMonitor) Stop() {
	<-m.cron.Stop().Done()
}

// Scan checks every property that is still open for funding.
func (m *SubscriptionMonitor) Scan(ctx context.Context) error {
	props, err := m.properties.List(ctx, nil)
	if err != nil {
		return err
	}

	for _, property := range props {
		if property.Status == properties.StatusSoldOut {
			continue
		}
		_, err := m.allocator.CheckCapacity(ctx, property.ID)
		if errors.Is(err, apperrors.ErrCapacityExceeded) {
			m.notifier.Warning(ctx, fmt.Sprintf("Property %q is fully subscribed", property.Name))
			continue
		}
		if err != nil {
			m.logger.Warn("capacity check failed",
				zap.String("property_id", property.ID.String()),
				zap.Error(err))
		}
	}
	return nil
}
