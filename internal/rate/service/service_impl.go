package service

import (
	"context"
	"errors"

	ratedomain "github.com/mrigajana-makstark/makstarkrepo2/internal/rate/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewService(p ServiceParam) ratedomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("rate.service"),
	}
}

// Resolve looks up per-event rates, per-day rates and the event-code
// suffix. Deliverables with no matching row simply do not contribute;
// only a failing lookup is an error.
func (s *Service) Resolve(ctx context.Context, deliverables []string, eventType string) (*ratedomain.Resolution, error) {
	perEvent, err := s.loadEventRates(ctx, deliverables)
	if err != nil {
		s.log.Error("per-event rate lookup failed", zap.Error(err))
		return nil, ratedomain.ErrStoreUnavailable
	}

	perDay, err := s.loadDayRates(ctx, deliverables)
	if err != nil {
		s.log.Error("per-day rate lookup failed", zap.Error(err))
		return nil, ratedomain.ErrStoreUnavailable
	}

	suffix, err := s.loadEventCode(ctx, eventType)
	if err != nil {
		s.log.Error("event code lookup failed", zap.Error(err))
		return nil, ratedomain.ErrStoreUnavailable
	}

	return &ratedomain.Resolution{
		PerEvent:        perEvent,
		PerDay:          perDay,
		EventCodeSuffix: suffix,
	}, nil
}

func (s *Service) loadEventRates(ctx context.Context, deliverables []string) ([]ratedomain.DeliverableRate, error) {
	var rows []ratedomain.EventRate
	err := s.db.WithContext(ctx).
		Where("deliverable IN ?", deliverables).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ratedomain.DeliverableRate, 0, len(rows))
	for _, row := range rows {
		out = append(out, ratedomain.DeliverableRate{Deliverable: row.Deliverable, Amount: row.Amount})
	}
	return out, nil
}

func (s *Service) loadDayRates(ctx context.Context, deliverables []string) ([]ratedomain.DeliverableRate, error) {
	var rows []ratedomain.DayRate
	err := s.db.WithContext(ctx).
		Where("deliverable IN ?", deliverables).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ratedomain.DeliverableRate, 0, len(rows))
	for _, row := range rows {
		out = append(out, ratedomain.DeliverableRate{Deliverable: row.Deliverable, Amount: row.Amount})
	}
	return out, nil
}

// loadEventCode returns an empty suffix when the event type is unknown;
// a miss is not an error.
func (s *Service) loadEventCode(ctx context.Context, eventType string) (string, error) {
	var row ratedomain.EventCode
	err := s.db.WithContext(ctx).
		Where("event_type = ?", eventType).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.Code, nil
}
