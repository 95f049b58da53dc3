package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/binaryhub/portal-api/internal/models"
)

type renewalEnrollmentStore interface {
	ListExpiring(ctx context.Context, now, until time.Time) ([]models.Enrollment, error)
	ListLapsed(ctx context.Context, now time.Time) ([]models.Enrollment, error)
	MarkRenewalNotified(ctx context.Context, id primitive.ObjectID) error
	MarkExpired(ctx context.Context, id primitive.ObjectID) error
}

type sweepMetrics interface {
	IncSweepRun()
	IncRenewalNotice()
	IncExpiredEnrollment()
}

// RenewalService runs the periodic enrollment sweep: renewal notices for
// enrollments nearing expiry, then expiry marking for lapsed ones.
type RenewalService struct {
	repo          renewalEnrollmentStore
	notifications notificationWriter
	metrics       sweepMetrics
	noticeWindow  time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewRenewalService constructs a RenewalService instance.
func NewRenewalService(repo renewalEnrollmentStore, notifications notificationWriter, metrics sweepMetrics, noticeWindow time.Duration, logger *zap.Logger) *RenewalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if noticeWindow <= 0 {
		noticeWindow = 5 * 24 * time.Hour
	}
	return &RenewalService{
		repo:          repo,
		notifications: notifications,
		metrics:       metrics,
		noticeWindow:  noticeWindow,
		logger:        logger,
		now:           time.Now,
	}
}

// Sweep performs one pass. It is idempotent: the notified flag gates
// renewal notices, and expiry is only ever set, never cleared.
func (s *RenewalService) Sweep(ctx context.Context) error {
	if s.metrics != nil {
		s.metrics.IncSweepRun()
	}
	now := s.now().UTC()

	notified, err := s.sendRenewalNotices(ctx, now)
	if err != nil {
		return err
	}
	expired, err := s.markLapsed(ctx, now)
	if err != nil {
		return err
	}

	s.logger.Info("renewal sweep completed",
		zap.Int("notices_sent", notified),
		zap.Int("enrollments_expired", expired))
	return nil
}

func (s *RenewalService) sendRenewalNotices(ctx context.Context, now time.Time) (int, error) {
	expiring, err := s.repo.ListExpiring(ctx, now, now.Add(s.noticeWindow))
	if err != nil {
		return 0, fmt.Errorf("list expiring enrollments: %w", err)
	}

	notified := 0
	for i := range expiring {
		e := &expiring[i]
		if e.ExpirationDate == nil {
			continue
		}

		notification := &models.Notification{
			UserID:       e.User.UserID,
			Type:         models.NotificationCourseRenewal,
			Title:        "Course Renewal Reminder",
			Message:      fmt.Sprintf("Your access to %s expires on %s. Renew your enrollment to keep learning.", e.Course.Title, e.ExpirationDate.Format("January 2, 2006")),
			EnrollmentID: &e.ID,
		}
		// The flag stays unset on failure so the next run retries.
		if err := s.notifications.Create(ctx, notification); err != nil {
			s.logger.Warn("failed to create renewal notification", zap.Error(err), zap.String("enrollment_id", e.ID.Hex()))
			continue
		}
		if err := s.repo.MarkRenewalNotified(ctx, e.ID); err != nil {
			s.logger.Warn("failed to mark renewal notified", zap.Error(err), zap.String("enrollment_id", e.ID.Hex()))
			continue
		}
		notified++
		if s.metrics != nil {
			s.metrics.IncRenewalNotice()
		}
	}
	return notified, nil
}

func (s *RenewalService) markLapsed(ctx context.Context, now time.Time) (int, error) {
	lapsed, err := s.repo.ListLapsed(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list lapsed enrollments: %w", err)
	}

	expired := 0
	for i := range lapsed {
		e := &lapsed[i]
		if err := s.repo.MarkExpired(ctx, e.ID); err != nil {
			s.logger.Warn("failed to mark enrollment expired", zap.Error(err), zap.String("enrollment_id", e.ID.Hex()))
			continue
		}
		expired++
		if s.metrics != nil {
			s.metrics.IncExpiredEnrollment()
		}
	}
	return expired, nil
}
