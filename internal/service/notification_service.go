package service

import (
	"context"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/binaryhub/portal-api/internal/models"
	appErrors "github.com/binaryhub/portal-api/pkg/errors"
)

type notificationStore interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
	MarkRead(ctx context.Context, id string, userID primitive.ObjectID) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
	DeleteOwned(ctx context.Context, id string, userID primitive.ObjectID) error
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// NotificationService exposes the owner-scoped notification feed with a
// cached unread counter.
type NotificationService struct {
	repo     notificationStore
	cache    cacheStore
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewNotificationService constructs a NotificationService instance.
func NewNotificationService(repo notificationStore, cache cacheStore, cacheTTL time.Duration, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &NotificationService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns the newest notifications in the user's inbox.
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	uid, err := parseOwner(userID)
	if err != nil {
		return nil, err
	}
	notifications, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications, served from
// Redis when a fresh value is cached.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	uid, err := parseOwner(userID)
	if err != nil {
		return 0, err
	}

	key := unreadCountKey(uid)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		}
	}

	count, err := s.repo.CountUnread(ctx, uid)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count unread notifications")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, strconv.FormatInt(count, 10), s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache unread count", zap.Error(err), zap.String("user_id", uid.Hex()))
		}
	}
	return count, nil
}

// MarkRead flags one owned notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	uid, err := parseOwner(userID)
	if err != nil {
		return err
	}
	if err := s.repo.MarkRead(ctx, notificationID, uid); err != nil {
		if err == mongo.ErrNoDocuments {
			return appErrors.Clone(appErrors.ErrNotFound, "Notification not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}
	s.invalidateUnreadCount(ctx, uid)
	return nil
}

// MarkAllRead flags the whole inbox as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	uid, err := parseOwner(userID)
	if err != nil {
		return err
	}
	if err := s.repo.MarkAllRead(ctx, uid); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notifications read")
	}
	s.invalidateUnreadCount(ctx, uid)
	return nil
}

// Delete removes one owned notification.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	uid, err := parseOwner(userID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteOwned(ctx, notificationID, uid); err != nil {
		if err == mongo.ErrNoDocuments {
			return appErrors.Clone(appErrors.ErrNotFound, "Notification not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete notification")
	}
	s.invalidateUnreadCount(ctx, uid)
	return nil
}

func (s *NotificationService) invalidateUnreadCount(ctx context.Context, userID primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, unreadCountKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate unread count cache", zap.Error(err), zap.String("user_id", userID.Hex()))
	}
}

func unreadCountKey(userID primitive.ObjectID) string {
	return "notifications:unread:" + userID.Hex()
}

func parseOwner(userID string) (primitive.ObjectID, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	return uid, nil
}
