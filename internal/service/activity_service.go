package service

import (
	"context"
	"strings"
	"time"

	"bookfans/internal/logger"
	"bookfans/internal/models"
	"bookfans/internal/repository"
)

// activityRecorder is the write side of the activity log used by other services.
type activityRecorder interface {
	Record(ctx context.Context, typ, description string, meta map[string]any)
}

type ActivityService struct {
	activityRepo repository.ActivityRepo
	log          *logger.Logger
	now          func() time.Time
}

func NewActivityService(activityRepo repository.ActivityRepo, log *logger.Logger) *ActivityService {
	if log == nil {
		log = logger.NewNop()
	}
	return &ActivityService{activityRepo: activityRepo, log: log, now: time.Now}
}

// Record appends an event. It is best-effort: a failed append is logged and
// never surfaces to the caller whose write already succeeded.
func (s *ActivityService) Record(ctx context.Context, typ, description string, meta map[string]any) {
	ev := models.ActivityEvent{
		OccurredAt:  s.now().UTC(),
		Type:        typ,
		Description: description,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	if err := s.activityRepo.Append(ctx, ev); err != nil {
		s.log.Warnw("activity_append_failed", "type", typ, "err", err)
	}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ActivityFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", ErrInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

func (s *ActivityService) List(ctx context.Context, f ActivityFilter) ([]models.ActivityEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.activityRepo.List(ctx, from, to, typ)
}
