package clicks

import (
	"context"
	"errors"
	"time"

	"github.com/bentolink/bentolink-backend/pkg/logger"
	"github.com/bentolink/bentolink-backend/pkg/metrics"
	redisclient "github.com/bentolink/bentolink-backend/pkg/redis"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const flushJobName = "click_flush"

type clickBuffer interface {
	BufferClick(ctx context.Context, cardID string, n int64) error
	DrainClicks(ctx context.Context, batch int) ([]redisclient.PendingClick, error)
}

type cardCounter interface {
	IncrementClicks(ctx context.Context, cardID uuid.UUID, n int64) (int64, error)
	ProfileIDByCard(ctx context.Context, cardID uuid.UUID) (uuid.UUID, error)
}

type profileCounter interface {
	IncrementClicks(ctx context.Context, id uuid.UUID, n int64) error
}

// ServiceParams groups dependencies for the click pipeline.
type ServiceParams struct {
	Buffer   clickBuffer
	Cards    cardCounter
	Profiles profileCounter
	Metrics  *metrics.JobMetrics
	Logger   *logger.Logger
	Batch    int
}

// Service buffers public click events and flushes them into the card and
// profile counters.
type Service interface {
	Track(ctx context.Context, cardID uuid.UUID) error
	Flush(ctx context.Context) (int, error)
}

type service struct {
	buffer   clickBuffer
	cards    cardCounter
	profiles profileCounter
	metrics  *metrics.JobMetrics
	logg     *logger.Logger
	batch    int
}

// NewService builds the click pipeline with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Buffer == nil {
		return nil, errors.New("click buffer is required")
	}
	if params.Cards == nil {
		return nil, errors.New("card counter is required")
	}
	if params.Profiles == nil {
		return nil, errors.New("profile counter is required")
	}
	batch := params.Batch
	if batch <= 0 {
		batch = 500
	}
	return &service{
		buffer:   params.Buffer,
		cards:    params.Cards,
		profiles: params.Profiles,
		metrics:  params.Metrics,
		logg:     params.Logger,
		batch:    batch,
	}, nil
}

// Track buffers one click. Existence of the card is not verified here; the
// flusher drops counters for cards that are gone by flush time.
func (s *service) Track(ctx context.Context, cardID uuid.UUID) error {
	if cardID == uuid.Nil {
		return errors.New("card id is required")
	}
	return s.buffer.BufferClick(ctx, cardID.String(), 1)
}

// Flush drains buffered counters and applies them to the card and its
// owning profile. Per-counter failures are collected; one bad counter does
// not stall the batch.
func (s *service) Flush(ctx context.Context) (int, error) {
	start := time.Now()
	pending, err := s.buffer.DrainClicks(ctx, s.batch)
	if err != nil && len(pending) == 0 {
		s.metrics.IncFailure(flushJobName)
		return 0, err
	}

	var flushErr error
	flushed := 0
	for _, click := range pending {
		cardID, parseErr := uuid.Parse(click.CardID)
		if parseErr != nil {
			continue
		}
		landed, applyErr := s.apply(ctx, cardID, click.Count)
		if applyErr != nil {
			flushErr = multierr.Append(flushErr, applyErr)
			continue
		}
		if landed {
			flushed++
		}
	}
	flushErr = multierr.Append(flushErr, err)

	s.metrics.ObserveDuration(flushJobName, time.Since(start))
	s.metrics.AddFlushed(flushJobName, flushed)
	if flushErr != nil {
		s.metrics.IncFailure(flushJobName)
	} else {
		s.metrics.IncSuccess(flushJobName)
	}
	return flushed, flushErr
}

// apply reports whether the increment landed on a live card. Counters for
// cards deleted between click and flush are dropped, not counted.
func (s *service) apply(ctx context.Context, cardID uuid.UUID, count int64) (bool, error) {
	rows, err := s.cards.IncrementClicks(ctx, cardID, count)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}
	profileID, err := s.cards.ProfileIDByCard(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, s.profiles.IncrementClicks(ctx, profileID, count)
}

// Run flushes on the given interval until the context is canceled. Intended
// for the click worker process.
func Run(ctx context.Context, svc Service, interval time.Duration, logg *logger.Logger) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			flushed, err := svc.Flush(ctx)
			if err != nil && logg != nil {
				logg.Warn(logg.WithField(ctx, "flushed", flushed), "click flush finished with errors")
			}
		}
	}
}
