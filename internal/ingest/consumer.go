package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/padidar/visitor-analytics-go/internal/config"
	"github.com/padidar/visitor-analytics-go/internal/models"
	"github.com/padidar/visitor-analytics-go/internal/repository"
)

var (
	ErrInvalidKafkaConfig = errors.New("invalid kafka configuration")
	ErrKafkaFetchFailed   = errors.New("failed to fetch message from kafka")
)

var (
	eventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visitor_analytics_ingest_events_total",
		Help: "Detection events successfully appended to the visit store.",
	})
	eventsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visitor_analytics_ingest_rejected_total",
		Help: "Detection events rejected before reaching the store.",
	}, []string{"reason"})
)

// detectionEvent is the wire format the perception pipeline publishes for
// each completed dwell observation.
type detectionEvent struct {
	PersonID        int    `json:"person_id"`
	ROIID           int    `json:"roi_id"`
	CounterID       int    `json:"counter_id"`
	CamID           int    `json:"cam_id"`
	DurationSeconds int64  `json:"duration_seconds"`
	AgeGroup        string `json:"age_group"`
	Gender          string `json:"gender"`
	Timestamp       string `json:"timestamp"`
	EventID         *int   `json:"event_id,omitempty"`
}

// Consumer reads detection events from Kafka and appends them to the visit
// store. Ingestion is append-only; malformed events are rejected and counted,
// never coerced into a default bucket.
type Consumer struct {
	reader *kafka.Reader
	visits *repository.VisitRepository
	logger *zap.Logger
}

// NewConsumer creates and configures a new Kafka consumer instance.
func NewConsumer(cfg config.IngestConfig, visits *repository.VisitRepository, logger *zap.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" || cfg.GroupID == "" {
		logger.Error("Kafka configuration validation failed",
			zap.Strings("brokers", cfg.Brokers),
			zap.String("topic", cfg.Topic),
			zap.String("group_id", cfg.GroupID),
		)
		return nil, ErrInvalidKafkaConfig
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.Topic,
	})

	logger.Info("Kafka consumer created",
		zap.String("topic", cfg.Topic),
		zap.String("group_id", cfg.GroupID),
		zap.Strings("brokers", cfg.Brokers),
	)

	return &Consumer{reader: r, visits: visits, logger: logger}, nil
}

// Run blocks until the context is cancelled or an unrecoverable error
// occurs. Rejected events are committed so they are not redelivered; store
// failures leave the message uncommitted for retry.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Error("Failed to close Kafka reader cleanly", zap.Error(err))
		}
	}()

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return context.Canceled
			}
			return fmt.Errorf("%w: %v", ErrKafkaFetchFailed, err)
		}

		rec, err := decodeEvent(m.Value)
		if err != nil {
			c.logger.Warn("rejected detection event",
				zap.Error(err),
				zap.Int64("offset", m.Offset),
			)
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				return fmt.Errorf("failed to commit rejected message: %w", err)
			}
			continue
		}

		if _, err := c.visits.Insert(ctx, rec); err != nil {
			c.logger.Error("failed to append visit, leaving message for retry", zap.Error(err))
			return err
		}
		eventsIngested.Inc()

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			return fmt.Errorf("failed to commit message: %w", err)
		}
	}
}

// decodeEvent validates and normalizes one detection event.
func decodeEvent(payload []byte) (models.VisitRecord, error) {
	var ev detectionEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		eventsRejected.WithLabelValues("malformed_json").Inc()
		return models.VisitRecord{}, fmt.Errorf("malformed event payload: %w", err)
	}

	if ev.PersonID <= 0 || ev.CounterID <= 0 || ev.CamID <= 0 {
		eventsRejected.WithLabelValues("missing_ids").Inc()
		return models.VisitRecord{}, fmt.Errorf("event missing person/counter/cam id")
	}
	if ev.DurationSeconds < 0 {
		eventsRejected.WithLabelValues("negative_duration").Inc()
		return models.VisitRecord{}, fmt.Errorf("negative duration %d", ev.DurationSeconds)
	}

	age, err := models.ParseAgeGroup(ev.AgeGroup)
	if err != nil {
		eventsRejected.WithLabelValues("unknown_age_group").Inc()
		return models.VisitRecord{}, err
	}
	gender, err := models.ParseGender(ev.Gender)
	if err != nil {
		eventsRejected.WithLabelValues("unknown_gender").Inc()
		return models.VisitRecord{}, err
	}
	ts, err := time.ParseInLocation(models.TimeLayout, ev.Timestamp, time.Local)
	if err != nil {
		eventsRejected.WithLabelValues("malformed_timestamp").Inc()
		return models.VisitRecord{}, fmt.Errorf("malformed timestamp %q", ev.Timestamp)
	}

	return models.VisitRecord{
		PersonID:        ev.PersonID,
		ROIID:           ev.ROIID,
		CounterID:       ev.CounterID,
		CamID:           ev.CamID,
		DurationSeconds: ev.DurationSeconds,
		AgeGroup:        age,
		Gender:          gender,
		VisitTime:       ts,
		EventID:         ev.EventID,
	}, nil
}
