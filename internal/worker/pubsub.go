package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// Job types accepted on the subscription.
const (
	JobWeatherWarmup = "weather_warmup"
	JobHealthCheck   = "health_check"
)

// JobMessage is the payload of a worker job message. A weather_warmup job
// with Locations warms only those destinations instead of the upcoming-trip
// window.
type JobMessage struct {
	JobType   string   `json:"job_type"`
	Locations []string `json:"locations,omitempty"`
}

// Outcome tells the transport what to do with a message.
type Outcome int

const (
	// Ack removes the message.
	Ack Outcome = iota
	// Retry asks for redelivery.
	Retry
)

var errMalformedJob = errors.New("malformed job message")

// Dispatcher runs jobs decoded from raw message payloads. It is
// independent of the transport so it can be driven by Pub/Sub or a timer.
type Dispatcher struct {
	warmup *WarmupJob
	logger zerolog.Logger
}

// NewDispatcher creates a Dispatcher for the warm-up job.
func NewDispatcher(warmup *WarmupJob, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{warmup: warmup, logger: logger}
}

// Dispatch decodes data and runs the job. Unknown job types are acked so
// they are not redelivered forever. Malformed payloads are retried, letting
// the subscription's dead-letter policy catch them.
func (d *Dispatcher) Dispatch(ctx context.Context, data []byte) Outcome {
	start := time.Now()

	var msg JobMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		d.logger.Error().Err(fmt.Errorf("%w: %w", errMalformedJob, err)).Msg("failed to parse message")
		return Retry
	}

	logger := d.logger.With().Str("job_type", msg.JobType).Logger()

	var err error
	switch msg.JobType {
	case JobWeatherWarmup:
		err = d.runWarmup(ctx, msg.Locations)
	case JobHealthCheck:
		err = d.warmup.CheckProvider(ctx)
	default:
		logger.Warn().Msg("unknown job type")
		return Ack
	}

	if err != nil {
		logger.Error().Err(err).Msg("job failed")
		return Retry
	}

	logger.Info().Dur("duration", time.Since(start)).Msg("job completed")
	return Ack
}

func (d *Dispatcher) runWarmup(ctx context.Context, locations []string) error {
	var result *WarmupResult
	if len(locations) > 0 {
		result = d.warmup.WarmLocations(ctx, locations)
	} else {
		var err error
		if result, err = d.warmup.Run(ctx); err != nil {
			return fmt.Errorf("listing upcoming trips: %w", err)
		}
	}

	if !result.Healthy() {
		return fmt.Errorf("too many warm-up failures: %d/%d", result.Failed, len(result.Locations))
	}
	return nil
}

// PubSubConfig configures a PubSubHandler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Dispatcher       *Dispatcher
	Logger           zerolog.Logger

	// MaxOutstanding bounds concurrently handled messages (default 10).
	MaxOutstanding int
}

// PubSubHandler feeds messages from a Pub/Sub subscription to a Dispatcher.
type PubSubHandler struct {
	client       *pubsub.Client
	subscriber   *pubsub.Subscriber
	subscription string
	dispatcher   *Dispatcher
	logger       zerolog.Logger
}

// NewPubSubHandler connects to Pub/Sub.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	if cfg.MaxOutstanding <= 0 {
		cfg.MaxOutstanding = 10
	}
	subscriber := client.Subscriber(cfg.SubscriptionName)
	subscriber.ReceiveSettings.MaxOutstandingMessages = cfg.MaxOutstanding
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:       client,
		subscriber:   subscriber,
		subscription: cfg.SubscriptionName,
		dispatcher:   cfg.Dispatcher,
		logger:       cfg.Logger,
	}, nil
}

// Start receives until ctx is cancelled.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().Str("subscription", h.subscription).Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.logger.Debug().
			Str("message_id", msg.ID).
			Time("publish_time", msg.PublishTime).
			Msg("received pubsub message")

		if h.dispatcher.Dispatch(ctx, msg.Data) == Ack {
			msg.Ack()
			return
		}
		msg.Nack()
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}
