package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"github.com/peergov/modgate"
)

const EventChannelAll = "modgate:events"

// ProposalChannel is the per-proposal pubsub channel name.
func ProposalChannel(proposalID uint64) string {
	return fmt.Sprintf("modgate:events:proposal:%d", proposalID)
}

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

// Publish fans a gate event out to the firehose and the proposal channel.
func (s *SignalService) Publish(ctx context.Context, event modgate.Event) error {
	ctx, span := tracer.Start(ctx, "Signal.Service.Publish", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := s.rdb.Publish(ctx, EventChannelAll, jsonstr).Err(); err != nil {
		return err
	}

	return s.rdb.Publish(ctx, ProposalChannel(event.ProposalID), jsonstr).Err()
}

// Realtime relays pubsub events to a websocket session. The request channel
// carries the caller's subscription list; an empty list means the firehose.
func (s *SignalService) Realtime(ctx context.Context, request <-chan []string, response chan<- modgate.Event) {
	pubsub := s.rdb.Subscribe(ctx)
	defer pubsub.Close()

	messages := pubsub.Channel()
	var subscribed []string

	for {
		select {
		case <-ctx.Done():
			return
		case channels, ok := <-request:
			if !ok {
				return
			}
			if len(channels) == 0 {
				channels = []string{EventChannelAll}
			}
			if len(subscribed) > 0 {
				if err := pubsub.Unsubscribe(ctx, subscribed...); err != nil {
					return
				}
			}
			if err := pubsub.Subscribe(ctx, channels...); err != nil {
				return
			}
			subscribed = channels
		case message, ok := <-messages:
			if !ok {
				return
			}
			var event modgate.Event
			if err := json.Unmarshal([]byte(message.Payload), &event); err != nil {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case response <- event:
			}
		}
	}
}
