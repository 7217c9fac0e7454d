package state

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const actionsTopic = "app.actions"

// Store owns the application state and serializes every mutation through a
// single consumer: actions are published on an in-process Pub/Sub and
// applied by one subscriber in publish order, so no two reductions ever
// interleave. Reads are point-in-time snapshots.
type Store struct {
	mu     sync.RWMutex
	state  AppState
	pubSub *gochannel.GoChannel
	logger watermill.LoggerAdapter
}

func NewStore(initial AppState, logger watermill.LoggerAdapter) *Store {
	// Publishing blocks until the consumer acks, which it does only after
	// the reduction lands. A State() read issued after Dispatch returns is
	// therefore guaranteed to observe the dispatched action.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            64,
			BlockPublishUntilSubscriberAck: true,
		},
		logger,
	)
	return &Store{state: initial, pubSub: pubSub, logger: logger}
}

// Run starts the single consumer. It must be called before the first
// Dispatch; actions published without a subscriber are dropped by the
// channel Pub/Sub.
func (s *Store) Run(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, actionsTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.apply(msg)
		}
	}()

	return nil
}

func (s *Store) apply(msg *message.Message) {
	defer msg.Ack()

	action, err := UnmarshalAction(msg.Payload)
	if err != nil {
		// A malformed envelope must not wedge the loop; it reduces to
		// nothing.
		s.logger.Error("dropping undecodable action", err, watermill.LogFields{"message_id": msg.UUID})
		return
	}

	s.mu.Lock()
	s.state = Reduce(s.state, action)
	s.mu.Unlock()
}

// Dispatch publishes an action to the consumer and returns once the action
// has been applied. Ordering across Dispatch calls from the same goroutine
// is preserved end to end. Dispatching from inside the consumer would
// deadlock; reductions never dispatch.
func (s *Store) Dispatch(a Action) error {
	payload, err := MarshalAction(a)
	if err != nil {
		return err
	}
	return s.pubSub.Publish(actionsTopic, message.NewMessage(watermill.NewUUID(), payload))
}

// State returns the current state snapshot. The snapshot shares slices and
// maps with the store, all of which are treated as immutable by the reducer;
// callers must not mutate them.
func (s *Store) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Close() error {
	return s.pubSub.Close()
}
