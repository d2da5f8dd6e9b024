// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package event

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const EventQueueSize = 20

type EventType string

type EventSubscriberId int

type EventHandlerFunc func(Event)

type Event struct {
	Timestamp time.Time
	Data      any
	Type      EventType
}

func NewEvent(eventType EventType, eventData any) Event {
	return NewEventWithTimestamp(eventType, eventData, time.Now())
}

// NewEventWithTimestamp builds an event stamped with the given time, for
// producers that run on an injected clock
func NewEventWithTimestamp(
	eventType EventType,
	eventData any,
	timestamp time.Time,
) Event {
	return Event{
		Type:      eventType,
		Timestamp: timestamp,
		Data:      eventData,
	}
}

type EventBus struct {
	subscribers map[EventType]map[EventSubscriberId]Subscriber
	metrics     *eventMetrics
	logger      *slog.Logger
	lastSubId   EventSubscriberId
	mu          sync.RWMutex
	stopped     bool
}

// NewEventBus creates a new EventBus. Publish delivers synchronously, so
// subscribers see events in the order they were published.
func NewEventBus(
	promRegistry prometheus.Registerer,
	logger *slog.Logger,
) *EventBus {
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	e := &EventBus{
		subscribers: make(map[EventType]map[EventSubscriberId]Subscriber),
		logger:      logger,
	}
	if promRegistry != nil {
		e.initMetrics(promRegistry)
	}
	return e
}

// Subscriber is a delivery abstraction that allows the EventBus to deliver
// events to in-memory channels and to external sinks via the same interface.
// Implementations must ensure Close() is idempotent and safe to call multiple times.
type Subscriber interface {
	Deliver(Event) error
	Close()
}

// channelSubscriber is the in-memory subscriber adapter behind Subscribe.
// Deliver never blocks: events for a full channel are dropped.
type channelSubscriber struct {
	ch     chan Event
	onDrop func()
	mu     sync.RWMutex
	closed bool
}

func newChannelSubscriber(buffer int, onDrop func()) *channelSubscriber {
	return &channelSubscriber{
		ch:     make(chan Event, buffer),
		onDrop: onDrop,
	}
}

func (c *channelSubscriber) Deliver(evt Event) error {
	// Hold the read lock so Close waits for in-flight sends
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil
	}
	select {
	case c.ch <- evt:
	default:
		if c.onDrop != nil {
			c.onDrop()
		}
	}
	return nil
}

func (c *channelSubscriber) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}

func subscriberKind(sub Subscriber) string {
	if _, ok := sub.(*channelSubscriber); ok {
		return "in-memory"
	}
	return "external"
}

func (e *EventBus) addSubscriber(
	eventType EventType,
	sub Subscriber,
) EventSubscriberId {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		// Nothing will be delivered, so release the subscriber right away
		sub.Close()
		return 0
	}
	subId := e.lastSubId + 1
	e.lastSubId = subId
	if _, ok := e.subscribers[eventType]; !ok {
		e.subscribers[eventType] = make(map[EventSubscriberId]Subscriber)
	}
	e.subscribers[eventType][subId] = sub
	if e.metrics != nil {
		e.metrics.subscribers.WithLabelValues(
			string(eventType),
			subscriberKind(sub),
		).Inc()
	}
	return subId
}

// Subscribe allows a consumer to receive events of a particular type via a channel
func (e *EventBus) Subscribe(
	eventType EventType,
) (EventSubscriberId, <-chan Event) {
	chSub := newChannelSubscriber(EventQueueSize, func() {
		e.logger.Warn(
			"subscriber queue full, dropping event",
			"component", "event",
			"type", eventType,
		)
		if e.metrics != nil {
			e.metrics.droppedEvents.WithLabelValues(string(eventType)).Inc()
		}
	})
	subId := e.addSubscriber(eventType, chSub)
	return subId, chSub.ch
}

// SubscribeFunc allows a consumer to receive events of a particular type via a callback function
func (e *EventBus) SubscribeFunc(
	eventType EventType,
	handlerFunc EventHandlerFunc,
) EventSubscriberId {
	subId, evtCh := e.Subscribe(eventType)
	go func(evtCh <-chan Event, handlerFunc EventHandlerFunc) {
		for evt := range evtCh {
			handlerFunc(evt)
		}
	}(evtCh, handlerFunc)
	return subId
}

// RegisterSubscriber attaches an external Subscriber implementation and
// returns its id
func (e *EventBus) RegisterSubscriber(
	eventType EventType,
	sub Subscriber,
) EventSubscriberId {
	return e.addSubscriber(eventType, sub)
}

// Unsubscribe stops delivery of events for a particular type for an existing subscriber
func (e *EventBus) Unsubscribe(eventType EventType, subId EventSubscriberId) {
	e.mu.Lock()
	var subToClose Subscriber
	if evtTypeSubs, ok := e.subscribers[eventType]; ok {
		if sub, ok2 := evtTypeSubs[subId]; ok2 {
			subToClose = sub
			delete(evtTypeSubs, subId)
			if len(evtTypeSubs) == 0 {
				delete(e.subscribers, eventType)
			}
			if e.metrics != nil {
				e.metrics.subscribers.WithLabelValues(
					string(eventType),
					subscriberKind(sub),
				).Dec()
			}
		}
	}
	e.mu.Unlock()

	if subToClose != nil {
		subToClose.Close()
	}
}

// Publish sends an event of a particular type to all subscribers. A
// subscriber whose delivery fails is unregistered.
func (e *EventBus) Publish(eventType EventType, evt Event) {
	// Build list of subscribers inside read lock to avoid map race condition
	type subItem struct {
		sub Subscriber
		id  EventSubscriberId
	}
	e.mu.RLock()
	subs := e.subscribers[eventType]
	subList := make([]subItem, 0, len(subs))
	for id, sub := range subs {
		subList = append(subList, subItem{id: id, sub: sub})
	}
	e.mu.RUnlock()
	for _, item := range subList {
		var deliverErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					deliverErr = fmt.Errorf("subscriber deliver panic: %v", r)
				}
			}()
			deliverErr = item.sub.Deliver(evt)
		}()
		if deliverErr == nil {
			continue
		}
		e.Unsubscribe(eventType, item.id)
		if e.metrics != nil {
			e.metrics.deliveryErrors.WithLabelValues(
				string(eventType),
				subscriberKind(item.sub),
			).Inc()
		}
		e.logger.Debug(
			"event delivery error",
			"component", "event",
			"type", eventType,
			"error", deliverErr,
		)
	}
	if e.metrics != nil {
		e.metrics.eventsTotal.WithLabelValues(string(eventType)).Inc()
	}
}

// Stop closes all subscribers, which ends any SubscribeFunc goroutines.
// Stop is idempotent. Events published after Stop reach no one.
func (e *EventBus) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	subsCopy := e.subscribers
	e.subscribers = make(map[EventType]map[EventSubscriberId]Subscriber)
	e.mu.Unlock()

	// Close subscribers outside of lock
	for _, evtTypeSubs := range subsCopy {
		for _, sub := range evtTypeSubs {
			sub.Close()
		}
	}
	if e.metrics != nil {
		e.metrics.subscribers.Reset()
	}
}
