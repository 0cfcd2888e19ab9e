package pusher

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/pusher/core/logger"
	"github.com/dmitrymomot/pusher/pkg/async"
	"github.com/dmitrymomot/pusher/pkg/channel"
	"github.com/dmitrymomot/pusher/pkg/result"
)

const (
	// MaxEventNameLength is the longest event name accepted.
	MaxEventNameLength = 200

	// MaxDataSize is the largest serialized event data accepted, in bytes.
	MaxDataSize = 10 * 1024

	// MaxBatchSize is the most events a batch may contain.
	MaxBatchSize = 10
)

// TriggerParams describes one event published to one or more channels.
type TriggerParams struct {
	Channels []string
	Event    string
	// Data is sent verbatim when it is a string or []byte, otherwise it is
	// serialized with the client's marshaller. Strings are not JSON encoded:
	// "hello" goes out as "data":"hello", not "data":"\"hello\"". Pass
	// json.Marshal output to send a JSON string value.
	Data any
	// SocketID excludes that connection from receiving the event.
	SocketID string
	// Info requests channel attributes in the response, e.g. "user_count".
	Info []string
}

// Event is one entry of a batch trigger.
type Event struct {
	Channel  string
	Name     string
	Data     any
	SocketID string
	Info     []string
}

type triggerBody struct {
	Name     string   `json:"name"`
	Channels []string `json:"channels"`
	Data     string   `json:"data"`
	SocketID string   `json:"socket_id,omitempty"`
	Info     string   `json:"info,omitempty"`
}

type batchEvent struct {
	Channel  string `json:"channel"`
	Name     string `json:"name"`
	Data     string `json:"data"`
	SocketID string `json:"socket_id,omitempty"`
	Info     string `json:"info,omitempty"`
}

type batchBody struct {
	Batch []batchEvent `json:"batch"`
}

// Trigger publishes an event to a single channel.
func (c *Client) Trigger(ctx context.Context, channelName, event string, data any) (result.Result, error) {
	return c.TriggerWithParams(ctx, TriggerParams{Channels: []string{channelName}, Event: event, Data: data})
}

// TriggerMulti publishes an event to several channels at once.
func (c *Client) TriggerMulti(ctx context.Context, channels []string, event string, data any) (result.Result, error) {
	return c.TriggerWithParams(ctx, TriggerParams{Channels: channels, Event: event, Data: data})
}

// TriggerWithParams validates, optionally encrypts and publishes an event.
// Input and encryption errors are returned before any network call; the
// outcome of the call itself is reported in the Result.
func (c *Client) TriggerWithParams(ctx context.Context, p TriggerParams) (result.Result, error) {
	if err := channel.ValidateNames(p.Channels); err != nil {
		return result.Result{}, inputError(err)
	}
	if err := validateEvent(p.Event, p.SocketID); err != nil {
		return result.Result{}, err
	}

	var encrypted string
	for _, ch := range p.Channels {
		if channel.IsEncrypted(ch) {
			encrypted = ch
			break
		}
	}
	if encrypted != "" && len(p.Channels) > 1 {
		return result.Result{}, inputError(ErrMultipleChannelsEncrypted)
	}

	data, err := c.eventData(encrypted, p.Data)
	if err != nil {
		return result.Result{}, err
	}

	body, err := encodeBody(triggerBody{
		Name:     p.Event,
		Channels: p.Channels,
		Data:     data,
		SocketID: p.SocketID,
		Info:     strings.Join(p.Info, ","),
	})
	if err != nil {
		return result.Result{}, inputError(err)
	}

	res, err := c.Post(ctx, "/events", body)
	if err != nil {
		return res, err
	}
	c.logger.DebugContext(ctx, "event triggered",
		logger.Channels(p.Channels),
		logger.EventName(p.Event),
		logger.SocketID(p.SocketID),
		logger.Status(res.Status.String()),
	)
	return res, nil
}

// TriggerBatch publishes up to MaxBatchSize events in one call. Each event on
// an encrypted channel is encrypted with that channel's own key.
func (c *Client) TriggerBatch(ctx context.Context, events []Event) (result.Result, error) {
	switch {
	case len(events) == 0:
		return result.Result{}, inputError(ErrEmptyBatch)
	case len(events) > MaxBatchSize:
		return result.Result{}, inputError(fmt.Errorf("%w: got %d", ErrBatchTooLarge, len(events)))
	}

	batch := make([]batchEvent, 0, len(events))
	for i, e := range events {
		if err := channel.ValidateName(e.Channel); err != nil {
			return result.Result{}, inputError(fmt.Errorf("batch[%d]: %w", i, err))
		}
		if err := validateEvent(e.Name, e.SocketID); err != nil {
			return result.Result{}, fmt.Errorf("batch[%d]: %w", i, err)
		}

		var encrypted string
		if channel.IsEncrypted(e.Channel) {
			encrypted = e.Channel
		}
		data, err := c.eventData(encrypted, e.Data)
		if err != nil {
			return result.Result{}, fmt.Errorf("batch[%d]: %w", i, err)
		}

		batch = append(batch, batchEvent{
			Channel:  e.Channel,
			Name:     e.Name,
			Data:     data,
			SocketID: e.SocketID,
			Info:     strings.Join(e.Info, ","),
		})
	}

	body, err := encodeBody(batchBody{Batch: batch})
	if err != nil {
		return result.Result{}, inputError(err)
	}

	res, err := c.Post(ctx, "/batch_events", body)
	if err != nil {
		return res, err
	}
	c.logger.DebugContext(ctx, "batch triggered",
		logger.Count("events", len(batch)),
		logger.Status(res.Status.String()),
	)
	return res, nil
}

// TriggerAsync runs TriggerWithParams in the background.
func (c *Client) TriggerAsync(ctx context.Context, p TriggerParams) *async.Future[result.Result] {
	return async.Async(ctx, p, c.TriggerWithParams)
}

// eventData serializes data and, when encryptedChannel is set, replaces it
// with the JSON of the encrypted payload.
func (c *Client) eventData(encryptedChannel string, data any) (string, error) {
	serialized, err := c.serialize(data)
	if err != nil {
		return "", inputError(err)
	}

	if encryptedChannel != "" {
		eng, err := c.encryption.Engine()
		if err != nil {
			return "", classify(err)
		}
		payload, err := eng.Encrypt(encryptedChannel, []byte(serialized))
		if err != nil {
			return "", classify(err)
		}
		b, err := encodeBody(payload)
		if err != nil {
			return "", inputError(err)
		}
		serialized = string(b)
	}

	if len(serialized) > MaxDataSize {
		return "", inputError(fmt.Errorf("%w: %d bytes", ErrDataTooLarge, len(serialized)))
	}
	return serialized, nil
}

func validateEvent(name, socketID string) error {
	if name == "" || len(name) > MaxEventNameLength {
		return inputError(ErrInvalidEventName)
	}
	if socketID != "" {
		if err := channel.ValidateSocketID(socketID); err != nil {
			return inputError(err)
		}
	}
	return nil
}
