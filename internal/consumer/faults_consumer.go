package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"auction-service/internal/bus"
	"auction-service/internal/contracts"
	"auction-service/utils"
)

// RemediedModel is the sentinel written into the Model field when an
// argument-validation fault is remediated.
const RemediedModel = "FooBar"

// Remediation rewrites a faulted AuctionUpdated event into a corrected one.
type Remediation func(contracts.AuctionUpdated) contracts.AuctionUpdated

// AuctionUpdatedFaultsConsumer watches the AuctionUpdated fault channel and
// republishes a corrected event for recognized fault classifiers. Only the
// first exception descriptor of a fault is inspected; unrecognized
// classifiers are logged and dropped. The consumer never touches the store,
// so a remediated event stream can diverge from the persisted rows.
type AuctionUpdatedFaultsConsumer struct {
	bus          bus.Publisher
	remediations map[string]Remediation
}

// NewAuctionUpdatedFaultsConsumer creates a consumer with the default
// remediation registry: argument-validation faults get the Model sentinel.
func NewAuctionUpdatedFaultsConsumer(publisher bus.Publisher) *AuctionUpdatedFaultsConsumer {
	return &AuctionUpdatedFaultsConsumer{
		bus: publisher,
		remediations: map[string]Remediation{
			contracts.ArgumentException: remediateArgumentFault,
		},
	}
}

func remediateArgumentFault(event contracts.AuctionUpdated) contracts.AuctionUpdated {
	event.Model = RemediedModel
	return event
}

// Consume handles a single fault envelope: at most one republish, no retries.
func (c *AuctionUpdatedFaultsConsumer) Consume(ctx context.Context, fault contracts.AuctionUpdatedFault) error {
	if len(fault.Exceptions) == 0 {
		return fmt.Errorf("consumer: fault for auction %s carries no exceptions", fault.Message.ID)
	}

	first := fault.Exceptions[0]
	remediate, ok := c.remediations[first.ExceptionType]
	if !ok {
		utils.Warn("dropping unrecognized fault", map[string]any{
			"auction_id":     fault.Message.ID,
			"exception_type": first.ExceptionType,
			"message":        first.Message,
		})
		return nil
	}

	corrected := remediate(fault.Message)
	if err := c.bus.Publish(ctx, bus.AuctionUpdatedChannel, corrected); err != nil {
		return fmt.Errorf("consumer: failed to republish corrected update for auction %s: %w", fault.Message.ID, err)
	}

	utils.Info("republished corrected update", map[string]any{
		"auction_id":     fault.Message.ID,
		"exception_type": first.ExceptionType,
	})
	return nil
}

// Run subscribes to the fault channel and consumes envelopes until ctx is
// cancelled. Malformed payloads and failed consumptions are logged, never
// retried.
func (c *AuctionUpdatedFaultsConsumer) Run(ctx context.Context, subscriber bus.Subscriber) error {
	msgs, err := subscriber.Subscribe(ctx, bus.AuctionUpdatedFaultChannel)
	if err != nil {
		return fmt.Errorf("consumer: failed to subscribe to fault channel: %w", err)
	}

	for payload := range msgs {
		var fault contracts.AuctionUpdatedFault
		if err := json.Unmarshal(payload, &fault); err != nil {
			utils.Error("dropping malformed fault payload", map[string]any{"error": err.Error()})
			continue
		}
		if err := c.Consume(ctx, fault); err != nil {
			utils.Error("fault consumption failed", map[string]any{
				"auction_id": fault.Message.ID,
				"error":      err.Error(),
			})
		}
	}
	return nil
}
