package bus

import "context"

// Channel names for the auction event streams. The fault channel carries
// wrapped AuctionUpdated events that a downstream consumer rejected.
const (
	AuctionCreatedChannel      = "auctions.created"
	AuctionUpdatedChannel      = "auctions.updated"
	AuctionDeletedChannel      = "auctions.deleted"
	AuctionUpdatedFaultChannel = "auctions.updated.fault"
)

// Publisher hands an event to the bus. A nil return only means the bus
// accepted the message locally, not that any subscriber has processed it.
type Publisher interface {
	Publish(ctx context.Context, channel string, event any) error
}

// Subscriber delivers raw event payloads from a channel until ctx is
// cancelled; the returned channel is closed when the subscription ends.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}
