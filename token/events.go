package token

import "github.com/holiman/uint256"

// EventKind names a notification emitted by the engine.
type EventKind string

// Notification kinds, one per observable state transition.
const (
	EventMinted          EventKind = "minted"
	EventClaimed         EventKind = "claimed"
	EventListed          EventKind = "listed"
	EventListingCanceled EventKind = "listing_canceled"
	EventSold            EventKind = "sold"
	EventLeveledUp       EventKind = "leveled_up"
)

// Event is a notification produced by a successful state transition.
// Events are emitted after the transition's effects are fully applied.
type Event interface {
	Kind() EventKind
}

// Minted is emitted once per token created by a mint batch.
type Minted struct {
	ID   TokenID      `json:"id"`
	Seed *uint256.Int `json:"seed"`
}

// Claimed is emitted when a token's first acquisition completes.
type Claimed struct {
	ID       TokenID `json:"id"`
	NewOwner Address `json:"newOwner"`
}

// Listed is emitted when a sale offer is created.
type Listed struct {
	ID    TokenID      `json:"id"`
	Owner Address      `json:"owner"`
	Price *uint256.Int `json:"price"`
}

// ListingCanceled is emitted when the owner withdraws a sale offer.
type ListingCanceled struct {
	ID    TokenID `json:"id"`
	Owner Address `json:"owner"`
}

// Sold is emitted when a listed token is bought.
type Sold struct {
	Seller Address      `json:"seller"`
	Buyer  Address      `json:"buyer"`
	ID     TokenID      `json:"id"`
	Price  *uint256.Int `json:"price"`
}

// LeveledUp is emitted when a token advances one level.
type LeveledUp struct {
	ID       TokenID `json:"id"`
	NewLevel uint32  `json:"newLevel"`
}

// Kind implements Event.
func (Minted) Kind() EventKind { return EventMinted }

// Kind implements Event.
func (Claimed) Kind() EventKind { return EventClaimed }

// Kind implements Event.
func (Listed) Kind() EventKind { return EventListed }

// Kind implements Event.
func (ListingCanceled) Kind() EventKind { return EventListingCanceled }

// Kind implements Event.
func (Sold) Kind() EventKind { return EventSold }

// Kind implements Event.
func (LeveledUp) Kind() EventKind { return EventLeveledUp }
