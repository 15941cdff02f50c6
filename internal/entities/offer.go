package entities

import "time"

type OfferState string

const (
	OfferPending    OfferState = "pending"
	OfferAccepted   OfferState = "accepted"
	OfferRejected   OfferState = "rejected"
	OfferExpired    OfferState = "expired"
	OfferSuperseded OfferState = "superseded"
)

func (s OfferState) String() string {
	return string(s)
}

// Terminal reports whether the state can no longer transition.
// Every state except pending is terminal; transitions are one-way.
func (s OfferState) Terminal() bool {
	return s != OfferPending
}

type OfferDecision string

const (
	DecisionAccept OfferDecision = "accept"
	DecisionReject OfferDecision = "reject"
)

func (d OfferDecision) String() string {
	return string(d)
}

func (d OfferDecision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}

// State maps a courier decision onto the offer state it produces.
func (d OfferDecision) State() OfferState {
	if d == DecisionAccept {
		return OfferAccepted
	}
	return OfferRejected
}

// Offer is one time-boxed proposal of one order to one courier.
type Offer struct {
	ID         int64
	OrderID    string
	CourierID  int64
	State      OfferState
	Rank       int64
	Score      float64
	DistanceKm float64
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// ExpiredOffer is what the bulk expiry sweep returns per transitioned row.
type ExpiredOffer struct {
	OfferID   int64
	OrderID   string
	CourierID int64
}
