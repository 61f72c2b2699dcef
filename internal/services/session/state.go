package session

import "forgeauth/internal/domain"

// State is a step of a negotiation.
type State int

const (
	Idle State = iota
	ResolvingKey
	DirectSigning
	AwaitingWalletConnect
	AwaitingSignature
	Validating
	Established
	Failed
)

var stateNames = [...]string{
	Idle:                  "Idle",
	ResolvingKey:          "ResolvingKey",
	DirectSigning:         "DirectSigning",
	AwaitingWalletConnect: "AwaitingWalletConnect",
	AwaitingSignature:     "AwaitingSignature",
	Validating:            "Validating",
	Established:           "Established",
	Failed:                "Failed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(?)"
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool { return s == Established || s == Failed }

// Transition is reported to state observers. Reason is set when To is
// Failed.
type Transition struct {
	From   State
	To     State
	Reason domain.ErrorKind
}
