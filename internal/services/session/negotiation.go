package session

import (
	"log/slog"
	"time"

	"forgeauth/internal/domain"
)

// negotiation is the state of a single Negotiate call. It is never shared
// between calls.
type negotiation struct {
	svc      *Service
	state    State
	network  string
	source   string
	identity domain.PublicIdentity
	started  time.Time
}

func (s *Service) begin(network string) *negotiation {
	return &negotiation{svc: s, state: Idle, network: network, started: time.Now()}
}

func (n *negotiation) to(next State) {
	n.transition(Transition{From: n.state, To: next})
}

func (n *negotiation) transition(t Transition) {
	if n.state.Terminal() {
		panic("session: transition out of terminal state " + n.state.String())
	}
	n.state = t.To
	n.svc.log.Debug("session state", "from", t.From.String(), "to", t.To.String(), "network", n.network)
	if n.svc.observer != nil {
		n.svc.observer(t)
	}
}

func (n *negotiation) fail(err error) (domain.SessionRecord, error) {
	kind := domain.KindOf(err)
	n.transition(Transition{From: n.state, To: Failed, Reason: kind})

	attrs := []any{"kind", kind.String(), "source", n.source, "network", n.network}
	if !n.identity.IsZero() {
		attrs = append(attrs, "identity", n.identity.Base58())
	}
	n.svc.log.Warn("session negotiation failed", append(attrs, "err", err)...)
	n.svc.metrics.ObserveNegotiation(n.source, kind.String(), time.Since(n.started))
	return domain.SessionRecord{}, err
}

func (n *negotiation) succeed(rec domain.SessionRecord) (domain.SessionRecord, error) {
	n.to(Established)
	n.svc.log.Info("session established",
		slog.String("session_id", rec.SessionID),
		slog.String("identity", rec.Identity.Base58()),
		slog.String("source", n.source),
		slog.String("network", n.network),
		slog.Time("expires_at", rec.ExpiresAt),
	)
	n.svc.metrics.ObserveNegotiation(n.source, Established.String(), time.Since(n.started))
	return rec, nil
}
