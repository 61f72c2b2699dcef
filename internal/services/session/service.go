package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"forgeauth/internal/crypto"
	"forgeauth/internal/domain"
	"forgeauth/internal/keysource"
	"forgeauth/internal/metrics"
	"forgeauth/internal/wallet"
)

// DefaultTimeout bounds each wallet interaction (connect, sign).
const DefaultTimeout = 2 * time.Minute

// Service negotiates wallet sessions and stores the resulting records.
//
// A session proves that the caller controls a public identity. This
// service handles:
//   - Resolving key material from the caller's configuration.
//   - Connecting to the wallet provider when no key was supplied.
//   - Building and signing the canonical challenge.
//   - Verifying the signature and persisting the session record.
type Service struct {
	provider domain.WalletProvider
	store    domain.SessionStore

	ttl     time.Duration
	timeout time.Duration

	now      func() time.Time
	nonce    func() (string, error)
	newID    func() string
	observer func(Transition)

	log     *slog.Logger
	metrics *metrics.SessionMetrics
}

// Option configures a Service.
type Option func(*Service)

// WithTTL sets the session lifetime. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithTimeout bounds each wait on the wallet. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithNonceSource replaces the random challenge nonce.
func WithNonceSource(fn func() (string, error)) Option { return func(s *Service) { s.nonce = fn } }

// WithStateObserver receives every state transition.
func WithStateObserver(fn func(Transition)) Option { return func(s *Service) { s.observer = fn } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// WithMetrics records negotiation outcomes.
func WithMetrics(m *metrics.SessionMetrics) Option { return func(s *Service) { s.metrics = m } }

// New constructs a session Service. provider may be nil when only direct
// keys are used; it then behaves as an absent wallet.
func New(provider domain.WalletProvider, store domain.SessionStore, opts ...Option) *Service {
	if provider == nil {
		provider = wallet.Unavailable{}
	}
	s := &Service{
		provider: provider,
		store:    store,
		ttl:      domain.DefaultSessionTTL,
		timeout:  DefaultTimeout,
		now:      time.Now,
		nonce:    NewNonce,
		newID:    uuid.NewString,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Negotiate runs the protocol for cfg.
//
// Steps:
//  1. Resolve cfg into a direct key or the wallet extension.
//  2. Obtain the public identity (derived locally or from Connect).
//  3. Build the challenge and sign it (locally or with SignMessage).
//  4. Verify the signature; on success create and store the session record.
func (s *Service) Negotiate(ctx context.Context, cfg domain.NegotiationConfig) (domain.SessionRecord, error) {
	n := s.begin(cfg.Network)
	n.to(ResolvingKey)

	src, err := keysource.Resolve(cfg)
	if err != nil {
		return n.fail(err)
	}
	return s.run(ctx, n, src)
}

// NegotiateSource runs the protocol for an already resolved key source,
// e.g. a key loaded from the keystore.
func (s *Service) NegotiateSource(ctx context.Context, src keysource.KeySource, network string) (domain.SessionRecord, error) {
	n := s.begin(network)
	n.to(ResolvingKey)
	if src == nil {
		return n.fail(domain.NewError(domain.KindInvalidKeyMaterial, "session.resolve", errors.New("no key source")))
	}
	return s.run(ctx, n, src)
}

// GetSession returns the stored session for identity.
func (s *Service) GetSession(ctx context.Context, identity domain.PublicIdentity) (domain.SessionRecord, error) {
	return s.store.Get(ctx, identity)
}

// Revoke deletes the stored session for identity.
func (s *Service) Revoke(ctx context.Context, identity domain.PublicIdentity) error {
	return s.store.Delete(ctx, identity)
}

// IsValid reports whether rec is still usable now.
func (s *Service) IsValid(rec domain.SessionRecord) bool { return rec.IsValid(s.now()) }

func (s *Service) run(ctx context.Context, n *negotiation, src keysource.KeySource) (domain.SessionRecord, error) {
	n.source = src.Kind()

	switch k := src.(type) {
	case keysource.DirectKey:
		defer k.Wipe()
		n.to(DirectSigning)

		id := k.Identity()
		challenge, err := s.challenge(n.network, id)
		if err != nil {
			return n.fail(err)
		}
		sig := crypto.Sign(k.Seed, challenge.Bytes())
		return s.validate(ctx, n, id, challenge, sig)

	case keysource.WalletExtension:
		n.to(AwaitingWalletConnect)
		available, err := within(ctx, s.timeout, "session.available", func(ctx context.Context) (bool, error) {
			return s.provider.IsAvailable(ctx), nil
		})
		if err != nil {
			return n.fail(err)
		}
		if !available {
			return n.fail(domain.NewError(domain.KindWalletUnavailable, "session.connect", nil))
		}

		id, err := within(ctx, s.timeout, "session.connect", s.provider.Connect)
		if err != nil {
			return n.fail(normalize(err, domain.KindConnectionDenied, "session.connect"))
		}
		if id.IsZero() {
			return n.fail(domain.NewError(domain.KindConnectionDenied, "session.connect", errors.New("wallet returned an empty public key")))
		}
		n.identity = id

		n.to(AwaitingSignature)
		challenge, err := s.challenge(n.network, id)
		if err != nil {
			return n.fail(err)
		}
		sig, err := within(ctx, s.timeout, "session.sign", func(ctx context.Context) (domain.Signature, error) {
			return s.provider.SignMessage(ctx, challenge.Bytes())
		})
		if err != nil {
			return n.fail(normalize(err, domain.KindSignatureDenied, "session.sign"))
		}
		return s.validate(ctx, n, id, challenge, sig)

	default:
		return n.fail(domain.NewError(domain.KindInvalidKeyMaterial, "session.resolve", errors.New("unknown key source")))
	}
}

func (s *Service) validate(
	ctx context.Context,
	n *negotiation,
	id domain.PublicIdentity,
	challenge domain.Challenge,
	sig domain.Signature,
) (domain.SessionRecord, error) {
	n.identity = id
	n.to(Validating)
	if !crypto.Verify(id, challenge.Bytes(), sig) {
		return n.fail(domain.NewError(domain.KindSignatureInvalid, "session.validate", nil))
	}

	now := s.now()
	rec := domain.SessionRecord{
		SessionID:     s.newID(),
		Identity:      id,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
		OriginMessage: challenge,
	}
	if s.store != nil {
		if err := s.store.Put(ctx, rec); err != nil {
			return n.fail(domain.NewError(domain.KindUnknown, "session.store", err))
		}
	}
	return n.succeed(rec)
}

func (s *Service) challenge(network string, id domain.PublicIdentity) (domain.Challenge, error) {
	nonce, err := s.nonce()
	if err != nil {
		return "", domain.NewError(domain.KindUnknown, "session.challenge", err)
	}
	return BuildChallenge(ChallengeFields{
		Network:  network,
		Identity: id,
		IssuedAt: s.now(),
		Nonce:    nonce,
	})
}

// within runs fn under the negotiation timeout. fn runs on its own
// goroutine so a provider that ignores its context cannot hold the
// negotiation past the deadline.
func within[T any](ctx context.Context, timeout time.Duration, op string, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && ctx.Err() != nil {
			var zero T
			return zero, wallet.ContextError(ctx, op)
		}
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, wallet.ContextError(ctx, op)
	}
}

// normalize keeps Timeout, Canceled and SignatureInvalid as reported and
// folds every other provider failure into kind.
func normalize(err error, kind domain.ErrorKind, op string) error {
	switch domain.KindOf(err) {
	case kind, domain.KindTimeout, domain.KindCanceled, domain.KindSignatureInvalid:
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewError(domain.KindTimeout, op, err)
	}
	if errors.Is(err, context.Canceled) {
		return domain.NewError(domain.KindCanceled, op, err)
	}
	return domain.NewError(kind, op, err)
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
