package keyring

import (
	"context"
	"errors"
	"sync/atomic"

	"forgeauth/internal/crypto"
	"forgeauth/internal/domain"
	"forgeauth/internal/wallet"
)

// PromptKind says what the user is asked to approve.
type PromptKind string

const (
	PromptConnect PromptKind = "connect"
	PromptSign    PromptKind = "sign"
)

// Prompt is shown to the approver. Message is set for sign prompts only.
type Prompt struct {
	Kind    PromptKind
	Message []byte
}

// Approver returns nil to approve a prompt. It may block until the user
// decides and must return when ctx is done.
type Approver func(ctx context.Context, p Prompt) error

// ErrRejected is the stock rejection returned by Deny.
var ErrRejected = errors.New("user rejected the request")

// AutoApprove approves every prompt.
func AutoApprove(context.Context, Prompt) error { return nil }

// Deny rejects prompts of the given kinds and approves the rest.
func Deny(kinds ...PromptKind) Approver {
	return func(_ context.Context, p Prompt) error {
		for _, k := range kinds {
			if p.Kind == k {
				return ErrRejected
			}
		}
		return nil
	}
}

// Keyring implements domain.WalletProvider over a local seed.
type Keyring struct {
	seed    domain.Seed
	pub     domain.PublicIdentity
	approve Approver
	conn    wallet.Conn

	connectPrompts atomic.Int64
	signPrompts    atomic.Int64
}

// New returns a keyring for seed. A nil approver approves everything.
func New(seed domain.Seed, approve Approver) *Keyring {
	if approve == nil {
		approve = AutoApprove
	}
	return &Keyring{
		seed:    seed,
		pub:     crypto.DeriveIdentity(seed),
		approve: approve,
	}
}

func (k *Keyring) Name() string { return "keyring" }

func (k *Keyring) IsAvailable(context.Context) bool { return true }

// Connect prompts once; later calls return the cached identity.
func (k *Keyring) Connect(ctx context.Context) (domain.PublicIdentity, error) {
	return k.conn.Connect(ctx, func(ctx context.Context) (domain.PublicIdentity, error) {
		k.connectPrompts.Add(1)
		if err := k.ask(ctx, Prompt{Kind: PromptConnect}); err != nil {
			return domain.PublicIdentity{}, deniedOrContext(ctx, domain.KindConnectionDenied, "keyring.connect", err)
		}
		return k.pub, nil
	})
}

// SignMessage requires a prior Connect, like an extension does.
func (k *Keyring) SignMessage(ctx context.Context, msg []byte) (domain.Signature, error) {
	if _, ok := k.conn.Identity(); !ok {
		return domain.Signature{}, domain.NewError(domain.KindConnectionDenied, "keyring.sign",
			errors.New("wallet not connected"))
	}
	k.signPrompts.Add(1)
	if err := k.ask(ctx, Prompt{Kind: PromptSign, Message: msg}); err != nil {
		return domain.Signature{}, deniedOrContext(ctx, domain.KindSignatureDenied, "keyring.sign", err)
	}
	return crypto.Sign(k.seed, msg), nil
}

func (k *Keyring) Disconnect(context.Context) error {
	k.conn.Reset()
	return nil
}

// Connected returns the identity if a connection is open.
func (k *Keyring) Connected() (domain.PublicIdentity, bool) { return k.conn.Identity() }

// Identity returns the key's public identity without connecting.
func (k *Keyring) Identity() domain.PublicIdentity { return k.pub }

// ConnectPrompts counts connect prompts shown so far.
func (k *Keyring) ConnectPrompts() int64 { return k.connectPrompts.Load() }

// SignPrompts counts sign prompts shown so far.
func (k *Keyring) SignPrompts() int64 { return k.signPrompts.Load() }

func (k *Keyring) ask(ctx context.Context, p Prompt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return k.approve(ctx, p)
}

func deniedOrContext(ctx context.Context, kind domain.ErrorKind, op string, err error) error {
	if ctx.Err() != nil {
		return wallet.ContextError(ctx, op)
	}
	return domain.NewError(kind, op, err)
}

var _ domain.WalletProvider = (*Keyring)(nil)
