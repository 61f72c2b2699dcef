package wallet

import (
	"context"

	"forgeauth/internal/domain"
)

// Unavailable stands in when the host exposes no wallet at all.
type Unavailable struct{}

func (Unavailable) Name() string                     { return "none" }
func (Unavailable) IsAvailable(context.Context) bool { return false }

func (Unavailable) Connect(context.Context) (domain.PublicIdentity, error) {
	return domain.PublicIdentity{}, domain.NewError(domain.KindWalletUnavailable, "wallet.connect", nil)
}

func (Unavailable) SignMessage(context.Context, []byte) (domain.Signature, error) {
	return domain.Signature{}, domain.NewError(domain.KindWalletUnavailable, "wallet.sign", nil)
}

func (Unavailable) Disconnect(context.Context) error { return nil }

var _ domain.WalletProvider = Unavailable{}
