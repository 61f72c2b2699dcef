package codec

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"

	"forgeauth/internal/domain"
)

// EncodeHex returns lowercase hex without a prefix.
func EncodeHex(b []byte) string { return hex.EncodeToString(b) }

// DecodeHex decodes s, stripping one leading "0x" or "0X".
func DecodeHex(s string) ([]byte, error) {
	s = TrimHexPrefix(s)
	if len(s)%2 != 0 {
		return nil, domain.NewError(domain.KindMalformedInput, "codec.hex",
			fmt.Errorf("odd length %d", len(s)))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		var ib hex.InvalidByteError
		if errors.As(err, &ib) {
			err = errors.New("non-hex digit")
		}
		return nil, domain.NewError(domain.KindMalformedInput, "codec.hex", err)
	}
	return b, nil
}

// TrimHexPrefix removes a single 0x/0X prefix.
func TrimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}

// IsHex reports whether s (prefix allowed) decodes as hex.
func IsHex(s string) bool {
	s = TrimHexPrefix(s)
	if len(s) == 0 || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// EncodeBase64 returns standard padded base64.
func EncodeBase64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// DecodeBase64 reverses EncodeBase64 exactly.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, domain.NewError(domain.KindMalformedInput, "codec.base64", err)
	}
	return b, nil
}

// EncodeBase58 returns the Bitcoin-alphabet base58 form of b.
func EncodeBase58(b []byte) string { return base58.Encode(b) }

// DecodeBase58 decodes s. base58.Decode signals bad input with an empty
// result, so empty input is rejected as well.
func DecodeBase58(s string) ([]byte, error) {
	if s == "" {
		return nil, domain.NewError(domain.KindMalformedInput, "codec.base58", errors.New("empty input"))
	}
	b := base58.Decode(s)
	if len(b) == 0 {
		return nil, domain.NewError(domain.KindMalformedInput, "codec.base58", errors.New("invalid character"))
	}
	return b, nil
}

// ParseIdentity accepts a base58 address or a hex public key.
func ParseIdentity(s string) (domain.PublicIdentity, error) {
	var id domain.PublicIdentity
	s = strings.TrimSpace(s)

	var (
		b   []byte
		err error
	)
	if IsHex(s) && len(TrimHexPrefix(s)) == 2*domain.PublicKeySize {
		b, err = DecodeHex(s)
	} else {
		b, err = DecodeBase58(s)
	}
	if err != nil {
		return id, err
	}
	if len(b) != domain.PublicKeySize {
		return id, domain.NewError(domain.KindMalformedInput, "codec.identity",
			fmt.Errorf("want %d bytes, got %d", domain.PublicKeySize, len(b)))
	}
	copy(id[:], b)
	return id, nil
}

// ParseSignature decodes a base64 signature of the expected size.
func ParseSignature(s string) (domain.Signature, error) {
	var sig domain.Signature
	b, err := DecodeBase64(s)
	if err != nil {
		return sig, err
	}
	if len(b) != domain.SignatureSize {
		return sig, domain.NewError(domain.KindMalformedInput, "codec.signature",
			fmt.Errorf("want %d bytes, got %d", domain.SignatureSize, len(b)))
	}
	copy(sig[:], b)
	return sig, nil
}
