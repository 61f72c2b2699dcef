package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"forgeauth/internal/codec"
	"forgeauth/internal/domain"
)

// ChallengeTag is the first line of every challenge. Bump the version when
// the layout changes so verifiers can tell formats apart.
const ChallengeTag = "forge-session/v1"

const challengeStatement = "Sign in to Forge to prove you own this wallet."

// nonceBytes is the random part of a challenge (32 hex chars).
const nonceBytes = 16

// ChallengeFields are the inputs a challenge is derived from. The same
// fields always produce the same text.
type ChallengeFields struct {
	Network  string
	Identity domain.PublicIdentity
	IssuedAt time.Time
	Nonce    string
}

// BuildChallenge renders the canonical challenge text.
func BuildChallenge(f ChallengeFields) (domain.Challenge, error) {
	if err := checkField("network", f.Network); err != nil {
		return "", err
	}
	if err := checkField("nonce", f.Nonce); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(ChallengeTag)
	b.WriteByte('\n')
	b.WriteString(challengeStatement)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "network: %s\n", f.Network)
	fmt.Fprintf(&b, "identity: %s\n", f.Identity.Base58())
	fmt.Fprintf(&b, "issued-at: %s\n", f.IssuedAt.UTC().Truncate(time.Second).Format(time.RFC3339))
	fmt.Fprintf(&b, "nonce: %s", f.Nonce)
	return domain.Challenge(b.String()), nil
}

// ParseChallenge recovers the fields of a challenge built by BuildChallenge.
// Challenges with another tag are rejected.
func ParseChallenge(c domain.Challenge) (ChallengeFields, error) {
	const op = "session.challenge"
	var f ChallengeFields

	lines := strings.Split(string(c), "\n")
	if len(lines) != 6 {
		return f, domain.NewError(domain.KindMalformedInput, op, errors.New("unexpected line count"))
	}
	if lines[0] != ChallengeTag {
		return f, domain.NewError(domain.KindMalformedInput, op, fmt.Errorf("unsupported challenge version %q", lines[0]))
	}
	if lines[1] != challengeStatement {
		return f, domain.NewError(domain.KindMalformedInput, op, errors.New("unexpected statement"))
	}

	values := make(map[string]string, 4)
	for _, line := range lines[2:] {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			return f, domain.NewError(domain.KindMalformedInput, op, fmt.Errorf("bad line %q", line))
		}
		values[key] = value
	}

	f.Network = values["network"]
	f.Nonce = values["nonce"]

	id, err := codec.ParseIdentity(values["identity"])
	if err != nil {
		return f, err
	}
	f.Identity = id

	f.IssuedAt, err = time.Parse(time.RFC3339, values["issued-at"])
	if err != nil {
		return f, domain.NewError(domain.KindMalformedInput, op, err)
	}
	return f, nil
}

// NewNonce returns a fresh random challenge nonce.
func NewNonce() (string, error) {
	b := make([]byte, nonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func checkField(name, v string) error {
	for _, r := range v {
		if unicode.IsControl(r) {
			return domain.NewError(domain.KindMalformedInput, "session.challenge",
				fmt.Errorf("%s contains control characters", name))
		}
	}
	return nil
}
