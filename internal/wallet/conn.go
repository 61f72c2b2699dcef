package wallet

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"forgeauth/internal/domain"
)

const connectKey = "connect"

// DialFunc performs the provider-specific connect handshake.
type DialFunc func(ctx context.Context) (domain.PublicIdentity, error)

// Conn caches one shared wallet connection. The zero value is ready to use.
type Conn struct {
	mu        sync.Mutex
	id        domain.PublicIdentity
	connected bool
	// epoch increments on Reset so a dial that finishes after a disconnect
	// does not resurrect the dropped connection.
	epoch uint64

	group singleflight.Group
}

// Identity returns the connected identity, if any.
func (c *Conn) Identity() (domain.PublicIdentity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id, c.connected
}

// Connect returns the existing identity or runs dial once for all
// concurrent callers.
func (c *Conn) Connect(ctx context.Context, dial DialFunc) (domain.PublicIdentity, error) {
	for {
		if id, ok := c.Identity(); ok {
			return id, nil
		}

		ch := c.group.DoChan(connectKey, func() (any, error) {
			c.mu.Lock()
			epoch := c.epoch
			c.mu.Unlock()

			id, err := dial(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil, abandonedError{err}
				}
				return nil, err
			}

			c.mu.Lock()
			defer c.mu.Unlock()
			if c.epoch == epoch {
				c.id, c.connected = id, true
			}
			return id, nil
		})

		select {
		case <-ctx.Done():
			return domain.PublicIdentity{}, ContextError(ctx, "wallet.connect")
		case res := <-ch:
			var abandoned abandonedError
			if errors.As(res.Err, &abandoned) {
				if ctx.Err() != nil {
					return domain.PublicIdentity{}, ContextError(ctx, "wallet.connect")
				}
				// The shared dial belonged to a caller that gave up; retry
				// under our own context.
				continue
			}
			if res.Err != nil {
				return domain.PublicIdentity{}, res.Err
			}
			return res.Val.(domain.PublicIdentity), nil
		}
	}
}

// Reset drops the cached connection.
func (c *Conn) Reset() {
	c.mu.Lock()
	c.epoch++
	c.id, c.connected = domain.PublicIdentity{}, false
	c.mu.Unlock()
	c.group.Forget(connectKey)
}

// abandonedError marks a dial cut short by its initiator's context.
type abandonedError struct{ err error }

func (e abandonedError) Error() string { return e.err.Error() }
func (e abandonedError) Unwrap() error { return e.err }

// ContextError maps a finished context to Timeout or Canceled.
func ContextError(ctx context.Context, op string) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewError(domain.KindTimeout, op, err)
	}
	return domain.NewError(domain.KindCanceled, op, err)
}

// IsContextError reports whether err stems from a deadline or cancellation.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, domain.ErrTimeout) ||
		errors.Is(err, domain.ErrCanceled)
}
