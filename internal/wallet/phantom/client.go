package phantom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"forgeauth/internal/codec"
	"forgeauth/internal/domain"
	"forgeauth/internal/wallet"
)

// Client is a domain.WalletProvider backed by a Phantom-compatible bridge.
type Client struct {
	Base string
	HTTP *http.Client

	conn wallet.Conn
}

// New returns a client for the bridge at base. A nil httpClient uses
// http.DefaultClient.
func New(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: httpClient}
}

func (c *Client) Name() string { return "phantom" }

// IsAvailable fails closed: no base URL, an unreachable bridge or a
// non-Phantom status all report false.
func (c *Client) IsAvailable(ctx context.Context) bool {
	if c.Base == "" {
		return false
	}
	var st StatusResponse
	if err := c.do(ctx, http.MethodGet, PathStatus, nil, &st); err != nil {
		return false
	}
	return st.IsPhantom
}

// Connect prompts the bridge once and caches the identity. A cached
// identity is reused only while the bridge still reports it connected.
func (c *Client) Connect(ctx context.Context) (domain.PublicIdentity, error) {
	if id, ok := c.conn.Identity(); ok {
		var st StatusResponse
		if err := c.do(ctx, http.MethodGet, PathStatus, nil, &st); err != nil {
			return domain.PublicIdentity{}, mapError(ctx, "phantom.connect", domain.KindConnectionDenied, err)
		}
		if !st.IsConnected || st.PublicKey != id.Base58() {
			c.conn.Reset()
		}
	}
	return c.conn.Connect(ctx, c.dial)
}

func (c *Client) dial(ctx context.Context) (domain.PublicIdentity, error) {
	const op = "phantom.connect"

	var out ConnectResponse
	if err := c.do(ctx, http.MethodPost, PathConnect, ConnectRequest{}, &out); err != nil {
		return domain.PublicIdentity{}, mapError(ctx, op, domain.KindConnectionDenied, err)
	}
	id, err := codec.ParseIdentity(out.PublicKey)
	if err != nil {
		return domain.PublicIdentity{}, domain.NewError(domain.KindConnectionDenied, op, err)
	}
	return id, nil
}

// SignMessage sends msg base64-encoded; the bytes are passed through as is.
func (c *Client) SignMessage(ctx context.Context, msg []byte) (domain.Signature, error) {
	const op = "phantom.sign"

	req := SignMessageRequest{Message: codec.EncodeBase64(msg), Display: DisplayUTF8}
	var out SignMessageResponse
	if err := c.do(ctx, http.MethodPost, PathSignMessage, req, &out); err != nil {
		if lostConnection(err) {
			c.conn.Reset()
		}
		return domain.Signature{}, mapError(ctx, op, domain.KindSignatureDenied, err)
	}
	sig, err := codec.ParseSignature(out.Signature)
	if err != nil {
		return domain.Signature{}, domain.NewError(domain.KindSignatureInvalid, op, err)
	}
	return sig, nil
}

// Disconnect tells the bridge and drops the cached connection even if the
// bridge cannot be reached.
func (c *Client) Disconnect(ctx context.Context) error {
	c.conn.Reset()
	if c.Base == "" {
		return nil
	}
	if err := c.do(ctx, http.MethodPost, PathDisconnect, struct{}{}, nil); err != nil {
		return fmt.Errorf("phantom disconnect: %w", err)
	}
	return nil
}

// statusError is a non-2xx bridge response.
type statusError struct {
	Status   int
	Provider *ProviderError
}

func (e *statusError) Error() string {
	if e.Provider != nil && e.Provider.Message != "" {
		return fmt.Sprintf("bridge %d: %s (code %d)", e.Status, e.Provider.Message, e.Provider.Code)
	}
	return fmt.Sprintf("bridge %d: %s", e.Status, http.StatusText(e.Status))
}

// lostConnection reports whether the bridge no longer considers this client
// connected, e.g. after walletd restarted or another client disconnected.
func lostConnection(err error) bool {
	var se *statusError
	if !errors.As(err, &se) {
		return false
	}
	if se.Status == http.StatusUnauthorized {
		return true
	}
	return se.Provider != nil &&
		(se.Provider.Code == CodeUnauthorized || se.Provider.Code == CodeDisconnected)
}

// mapError turns a failed request into a domain error. denied is the kind
// used when the wallet refuses.
func mapError(ctx context.Context, op string, denied domain.ErrorKind, err error) error {
	if ctx.Err() != nil {
		return wallet.ContextError(ctx, op)
	}
	var se *statusError
	if errors.As(err, &se) {
		switch {
		case se.Status == http.StatusNotFound || se.Status == http.StatusServiceUnavailable:
			return domain.NewError(domain.KindWalletUnavailable, op, err)
		case se.Provider != nil && se.Provider.Code == CodeUnauthorized:
			return domain.NewError(domain.KindConnectionDenied, op, err)
		case se.Status == http.StatusGatewayTimeout:
			return domain.NewError(domain.KindTimeout, op, err)
		}
	}
	return domain.NewError(denied, op, err)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		se := &statusError{Status: resp.StatusCode}
		var er ErrorResponse
		if json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&er) == nil && er.Error.Code != 0 {
			se.Provider = &er.Error
		}
		return se
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

var _ domain.WalletProvider = (*Client)(nil)
