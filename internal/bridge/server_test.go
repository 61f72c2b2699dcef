package bridge_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"forgeauth/internal/bridge"
	"forgeauth/internal/crypto"
	"forgeauth/internal/domain"
	"forgeauth/internal/wallet/keyring"
	"forgeauth/internal/wallet/phantom"
)

func startBridge(t *testing.T, approve keyring.Approver, opts ...bridge.Option) (*keyring.Keyring, *phantom.Client) {
	t.Helper()
	seed, err := crypto.GenerateSeed()
	require.NoError(t, err)
	k := keyring.New(seed, approve)

	srv := httptest.NewServer(bridge.New(k, opts...).Routes())
	t.Cleanup(srv.Close)
	return k, phantom.New(srv.URL, srv.Client())
}

func TestPhantomClient_ConnectAndSign(t *testing.T) {
	k, c := startBridge(t, nil)
	ctx := context.Background()

	require.True(t, c.IsAvailable(ctx))

	id, err := c.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, k.Identity(), id)

	again, err := c.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.EqualValues(t, 1, k.ConnectPrompts(), "second connect must not prompt")

	msg := []byte("forge-session/v1\nnetwork: testnet")
	sig, err := c.SignMessage(ctx, msg)
	require.NoError(t, err)
	assert.True(t, crypto.Verify(id, msg, sig))
}

func TestPhantomClient_ConnectDenied(t *testing.T) {
	_, c := startBridge(t, keyring.Deny(keyring.PromptConnect))
	_, err := c.Connect(context.Background())
	require.ErrorIs(t, err, domain.ErrConnectionDenied)
}

func TestPhantomClient_SignDenied(t *testing.T) {
	_, c := startBridge(t, keyring.Deny(keyring.PromptSign))
	ctx := context.Background()
	_, err := c.Connect(ctx)
	require.NoError(t, err)

	_, err = c.SignMessage(ctx, []byte("x"))
	require.ErrorIs(t, err, domain.ErrSignatureDenied)
}

func TestPhantomClient_SignWithoutConnect(t *testing.T) {
	_, c := startBridge(t, nil)
	_, err := c.SignMessage(context.Background(), []byte("x"))
	require.ErrorIs(t, err, domain.ErrConnectionDenied)
}

func TestPhantomClient_Timeout(t *testing.T) {
	block := func(ctx context.Context, _ keyring.Prompt) error {
		<-ctx.Done()
		return ctx.Err()
	}
	_, c := startBridge(t, block)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := c.Connect(ctx)
	require.ErrorIs(t, err, domain.ErrTimeout)
}

func TestPhantomClient_Throttled(t *testing.T) {
	_, c := startBridge(t, nil, bridge.WithLimiter(rate.NewLimiter(rate.Every(time.Hour), 2)))
	ctx := context.Background()

	_, err := c.Connect(ctx)
	require.NoError(t, err)
	_, err = c.SignMessage(ctx, []byte("one"))
	require.NoError(t, err)

	_, err = c.SignMessage(ctx, []byte("two"))
	require.ErrorIs(t, err, domain.ErrSignatureDenied)
	assert.Contains(t, err.Error(), "too many requests")
}

func TestPhantomClient_Disconnect(t *testing.T) {
	k, c := startBridge(t, nil)
	ctx := context.Background()

	_, err := c.Connect(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Disconnect(ctx))
	_, ok := k.Connected()
	assert.False(t, ok)

	_, err = c.Connect(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, k.ConnectPrompts())
}

func TestPhantomClient_ReconnectsAfterBridgeForgets(t *testing.T) {
	k, c := startBridge(t, nil)
	ctx := context.Background()

	id, err := c.Connect(ctx)
	require.NoError(t, err)

	// walletd dropped the connection behind the client's back.
	require.NoError(t, k.Disconnect(ctx))

	again, err := c.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.EqualValues(t, 2, k.ConnectPrompts())

	msg := []byte("after reconnect")
	sig, err := c.SignMessage(ctx, msg)
	require.NoError(t, err)
	assert.True(t, crypto.Verify(id, msg, sig))
}

func TestPhantomClient_SignAfterBridgeForgetsResetsConnection(t *testing.T) {
	k, c := startBridge(t, nil)
	ctx := context.Background()

	_, err := c.Connect(ctx)
	require.NoError(t, err)
	require.NoError(t, k.Disconnect(ctx))

	_, err = c.SignMessage(ctx, []byte("stale"))
	require.ErrorIs(t, err, domain.ErrConnectionDenied)

	_, err = c.Connect(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, k.ConnectPrompts())
	_, err = c.SignMessage(ctx, []byte("fresh"))
	require.NoError(t, err)
}

func TestPhantomClient_Unavailable(t *testing.T) {
	ctx := context.Background()
	assert.False(t, phantom.New("", nil).IsAvailable(ctx))

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	assert.False(t, phantom.New(url, nil).IsAvailable(ctx))
}

func TestBridge_RejectsBadSignRequests(t *testing.T) {
	seed, err := crypto.GenerateSeed()
	require.NoError(t, err)
	srv := httptest.NewServer(bridge.New(keyring.New(seed, nil)).Routes())
	defer srv.Close()

	for _, body := range []string{
		`not json`,
		`{"message":"%%%","display":"utf8"}`,
		`{"message":"aGk=","display":"hex"}`,
	} {
		resp, err := http.Post(srv.URL+phantom.PathSignMessage, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestBridge_Status(t *testing.T) {
	k, c := startBridge(t, nil)
	_, err := c.Connect(context.Background())
	require.NoError(t, err)

	resp, err := http.Get(c.Base + phantom.PathStatus)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var st phantom.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.True(t, st.IsPhantom)
	assert.True(t, st.IsConnected)
	assert.Equal(t, k.Identity().Base58(), st.PublicKey)
}
