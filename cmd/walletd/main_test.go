package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"forgeauth/internal/crypto"
	"forgeauth/internal/wallet/keyring"
	"forgeauth/internal/wallet/phantom"
)

// promptWatcher reports each prompt the approver prints.
type promptWatcher struct{ shown chan string }

func (w promptWatcher) Write(b []byte) (int, error) {
	if bytes.Contains(b, []byte("Approve?")) {
		w.shown <- string(b)
	}
	return len(b), nil
}

func newWatchedApprover(t *testing.T) (*terminalApprover, promptWatcher, *io.PipeWriter) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	w := promptWatcher{shown: make(chan string, 8)}
	return newTerminalApprover(pr, w), w, pw
}

// answer shows p and types reply once the prompt is on screen.
func answer(t *testing.T, a *terminalApprover, w promptWatcher, pw *io.PipeWriter, p keyring.Prompt, reply string) (string, error) {
	t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- a.Approve(context.Background(), p) }()
	shown := <-w.shown
	_, err := io.WriteString(pw, reply+"\n")
	require.NoError(t, err)
	return shown, <-errCh
}

func TestTerminalApprover(t *testing.T) {
	a, w, pw := newWatchedApprover(t)

	_, err := answer(t, a, w, pw, keyring.Prompt{Kind: keyring.PromptConnect}, "y")
	require.NoError(t, err)

	shown, err := answer(t, a, w, pw, keyring.Prompt{Kind: keyring.PromptSign, Message: []byte("hello\x1b[2J")}, "no")
	require.ErrorIs(t, err, keyring.ErrRejected)
	assert.Contains(t, shown, "hello?[2J")

	require.NoError(t, pw.Close())
	err = a.Approve(context.Background(), keyring.Prompt{Kind: keyring.PromptConnect})
	require.ErrorIs(t, err, keyring.ErrRejected, "closed input rejects")
}

func TestTerminalApprover_LateAnswerDoesNotApproveNextPrompt(t *testing.T) {
	a, w, pw := newWatchedApprover(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := a.Approve(ctx, keyring.Prompt{Kind: keyring.PromptSign, Message: []byte("first")})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	<-w.shown

	// The user answers the withdrawn prompt after it is gone.
	_, err = io.WriteString(pw, "y\n")
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	ctx2, cancel2 := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel2()
	err = a.Approve(ctx2, keyring.Prompt{Kind: keyring.PromptSign, Message: []byte("second")})
	require.ErrorIs(t, err, context.DeadlineExceeded, "stale input must not approve a later prompt")
	<-w.shown

	_, err = answer(t, a, w, pw, keyring.Prompt{Kind: keyring.PromptSign, Message: []byte("third")}, "y")
	require.NoError(t, err)
}

func TestServer_BridgeAndMetrics(t *testing.T) {
	seed, err := crypto.GenerateSeed()
	require.NoError(t, err)
	k := keyring.New(seed, nil)
	srv := newServer("", k, rate.NewLimiter(rate.Inf, 0), slog.New(slog.NewTextHandler(io.Discard, nil)))

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	c := phantom.New(ts.URL, ts.Client())
	id, err := c.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, k.Identity(), id)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "forge_wallet_bridge_prompts_total")
}
