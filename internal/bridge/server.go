package bridge

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"forgeauth/internal/codec"
	"forgeauth/internal/domain"
	"forgeauth/internal/metrics"
	"forgeauth/internal/wallet/phantom"
)

// connectedReporter is implemented by providers that can report their
// connection without prompting.
type connectedReporter interface {
	Connected() (domain.PublicIdentity, bool)
}

// Server exposes one wallet provider.
type Server struct {
	wallet  domain.WalletProvider
	limiter *rate.Limiter
	log     *slog.Logger
	metrics *metrics.SessionMetrics
}

// Option configures a Server.
type Option func(*Server)

// WithLimiter throttles connect and sign requests.
func WithLimiter(l *rate.Limiter) Option { return func(s *Server) { s.limiter = l } }

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.log = l } }

// WithMetrics records prompt outcomes.
func WithMetrics(m *metrics.SessionMetrics) Option { return func(s *Server) { s.metrics = m } }

// New returns a bridge for w. Without WithLimiter, requests are not
// throttled.
func New(w domain.WalletProvider, opts ...Option) *Server {
	s := &Server{
		wallet:  w,
		limiter: rate.NewLimiter(rate.Inf, 0),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get(phantom.PathStatus, s.handleStatus)
	r.Post(phantom.PathConnect, s.handleConnect)
	r.Post(phantom.PathSignMessage, s.handleSignMessage)
	r.Post(phantom.PathDisconnect, s.handleDisconnect)
	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := phantom.StatusResponse{IsPhantom: s.wallet.IsAvailable(r.Context())}
	if cr, ok := s.wallet.(connectedReporter); ok {
		if id, connected := cr.Connected(); connected {
			st.IsConnected = true
			st.PublicKey = id.Base58()
		}
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		s.metrics.ObservePrompt("connect", "throttled")
		writeError(w, http.StatusTooManyRequests, phantom.CodeLimitExceeded, "too many requests")
		return
	}
	id, err := s.wallet.Connect(r.Context())
	if err != nil {
		s.fail(w, r, "connect", err)
		return
	}
	s.metrics.ObservePrompt("connect", "approved")
	s.log.InfoContext(r.Context(), "wallet connected", "identity", id.Base58())
	writeJSON(w, http.StatusOK, phantom.ConnectResponse{PublicKey: id.Base58()})
}

func (s *Server) handleSignMessage(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		s.metrics.ObservePrompt("sign", "throttled")
		writeError(w, http.StatusTooManyRequests, phantom.CodeLimitExceeded, "too many requests")
		return
	}
	var req phantom.SignMessageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, phantom.CodeInvalidParams, "invalid request body")
		return
	}
	if req.Display != "" && req.Display != phantom.DisplayUTF8 {
		writeError(w, http.StatusBadRequest, phantom.CodeInvalidParams, "unsupported display encoding")
		return
	}
	msg, err := codec.DecodeBase64(req.Message)
	if err != nil {
		writeError(w, http.StatusBadRequest, phantom.CodeInvalidParams, "message must be base64")
		return
	}

	sig, err := s.wallet.SignMessage(r.Context(), msg)
	if err != nil {
		s.fail(w, r, "sign", err)
		return
	}
	resp := phantom.SignMessageResponse{Signature: sig.Base64()}
	if cr, ok := s.wallet.(connectedReporter); ok {
		if id, connected := cr.Connected(); connected {
			resp.PublicKey = id.Base58()
		}
	}
	s.metrics.ObservePrompt("sign", "approved")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.wallet.Disconnect(r.Context()); err != nil {
		s.fail(w, r, "disconnect", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps a provider error to the bridge's status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, kind string, err error) {
	k := domain.KindOf(err)
	s.metrics.ObservePrompt(kind, k.String())
	s.log.WarnContext(r.Context(), "wallet request failed", "request", kind, "kind", k.String())

	switch k {
	case domain.KindConnectionDenied:
		if kind == "sign" {
			writeError(w, http.StatusUnauthorized, phantom.CodeUnauthorized, k.Message())
			return
		}
		writeError(w, http.StatusForbidden, phantom.CodeUserRejected, k.Message())
	case domain.KindSignatureDenied:
		writeError(w, http.StatusForbidden, phantom.CodeUserRejected, k.Message())
	case domain.KindWalletUnavailable:
		writeError(w, http.StatusServiceUnavailable, phantom.CodeDisconnected, k.Message())
	case domain.KindTimeout:
		writeError(w, http.StatusGatewayTimeout, phantom.CodeInternal, k.Message())
	case domain.KindCanceled:
		writeError(w, http.StatusRequestTimeout, phantom.CodeInternal, k.Message())
	default:
		var pe *phantom.ProviderError
		if errors.As(err, &pe) {
			writeError(w, http.StatusBadGateway, pe.Code, pe.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, phantom.CodeInternal, k.Message())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status, code int, msg string) {
	writeJSON(w, status, phantom.ErrorResponse{Error: phantom.ProviderError{Code: code, Message: msg}})
}
