package phantom

// Provider error codes shared with injected browser wallets.
const (
	CodeUserRejected  = 4001
	CodeUnauthorized  = 4100
	CodeDisconnected  = 4900
	CodeLimitExceeded = -32005
	CodeInvalidParams = -32602
	CodeInternal      = -32603
)

// DisplayUTF8 marks a sign request whose bytes are UTF-8 text.
const DisplayUTF8 = "utf8"

// DefaultURL is where walletd listens unless configured otherwise.
const DefaultURL = "http://127.0.0.1:8787"

const (
	PathStatus      = "/v1/status"
	PathConnect     = "/v1/connect"
	PathSignMessage = "/v1/signMessage"
	PathDisconnect  = "/v1/disconnect"
)

type StatusResponse struct {
	IsPhantom   bool   `json:"isPhantom"`
	IsConnected bool   `json:"isConnected"`
	PublicKey   string `json:"publicKey,omitempty"`
}

type ConnectRequest struct {
	OnlyIfTrusted bool `json:"onlyIfTrusted,omitempty"`
}

type ConnectResponse struct {
	PublicKey string `json:"publicKey"`
}

type SignMessageRequest struct {
	Message string `json:"message"`
	Display string `json:"display"`
}

type SignMessageResponse struct {
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
}

// ProviderError is the error object of a failed request.
type ProviderError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string { return e.Message }

type ErrorResponse struct {
	Error ProviderError `json:"error"`
}
