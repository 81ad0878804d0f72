package payment

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	applog "github.com/kridana/kridana-api/internal/platform/logging"
)

const (
	defaultCurrency = "INR"
	userAgent       = "kridana-api"
)

// Client implements Service against the gateway's transaction API. The
// request payload is encrypted with the merchant working key before it
// leaves the process; the gateway decrypts it on its side.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accessCode string
	workingKey []byte
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom gateway base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a gateway client. workingKey is the merchant secret
// used to encrypt request blobs; accessCode identifies the merchant to the
// hosted page.
func NewClient(httpClient *http.Client, baseURL, accessCode string, workingKey []byte, opts ...Option) (*Client, error) {
	if len(workingKey) != 16 && len(workingKey) != 24 && len(workingKey) != 32 {
		return nil, fmt.Errorf("working key must be a valid AES key length, got %d bytes", len(workingKey))
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		accessCode: accessCode,
		workingKey: workingKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// gatewayRegistration is the plaintext request blob, serialized and
// encrypted before transmission.
type gatewayRegistration struct {
	OrderID     string  `json:"order_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CustomerID  string  `json:"customer_id"`
	CallbackURL string  `json:"redirect_url"`
	CreatedAt   string  `json:"created_at"`
}

type gatewayResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// CreateCheckout encrypts the order fields, registers them with the
// gateway, and returns the redirect payload.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	blob, err := c.encryptRequest(gatewayRegistration{
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		Currency:    currency,
		CustomerID:  req.CustomerID,
		CallbackURL: req.CallbackURL,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("encrypt gateway request: %w", err)
	}

	form := url.Values{}
	form.Set("encRequest", blob)
	form.Set("access_code", c.accessCode)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/transaction/initTrans", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &GatewayError{cause: fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			applog.LogWarn(ctx, "failed to close gateway response body", zap.Error(cerr))
		}
	}()

	switch {
	case resp.StatusCode >= 500:
		return nil, &GatewayError{Status: resp.StatusCode, cause: ErrGatewayUnavailable}
	case resp.StatusCode >= 400:
		return nil, &GatewayError{Status: resp.StatusCode, cause: ErrRejected}
	}

	var gr gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, &GatewayError{Status: resp.StatusCode, cause: fmt.Errorf("decode gateway response: %w", err)}
	}

	return &Checkout{
		OrderID:          req.OrderID,
		Amount:           req.Amount,
		EncryptedRequest: blob,
		AccessCode:       c.accessCode,
		RedirectURL:      gr.RedirectURL,
	}, nil
}

// encryptRequest serializes and AES-GCM encrypts the registration, hex
// encoded with the nonce prefixed, matching what the gateway expects to
// decrypt with the shared working key.
func (c *Client) encryptRequest(reg gatewayRegistration) (string, error) {
	plaintext, err := json.Marshal(reg)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(c.workingKey)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(sealed), nil
}

// Compile-time interface check
var _ Service = (*Client)(nil)
