package changelly

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	sharedConfig "github.com/jubbslineu/tokensale/internal/shared/config"
	apperrors "github.com/jubbslineu/tokensale/internal/shared/errors"
)

// FiatScheme signs requests for the fiat API. Requests carry an RSA-SHA256
// signature over the absolute URL concatenated with the body; callbacks
// carry the API key in X-Callback-Api-Key and a signature over the order ID
// in X-Callback-Signature.
type FiatScheme struct {
	baseURL           string
	apiKey            string
	privateKey        *rsa.PrivateKey
	callbackPublicKey *rsa.PublicKey
}

func NewFiatScheme(cfg sharedConfig.ChangellySchemeConfig) (*FiatScheme, error) {
	scheme := &FiatScheme{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}

	if cfg.PrivateKey != "" {
		key, err := parsePKCS1PrivateKey(cfg.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("fiat private key: %w", err)
		}
		scheme.privateKey = key
	}
	if cfg.CallbackPublicKey != "" {
		key, err := parsePKCS1PublicKey(cfg.CallbackPublicKey)
		if err != nil {
			return nil, fmt.Errorf("fiat callback public key: %w", err)
		}
		scheme.callbackPublicKey = key
	}
	return scheme, nil
}

var _ Scheme = (*FiatScheme)(nil)

func (s *FiatScheme) BaseURL() string         { return s.baseURL }
func (s *FiatScheme) APIKey() string          { return s.apiKey }
func (s *FiatScheme) SignatureHeader() string { return "X-Api-Signature" }

func (s *FiatScheme) Sign(_, path string, body []byte, _ int64) (string, error) {
	if s.privateKey == nil {
		return "", fmt.Errorf("fiat private key not configured")
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	payload := s.baseURL + strings.TrimRight(path, "/")
	if !emptyBody(body) {
		payload += string(body)
	}

	digest := sha256.Sum256([]byte(payload))
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	return base64.StdEncoding.EncodeToString(signature), nil
}

func (s *FiatScheme) VerifyCallback(header http.Header, body []byte) error {
	if s.callbackPublicKey == nil {
		return apperrors.NewInternalError("FIAT callback verification failed",
			"Callback public key not configured")
	}

	signatureHeader := header.Get("X-Callback-Signature")
	if signatureHeader == "" {
		return apperrors.NewBadRequestError("FIAT callback verification failed",
			"Signature missing", "X-Callback-Signature")
	}

	// The API key gate comes before any signature work.
	if header.Get("X-Callback-Api-Key") != s.apiKey {
		return apperrors.NewBadRequestError("FIAT callback verification failed",
			"Callback Api key mismatch", "X-Callback-Api-Key")
	}

	var callback struct {
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(body, &callback); err != nil {
		return apperrors.NewBadRequestError("Invalid Changelly signature",
			"Malformed callback body")
	}

	payload, err := json.Marshal(map[string]string{"orderId": callback.OrderID})
	if err != nil {
		return fmt.Errorf("failed to build signature payload: %w", err)
	}

	signature, err := base64.StdEncoding.DecodeString(signatureHeader)
	if err != nil {
		return apperrors.NewBadRequestError("Invalid Changelly signature",
			"Malformed X-Callback-Signature header")
	}

	digest := sha256.Sum256(payload)
	if err := rsa.VerifyPKCS1v15(s.callbackPublicKey, crypto.SHA256, digest[:], signature); err != nil {
		return apperrors.NewBadRequestError("Invalid Changelly signature",
			"Invalid header for FIAT", "X-Callback-Signature")
	}
	return nil
}
