package middleware_test

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jubbslineu/tokensale/internal/infrastructure/gateway/changelly"
	"github.com/jubbslineu/tokensale/internal/interfaces/http/middleware"
	sharedConfig "github.com/jubbslineu/tokensale/internal/shared/config"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// signCryptoCallback produces the header the provider would send for a body.
func signCryptoCallback(t *testing.T, key *rsa.PrivateKey, body []byte, expiration int64) string {
	t.Helper()

	payload := fmt.Sprintf("%s:%d", body, expiration)
	digest := sha256.Sum256([]byte(payload))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	require.NoError(t, err)

	inner := base64.StdEncoding.EncodeToString(sig)
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%d", inner, expiration)))
}

func newCryptoSchemeWithKeys(t *testing.T) (changelly.Scheme, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	scheme, err := changelly.NewCryptoScheme(sharedConfig.ChangellySchemeConfig{
		BaseURL:           "https://api.pay.changelly.com",
		APIKey:            "api-key",
		CallbackPublicKey: base64.StdEncoding.EncodeToString(pub),
	})
	require.NoError(t, err)
	return scheme, key
}

func newCallbackEngine(scheme changelly.Scheme) *gin.Engine {
	engine := gin.New()
	engine.POST("/callback",
		middleware.VerifyCallbackSignature(scheme, logger.NewLogger()),
		func(c *gin.Context) {
			var body map[string]any
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"order_id": body["order_id"]})
		})
	return engine
}

func TestVerifyCallbackSignature_ValidSignature(t *testing.T) {
	scheme, key := newCryptoSchemeWithKeys(t)
	engine := newCallbackEngine(scheme)

	body := []byte(`{"order_id":"abc","state":"COMPLETED"}`)
	req := httptest.NewRequest(http.MethodPost, "/callback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", signCryptoCallback(t, key, body, 1700000000))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// body must survive the middleware read so the handler can bind it
	assert.Contains(t, rec.Body.String(), `"order_id":"abc"`)
}

func TestVerifyCallbackSignature_TamperedBody(t *testing.T) {
	scheme, key := newCryptoSchemeWithKeys(t)
	engine := newCallbackEngine(scheme)

	signed := []byte(`{"order_id":"abc","state":"COMPLETED"}`)
	sent := []byte(`{"order_id":"abc","state":"FAILED"}`)

	req := httptest.NewRequest(http.MethodPost, "/callback", bytes.NewReader(sent))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", signCryptoCallback(t, key, signed, 1700000000))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyCallbackSignature_MissingHeader(t *testing.T) {
	scheme, _ := newCryptoSchemeWithKeys(t)
	engine := newCallbackEngine(scheme)

	req := httptest.NewRequest(http.MethodPost, "/callback", bytes.NewReader([]byte(`{"order_id":"abc"}`)))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
