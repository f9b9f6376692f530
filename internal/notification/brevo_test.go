package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"casillero-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDispatcher(t *testing.T, handler http.HandlerFunc, cfg config.BrevoConfig) *BrevoDispatcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	d := NewBrevoDispatcher(&cfg)
	d.url = server.URL
	return d
}

func TestSendPayload(t *testing.T) {
	var got brevoPayload
	var apiKey string

	d := testDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<msg-1>"}`))
	}, config.BrevoConfig{
		APIKey:      "xkeysib-test",
		SenderName:  "PorEncargo",
		SenderEmail: "logistica@porencargo.co",
		OpsMailbox:  "logistica@porencargo.co",
	})

	delivered, diagnostic := d.Send(context.Background(), "Hola", "laura@example.com", "<p>contenido</p>", true)
	assert.True(t, delivered)
	assert.Contains(t, diagnostic, "messageId")

	assert.Equal(t, "xkeysib-test", apiKey)
	assert.Equal(t, "PorEncargo", got.Sender.Name)
	assert.Equal(t, "logistica@porencargo.co", got.Sender.Email)
	assert.Equal(t, "Hola", got.Subject)
	assert.Equal(t, "<p>contenido</p>", got.HTMLContent)
	assert.Empty(t, got.TextContent)

	// Customer first, operational copy second
	require.Len(t, got.To, 2)
	assert.Equal(t, "laura@example.com", got.To[0].Email)
	assert.Equal(t, "logistica@porencargo.co", got.To[1].Email)
}

func TestSendDoesNotDuplicateOpsRecipient(t *testing.T) {
	var got brevoPayload

	d := testDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}, config.BrevoConfig{
		APIKey:      "xkeysib-test",
		SenderEmail: "logistica@porencargo.co",
		OpsMailbox:  "logistica@porencargo.co",
	})

	delivered, _ := d.Send(context.Background(), "Nueva prealerta", "logistica@porencargo.co", "texto", false)
	assert.True(t, delivered)

	require.Len(t, got.To, 1)
	assert.Equal(t, "texto", got.TextContent)
	assert.Empty(t, got.HTMLContent)
}

func TestSendRejectedByProvider(t *testing.T) {
	d := testDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized"}`))
	}, config.BrevoConfig{APIKey: "xkeysib-bad"})

	delivered, diagnostic := d.Send(context.Background(), "Hola", "laura@example.com", "texto", false)
	assert.False(t, delivered)
	assert.Contains(t, diagnostic, "unauthorized")
}

func TestSendWithoutAPIKey(t *testing.T) {
	called := false
	d := testDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, config.BrevoConfig{})

	delivered, diagnostic := d.Send(context.Background(), "Hola", "laura@example.com", "texto", false)
	assert.False(t, delivered)
	assert.Equal(t, "brevo api key not configured", diagnostic)
	assert.False(t, called, "no request may leave the process without a key")
}

func TestSendTransportError(t *testing.T) {
	d := NewBrevoDispatcher(&config.BrevoConfig{APIKey: "xkeysib-test"})
	d.url = "http://127.0.0.1:0"

	delivered, diagnostic := d.Send(context.Background(), "Hola", "laura@example.com", "texto", false)
	assert.False(t, delivered)
	assert.NotEmpty(t, diagnostic)
}
