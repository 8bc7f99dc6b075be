package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"patisserie/config"
	"patisserie/internal/domain/entity"
	"patisserie/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGateway(orangeURL, mtnURL, cardURL string) service.PaymentGateway {
	cfg := &config.Config{}
	cfg.Gateways = config.GatewaysConfig{
		Orange: config.GatewayEndpoint{URL: orangeURL, Key: "orange-key"},
		MTN:    config.GatewayEndpoint{URL: mtnURL, Key: "mtn-key"},
		Card:   config.GatewayEndpoint{URL: cardURL, Key: "card-key"},
	}

	return NewHTTPGateway(cfg, newDiscardLogger())
}

func TestHTTPGateway_InitiateMobileTransfer(t *testing.T) {
	t.Parallel()

	t.Run("returns the provider's initiated flag", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		var gotBody mobileTransferRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_ = json.NewEncoder(w).Encode(map[string]any{"initiated": true, "message": "ok"})
		}))
		defer server.Close()

		g := newTestGateway(server.URL, "", "")

		initiated, err := g.InitiateMobileTransfer(context.Background(), entity.OperatorOrange, "+237699000001", 12500)

		require.NoError(t, err)
		assert.True(t, initiated)
		assert.Equal(t, "Bearer orange-key", gotAuth)
		assert.Equal(t, "+237699000001", gotBody.PhoneNumber)
		assert.InDelta(t, 12500, gotBody.Amount, 0.001)
	})

	t.Run("initiated false is not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"initiated": false})
		}))
		defer server.Close()

		g := newTestGateway("", server.URL, "")

		initiated, err := g.InitiateMobileTransfer(context.Background(), entity.OperatorMTN, "+237670000002", 3000)

		require.NoError(t, err)
		assert.False(t, initiated)
	})

	t.Run("non-2xx surfaces the provider message", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "solde insuffisant"})
		}))
		defer server.Close()

		g := newTestGateway(server.URL, "", "")

		initiated, err := g.InitiateMobileTransfer(context.Background(), entity.OperatorOrange, "+237699000001", 99999)

		require.Error(t, err)
		assert.False(t, initiated)
		assert.Contains(t, err.Error(), "gateway returned status 402")
		assert.Contains(t, err.Error(), "solde insuffisant")
	})

	t.Run("unsupported operator never reaches the network", func(t *testing.T) {
		t.Parallel()

		g := newTestGateway("", "", "")

		initiated, err := g.InitiateMobileTransfer(context.Background(), entity.Operator("VODAFONE"), "+237699000001", 100)

		require.Error(t, err)
		assert.False(t, initiated)
		assert.Contains(t, err.Error(), "unsupported operator")
	})
}

func TestHTTPGateway_ProcessCardPayment(t *testing.T) {
	t.Parallel()

	t.Run("returns the gateway's approved flag", func(t *testing.T) {
		t.Parallel()

		var gotBody service.CardDetails
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_ = json.NewEncoder(w).Encode(map[string]any{"approved": true})
		}))
		defer server.Close()

		g := newTestGateway("", "", server.URL)

		approved, err := g.ProcessCardPayment(context.Background(), service.CardDetails{
			CardNumber:  "4111111111111111",
			ExpiryMonth: 12,
			ExpiryYear:  2027,
			CVV:         "123",
			HolderName:  "Claire Dupont",
			Amount:      8000,
		})

		require.NoError(t, err)
		assert.True(t, approved)
		assert.Equal(t, "4111111111111111", gotBody.CardNumber)
	})

	t.Run("malformed reply body is an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not-json"))
		}))
		defer server.Close()

		g := newTestGateway("", "", server.URL)

		approved, err := g.ProcessCardPayment(context.Background(), service.CardDetails{Amount: 8000})

		require.Error(t, err)
		assert.False(t, approved)
	})
}
