// Package gateway provides the HTTP client for the external payment providers.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"patisserie/config"
	"patisserie/internal/domain/entity"
	"patisserie/internal/domain/service"

	"github.com/pkg/errors"
)

const requestTimeout = 15 * time.Second

// endpoint is one provider's URL and bearer credential.
type endpoint struct {
	url string
	key string
}

// httpGateway implements the PaymentGateway interface against the
// operator REST endpoints. Each call is a single POST with a bearer
// key; a non-2xx reply carries the provider's failure message.
type httpGateway struct {
	client *http.Client
	orange endpoint
	mtn    endpoint
	card   endpoint
	logger *slog.Logger
}

// NewHTTPGateway is the constructor for httpGateway.
func NewHTTPGateway(cfg *config.Config, logger *slog.Logger) service.PaymentGateway {
	return &httpGateway{
		client: &http.Client{Timeout: requestTimeout},
		orange: endpoint{url: cfg.Gateways.Orange.URL, key: cfg.Gateways.Orange.Key},
		mtn:    endpoint{url: cfg.Gateways.MTN.URL, key: cfg.Gateways.MTN.Key},
		card:   endpoint{url: cfg.Gateways.Card.URL, key: cfg.Gateways.Card.Key},
		logger: logger,
	}
}

type mobileTransferRequest struct {
	PhoneNumber string  `json:"phoneNumber"`
	Amount      float64 `json:"amount"`
}

type mobileTransferResponse struct {
	Initiated bool   `json:"initiated"`
	Message   string `json:"message"`
}

type cardPaymentResponse struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message"`
}

// InitiateMobileTransfer asks the operator to initiate a transfer.
func (g *httpGateway) InitiateMobileTransfer(ctx context.Context, operator entity.Operator, phoneNumber string, amount float64) (bool, error) {
	var ep endpoint
	switch operator {
	case entity.OperatorOrange:
		ep = g.orange
	case entity.OperatorMTN:
		ep = g.mtn
	default:
		return false, errors.Errorf("unsupported operator: %s", operator)
	}

	payload := mobileTransferRequest{PhoneNumber: phoneNumber, Amount: amount}

	var result mobileTransferResponse
	if err := g.post(ctx, ep, payload, &result); err != nil {
		return false, err
	}

	return result.Initiated, nil
}

// ProcessCardPayment submits a card payment to the card gateway.
func (g *httpGateway) ProcessCardPayment(ctx context.Context, details service.CardDetails) (bool, error) {
	var result cardPaymentResponse
	if err := g.post(ctx, g.card, details, &result); err != nil {
		return false, err
	}

	return result.Approved, nil
}

// post sends one JSON request and decodes the reply. A non-2xx status
// surfaces the provider's message as the error.
func (g *httpGateway) post(ctx context.Context, ep endpoint, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode gateway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ep.key)

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "gateway request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read gateway response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := remoteMessage(raw)
		g.logger.Warn("Gateway rejected request",
			slog.Int("status", resp.StatusCode), slog.String("message", message))

		return errors.Errorf("gateway returned status %d: %s", resp.StatusCode, message)
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return errors.Wrap(err, "failed to decode gateway response")
	}

	return nil
}

// remoteMessage extracts the "message" field from a provider error body,
// falling back to the raw body.
func remoteMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}

	return string(raw)
}
