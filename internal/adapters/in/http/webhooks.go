package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	stripeSignatureHeader = "Stripe-Signature"
	paypalSignatureHeader = "PayPal-Signature"
)

type gatewayWebhookRequest struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Amount        string `json:"amount,omitempty"`
}

// GatewayWebhook handles POST /api/v1/webhooks/gateway: the generic
// payment confirmation callback, matched to a pending payment by the
// gateway's transaction id.
func (s *Server) GatewayWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, "unreadable request body")
	}

	return s.confirmFromBody(ctx, body)
}

// StripeWebhook handles POST /api/v1/webhooks/stripe. The payload HMAC
// must match the signature header; a mismatch is rejected immediately and
// never retried.
func (s *Server) StripeWebhook(ctx echo.Context) error {
	return s.signedWebhook(ctx, stripeSignatureHeader, s.secrets.Stripe)
}

// PayPalWebhook handles POST /api/v1/webhooks/paypal with the same
// signature scheme as the stripe variant.
func (s *Server) PayPalWebhook(ctx echo.Context) error {
	return s.signedWebhook(ctx, paypalSignatureHeader, s.secrets.PayPal)
}

func (s *Server) signedWebhook(ctx echo.Context, header, secret string) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, "unreadable request body")
	}

	if !verifySignature(body, ctx.Request().Header.Get(header), secret) {
		return badRequest(ctx, "signature mismatch")
	}

	return s.confirmFromBody(ctx, body)
}

func (s *Server) confirmFromBody(ctx echo.Context, body []byte) error {
	var req gatewayWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var succeeded bool
	switch req.Status {
	case "succeeded", "completed":
		succeeded = true
	case "failed", "cancelled":
		succeeded = false
	default:
		return badRequest(ctx, "unknown payment status")
	}

	var amount *kernel.Money
	if req.Amount != "" {
		m, err := kernel.NewMoneyFromString(req.Amount)
		if err != nil {
			return badRequest(ctx, "invalid amount")
		}
		amount = &m
	}

	cmd, err := commands.NewConfirmGatewayPaymentCommand(req.TransactionID, succeeded, amount)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.confirmGatewayHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"payment_id": p.ID().String(),
		"status":     p.Status().String(),
	})
}

// verifySignature checks the hex HMAC-SHA256 of the raw payload against
// the caller-supplied signature in constant time.
func verifySignature(payload []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
