package http_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/core/application/actions"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const stripeSecret = "whsec_test"

type serverFixture struct {
	e           *echo.Echo
	uowFactory  *MockUoWFactory
	settlement  *MockSettlementUoWFactory
	audit       *MockAuditLogger
	notifier    *MockNotifier
	redeliverer *MockRedeliverer
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	uowFactory := new(MockUoWFactory)
	settings := new(MockSettingsProvider)

	registry, err := actions.NewRegistry(actions.Dependencies{
		UoWFactory: uowFactory,
		Settings:   settings,
	})
	require.NoError(t, err)

	auditLogger := new(MockAuditLogger)
	notifier := new(MockNotifier)
	dispatcher, err := actions.NewDispatcher(registry, auditLogger, notifier, slog.Default())
	require.NoError(t, err)

	settlement := new(MockSettlementUoWFactory)
	redeliverer := new(MockRedeliverer)

	server := httpadapter.NewServer(
		dispatcher,
		commands.NewCreateOrderCommandHandler(nil, settings),
		commands.NewSettlePaymentCommandHandler(settlement, settings),
		commands.NewConfirmGatewayPaymentCommandHandler(settlement),
		queries.GetActiveOrdersQueryHandler{},
		redeliverer,
		httpadapter.WebhookSecrets{Stripe: stripeSecret, PayPal: "paypal_test"},
	)

	e := echo.New()
	server.RegisterRoutes(e)

	return &serverFixture{
		e:           e,
		uowFactory:  uowFactory,
		settlement:  settlement,
		audit:       auditLogger,
		notifier:    notifier,
		redeliverer: redeliverer,
	}
}

func (f *serverFixture) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		encoded, _ := json.Marshal(b)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func restoreAvailableOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Essay on distributed consensus", 5, 0,
		order.StatusAvailable,
		nil, nil,
		kernel.MustMoney("50.00"), kernel.MustMoney("75.00"), kernel.MustMoney("30.00"),
		time.Now().UTC().Add(48*time.Hour),
		nil,
		false, false, false, false,
		nil,
	)
	require.NoError(t, err)
	return o
}

func TestServer_ExecuteAction(t *testing.T) {
	t.Run("assigns_available_order", func(t *testing.T) {
		f := newServerFixture(t)
		o := restoreAvailableOrder(t)

		orders := new(MockOrderRepository)
		orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
		orders.On("Update", mock.Anything, o).Return(nil).Once()

		uow := new(MockUoW)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("OrderRepository").Return(orders).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		f.uowFactory.On("Create").Return(uow).Once()

		f.audit.On("Log", mock.Anything, mock.Anything).Return(nil).Once()
		f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Once()

		rec := f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/actions", map[string]any{
			"action": "assign_order",
			"actor":  map[string]string{"id": kernel.NewUUID().String(), "name": "Sarah Admin", "role": "admin"},
			"params": map[string]any{"writer_id": kernel.NewUUID().String()},
		}, nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "available", resp["previous_status"])
		assert.Equal(t, "assigned", resp["new_status"])
	})

	t.Run("unknown_action_is_rejected", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/actions", map[string]any{
			"action": "launch_rocket",
			"actor":  map[string]string{"id": kernel.NewUUID().String(), "name": "Sarah Admin", "role": "admin"},
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.uowFactory.AssertNotCalled(t, "Create")
	})

	t.Run("denied_transition_maps_to_bad_request", func(t *testing.T) {
		f := newServerFixture(t)
		o := restoreAvailableOrder(t)

		orders := new(MockOrderRepository)
		orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()

		uow := new(MockUoW)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("OrderRepository").Return(orders).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		f.uowFactory.On("Create").Return(uow).Once()

		rec := f.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/actions", map[string]any{
			"action": "approve_order",
			"actor":  map[string]string{"id": kernel.NewUUID().String(), "name": "Client", "role": "client"},
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.audit.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
	})
}

func TestServer_ListActions(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/actions", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["actions"], "assign_order")
	assert.Contains(t, resp["actions"], "resolve_dispute")
	assert.Equal(t, order.AllActionNames(), resp["actions"])
}

func restorePendingGatewayPayment(t *testing.T, externalID string) (*payment.Payment, *order.Order) {
	t.Helper()

	orderID := kernel.NewUUID()
	websiteID := kernel.NewUUID()

	o, err := order.RestoreOrder(
		orderID, websiteID, kernel.NewUUID(),
		"Essay on distributed consensus", 5, 0,
		order.StatusCreated,
		nil, nil,
		kernel.MustMoney("100.00"), kernel.MustMoney("150.00"), kernel.MustMoney("60.00"),
		time.Now().UTC().Add(48*time.Hour),
		nil,
		false, false, false, false,
		nil,
	)
	require.NoError(t, err)

	p, err := payment.NewPayment(kernel.NewUUID(), orderID, websiteID,
		kernel.MustMoney("150.00"), kernel.MustMoney("150.00"), nil)
	require.NoError(t, err)
	require.NoError(t, p.AddSplit(payment.MethodWallet, kernel.MustMoney("100.00")))
	require.NoError(t, p.RouteToGateway("stripe", externalID))

	return p, o
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestServer_StripeWebhook(t *testing.T) {
	externalID := "pi_" + kernel.NewUUID().String()
	body := []byte(fmt.Sprintf(`{"transaction_id":%q,"status":"succeeded","amount":"150.00"}`, externalID))

	t.Run("signature_mismatch_is_rejected_immediately", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/webhooks/stripe", body, map[string]string{
			"Stripe-Signature": "deadbeef",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.settlement.AssertNotCalled(t, "Create")
	})

	t.Run("missing_signature_is_rejected", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/webhooks/stripe", body, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.settlement.AssertNotCalled(t, "Create")
	})

	t.Run("valid_signature_confirms_payment", func(t *testing.T) {
		f := newServerFixture(t)
		p, o := restorePendingGatewayPayment(t, externalID)

		payments := new(MockPaymentRepository)
		payments.On("GetByExternalID", mock.Anything, externalID).Return(p, nil).Once()
		payments.On("Update", mock.Anything, p).Return(nil).Once()

		orders := new(MockOrderRepository)
		orders.On("GetForUpdate", mock.Anything, p.OrderID()).Return(o, nil).Once()
		orders.On("Update", mock.Anything, o).Return(nil).Once()

		uow := new(MockSettlementUoW)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("PaymentRepository").Return(payments).Once()
		uow.On("OrderRepository").Return(orders).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		f.settlement.On("Create").Return(uow).Once()

		rec := f.do(http.MethodPost, "/api/v1/webhooks/stripe", body, map[string]string{
			"Stripe-Signature": signBody(body, stripeSecret),
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, payment.StatusCompleted, p.Status())
		assert.Equal(t, order.StatusPending, o.Status())
	})
}

func TestServer_RedeliverWebhook(t *testing.T) {
	f := newServerFixture(t)
	logID := kernel.NewUUID()

	f.redeliverer.On("Redeliver", mock.Anything, logID).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/webhooks/deliveries/"+logID.String()+"/redeliver", nil, nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	f.redeliverer.AssertExpectations(t)
}

func TestServer_Health(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
