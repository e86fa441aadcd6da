package cmd

import (
	"log/slog"
	"strconv"
	"time"

	httpadapter "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/notify"
	"orderdesk/internal/adapters/out/postgres"
	"orderdesk/internal/adapters/out/postgres/auditrepo"
	"orderdesk/internal/adapters/out/postgres/orderrepo"
	"orderdesk/internal/adapters/out/postgres/paymentrepo"
	"orderdesk/internal/adapters/out/postgres/requestrepo"
	"orderdesk/internal/adapters/out/postgres/settingsrepo"
	"orderdesk/internal/adapters/out/postgres/walletrepo"
	"orderdesk/internal/adapters/out/postgres/webhookrepo"
	"orderdesk/internal/core/application/actions"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the application layer. It owns
// every long-lived component; handlers and jobs are created on demand from
// the shared pieces.
type CompositionRoot struct {
	configs Config
	gormDB  *gorm.DB
	logger  *slog.Logger

	uowFactory postgres.GormUnitOfWorkFactory
	settings   *settingsrepo.GormSettingsProvider
	deliveries *webhookrepo.GormWebhookDeliveryRepository
	notifier   *notify.WebhookNotifier
	dispatcher *actions.Dispatcher
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	settings := settingsrepo.NewGormSettingsProvider(gormDB)
	auditLogger := auditrepo.NewGormAuditLogger(gormDB)
	webhookSettings := webhookrepo.NewGormWebhookSettingsRepository(gormDB)
	deliveries := webhookrepo.NewGormWebhookDeliveryRepository(gormDB)

	notifier, err := notify.NewWebhookNotifier(webhookSettings, deliveries, logger)
	if err != nil {
		return nil, err
	}

	registry, err := actions.NewRegistry(actions.Dependencies{
		UoWFactory: uowFactory,
		Settings:   settings,
	})
	if err != nil {
		return nil, err
	}

	dispatcher, err := actions.NewDispatcher(registry, auditLogger, notifier, logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *uowFactory,
		settings:   settings,
		deliveries: deliveries,
		notifier:   notifier,
		dispatcher: dispatcher,
	}, nil
}

// Migrate creates or updates the database schema for every persisted type.
func (c *CompositionRoot) Migrate() error {
	return c.gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&walletrepo.WalletDTO{},
		&walletrepo.TransactionDTO{},
		&paymentrepo.PaymentDTO{},
		&paymentrepo.SplitDTO{},
		&requestrepo.WriterRequestDTO{},
		&requestrepo.ReassignmentRequestDTO{},
		&auditrepo.EntryDTO{},
		&settingsrepo.WebsiteSettingsDTO{},
		&settingsrepo.DiscountCodeDTO{},
		&webhookrepo.SettingsDTO{},
		&webhookrepo.DeliveryLogDTO{},
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.settings)
}

func (c *CompositionRoot) CreateSettlePaymentCommandHandler() commands.SettlePaymentCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSettlePaymentCommandHandler(f, c.settings)
}

func (c *CompositionRoot) CreateConfirmGatewayPaymentCommandHandler() commands.ConfirmGatewayPaymentCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmGatewayPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.dispatcher,
		c.CreateCreateOrderCommandHandler(),
		c.CreateSettlePaymentCommandHandler(),
		c.CreateConfirmGatewayPaymentCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.notifier,
		httpadapter.WebhookSecrets{
			Stripe: c.configs.StripeWebhookSecret,
			PayPal: c.configs.PayPalWebhookSecret,
		},
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		&c.uowFactory,
		c.dispatcher,
		c.deliveries,
		c.notifier,
		c.orderRetention(),
		c.logger,
	)
}

// Notifier exposes the webhook notifier so the entry point can drain
// in-flight deliveries on shutdown.
func (c *CompositionRoot) Notifier() *notify.WebhookNotifier {
	return c.notifier
}

func (c *CompositionRoot) orderRetention() time.Duration {
	days, err := strconv.Atoi(c.configs.OrderRetentionDays)
	if err != nil || days <= 0 {
		return 0
	}
	return time.Duration(days) * 24 * time.Hour
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}
