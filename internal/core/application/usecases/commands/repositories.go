// Package commands contains business operations that modify system state
// outside the action dispatch flow: order intake, payment settlement and
// inbound gateway confirmations. All commands follow a consistent pattern:
// validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderdesk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// WalletRepoFactory provides the wallet repository within a transaction.
	WalletRepoFactory interface {
		WalletRepository() ports.WalletRepository
	}

	// PaymentRepoFactory provides the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SettlementUoW manages transactions spanning the order, the payer's
	// wallet and the payment attempt. Used by settlement and gateway
	// confirmation, which must commit or roll back all three together.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		WalletRepoFactory
		PaymentRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}
)
