package wallet

import (
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// Kind classifies a ledger entry as money entering or leaving the wallet.
type Kind int

const (
	KindUnknown Kind = iota
	KindDebit
	KindCredit
)

func (k Kind) String() string {
	switch k {
	case KindDebit:
		return "debit"
	case KindCredit:
		return "credit"
	default:
		return "unknown"
	}
}

// KindFromString parses a ledger kind from its persisted name.
func KindFromString(s string) (Kind, error) {
	switch s {
	case "debit":
		return KindDebit, nil
	case "credit":
		return KindCredit, nil
	default:
		return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%q is not a valid transaction kind", s))
	}
}

// Transaction is one append-only entry in a wallet's ledger. Entries are
// created exclusively by the Wallet aggregate's balance mutations and are
// never updated or deleted.
type Transaction struct {
	id        kernel.UUID
	walletID  kernel.UUID
	amount    kernel.Money
	kind      Kind
	reference string
	createdAt time.Time
}

func newTransaction(walletID kernel.UUID, amount kernel.Money, kind Kind, reference string) (*Transaction, error) {
	if reference == "" {
		return nil, errs.NewValueIsRequiredError("reference")
	}

	return &Transaction{
		id:        kernel.NewUUID(),
		walletID:  walletID,
		amount:    amount,
		kind:      kind,
		reference: reference,
		createdAt: time.Now().UTC(),
	}, nil
}

// RestoreTransaction reconstructs a ledger entry from persistence.
func RestoreTransaction(
	id, walletID kernel.UUID,
	amount kernel.Money,
	kind Kind,
	reference string,
	createdAt time.Time,
) (*Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := walletID.Validate(); err != nil {
		return nil, err
	}

	return &Transaction{
		id:        id,
		walletID:  walletID,
		amount:    amount,
		kind:      kind,
		reference: reference,
		createdAt: createdAt,
	}, nil
}

func (t *Transaction) ID() kernel.UUID       { return t.id }
func (t *Transaction) WalletID() kernel.UUID { return t.walletID }
func (t *Transaction) Amount() kernel.Money  { return t.amount }
func (t *Transaction) Kind() Kind            { return t.kind }
func (t *Transaction) Reference() string     { return t.reference }
func (t *Transaction) CreatedAt() time.Time  { return t.createdAt }
