package wallet

import (
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrWalletIsNotConstructed is returned when a Wallet instance was not created
// through the NewWallet or RestoreWallet factory methods.
var ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet or RestoreWallet")

// Wallet holds one user's balance and loyalty points for one website.
// The balance is a derived value kept consistent with the append-only
// transaction ledger: every Debit or Credit returns the ledger entry that
// must be persisted in the same database transaction as the new balance.
//
// Wallet is the primary shared mutable resource in the system. Repositories
// load it with a row-level lock before any read-modify-write.
type Wallet struct {
	id        kernel.UUID
	userID    kernel.UUID
	websiteID kernel.UUID

	balance kernel.Money
	points  int

	isConstructed bool
}

// NewWallet creates an empty wallet for a user on a website.
func NewWallet(id, userID, websiteID kernel.UUID) (*Wallet, error) {
	w := &Wallet{
		balance:       kernel.ZeroMoney(),
		isConstructed: true,
	}

	if err := errors.Join(
		w.setID(id),
		w.setUserID(userID),
		w.setWebsiteID(websiteID),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWallet reconstructs a wallet from persistence.
func RestoreWallet(id, userID, websiteID kernel.UUID, balance kernel.Money, points int) (*Wallet, error) {
	w, err := NewWallet(id, userID, websiteID)
	if err != nil {
		return nil, err
	}
	if points < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("points",
			fmt.Errorf("%d is negative", points))
	}

	w.balance = balance
	w.points = points
	return w, nil
}

// Validate ensures the Wallet was properly constructed through a factory method.
func (w *Wallet) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWalletIsNotConstructed
	}
	return nil
}

func (w *Wallet) ID() kernel.UUID        { return w.id }
func (w *Wallet) UserID() kernel.UUID    { return w.userID }
func (w *Wallet) WebsiteID() kernel.UUID { return w.websiteID }
func (w *Wallet) Balance() kernel.Money  { return w.balance }
func (w *Wallet) Points() int            { return w.points }

// Debit withdraws the given amount and returns the ledger entry recording
// it. A debit exceeding the balance fails with an InsufficientFundsError
// and leaves the wallet untouched.
func (w *Wallet) Debit(amount kernel.Money, reference string) (*Transaction, error) {
	if amount.IsZero() {
		return nil, errs.NewValueIsRequiredError("amount")
	}
	if w.balance.LessThan(amount) {
		return nil, errs.NewInsufficientFundsError(
			w.id.String(), amount.String(), w.balance.String())
	}

	newBalance, err := w.balance.Sub(amount)
	if err != nil {
		return nil, err
	}

	w.balance = newBalance
	return newTransaction(w.id, amount, KindDebit, reference)
}

// Credit deposits the given amount and returns the ledger entry recording it.
func (w *Wallet) Credit(amount kernel.Money, reference string) (*Transaction, error) {
	if amount.IsZero() {
		return nil, errs.NewValueIsRequiredError("amount")
	}

	w.balance = w.balance.Add(amount)
	return newTransaction(w.id, amount, KindCredit, reference)
}

// RedeemPoints converts loyalty points into wallet credit at the given
// per-point rate, redeeming at most enough points to cover needed and
// never redeeming below the minimum-points threshold. Returns the credited
// amount together with its ledger entry; a zero amount with no entry means
// the wallet did not qualify.
func (w *Wallet) RedeemPoints(
	needed kernel.Money,
	ratePerPoint decimal.Decimal,
	minPoints int,
	reference string,
) (kernel.Money, *Transaction, error) {
	if w.points < minPoints || ratePerPoint.Sign() <= 0 || needed.IsZero() {
		return kernel.ZeroMoney(), nil, nil
	}

	// Whole points only; take the fewest points covering needed, capped at
	// the points available.
	pointsNeeded := int(needed.Decimal().Div(ratePerPoint).Ceil().IntPart())
	use := pointsNeeded
	if use > w.points {
		use = w.points
	}

	value, err := kernel.NewMoney(ratePerPoint.Mul(decimal.NewFromInt(int64(use))))
	if err != nil {
		return kernel.ZeroMoney(), nil, err
	}
	credited := value.Min(needed)

	w.points -= use
	tx, err := newTransaction(w.id, credited, KindCredit, reference)
	if err != nil {
		return kernel.ZeroMoney(), nil, err
	}
	w.balance = w.balance.Add(credited)
	return credited, tx, nil
}

func (w *Wallet) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Wallet) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.userID = id
	return nil
}

func (w *Wallet) setWebsiteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.websiteID = id
	return nil
}
