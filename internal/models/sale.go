package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment modes accepted at the front desk.
var PaymentModes = []string{"cash", "card", "check", "zelle", "venmo", "other"}

// ValidPaymentMode reports whether mode is accepted.
func ValidPaymentMode(mode string) bool {
	for _, m := range PaymentModes {
		if m == mode {
			return true
		}
	}
	return false
}

// Sale records a package purchase by a customer.
type Sale struct {
	ID          string          `db:"id" json:"id"`
	CustomerID  string          `db:"customer_id" json:"customer_id"`
	PackageID   string          `db:"package_id" json:"package_id"`
	AmountPaid  decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	PaymentMode string          `db:"payment_mode" json:"payment_mode"`
	StartDate   time.Time       `db:"start_date" json:"start_date"`
	EndDate     time.Time       `db:"end_date" json:"end_date"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
