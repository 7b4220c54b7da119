package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertType is the kind of condition a treasury alert reports.
type AlertType string

const (
	AlertTypeLowBalance            AlertType = "LOW_BALANCE"
	AlertTypeHighBalance           AlertType = "HIGH_BALANCE"
	AlertTypeFailedTransactionRate AlertType = "FAILED_TRANSACTION_RATE"
	AlertTypeSystemError           AlertType = "SYSTEM_ERROR"
)

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// AlertCurrencyAll marks alerts that are not tied to a single currency.
const AlertCurrencyAll = "ALL"

// TreasuryAlert is a detected threshold breach. Only Acknowledge mutates it.
type TreasuryAlert struct {
	ID             uuid.UUID       `json:"id"`
	Type           AlertType       `json:"type"`
	Severity       AlertSeverity   `json:"severity"`
	Currency       string          `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`
	Threshold      decimal.Decimal `json:"threshold"`
	Message        string          `json:"message"`
	Acknowledged   bool            `json:"acknowledged"`
	AcknowledgedBy *string         `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time      `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AlertKey identifies alerts that must not be duplicated while unacknowledged.
type AlertKey struct {
	Type     AlertType
	Currency string
	Severity AlertSeverity
}

func (a *TreasuryAlert) Key() AlertKey {
	return AlertKey{Type: a.Type, Currency: a.Currency, Severity: a.Severity}
}

// Thresholds is one currency's three-tier table.
type Thresholds struct {
	Critical decimal.Decimal `json:"critical"`
	Low      decimal.Decimal `json:"low"`
	High     decimal.Decimal `json:"high"`
}

// Validate enforces 0 <= critical <= low < high.
func (t Thresholds) Validate() error {
	if t.Critical.IsNegative() || t.Low.LessThan(t.Critical) || !t.High.GreaterThan(t.Low) {
		return fmt.Errorf("thresholds must satisfy 0 <= critical(%s) <= low(%s) < high(%s)", t.Critical, t.Low, t.High)
	}
	return nil
}

// BalanceBreach is what a balance looks like against a threshold table.
type BalanceBreach struct {
	Type      AlertType
	Severity  AlertSeverity
	Threshold decimal.Decimal
}

// Classify compares balance against the table. ok is false when the balance is in the healthy band.
func (t Thresholds) Classify(balance decimal.Decimal) (BalanceBreach, bool) {
	switch {
	case balance.LessThan(t.Critical):
		return BalanceBreach{Type: AlertTypeLowBalance, Severity: SeverityCritical, Threshold: t.Critical}, true
	case balance.LessThan(t.Low):
		return BalanceBreach{Type: AlertTypeLowBalance, Severity: SeverityHigh, Threshold: t.Low}, true
	case balance.GreaterThan(t.High):
		return BalanceBreach{Type: AlertTypeHighBalance, Severity: SeverityLow, Threshold: t.High}, true
	}
	return BalanceBreach{}, false
}

// Acknowledge marks the alert as handled. It returns false if it already was.
func (a *TreasuryAlert) Acknowledge(by string, at time.Time) bool {
	if a.Acknowledged {
		return false
	}
	a.Acknowledged = true
	a.AcknowledgedBy = &by
	a.AcknowledgedAt = &at
	return true
}

// TreasuryBalance is the ledger balance of one currency.
type TreasuryBalance struct {
	Currency  string          `json:"currency"`
	Available decimal.Decimal `json:"available"`
	UpdatedAt time.Time       `json:"updated_at"`
}
