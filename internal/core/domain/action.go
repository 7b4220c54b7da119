package domain

// Action is a capability checked by the authorizer before a state-changing call.
type Action string

const (
	ActionCreateTransaction Action = "CREATE_TRANSACTION"
	ActionConfirmPayment    Action = "CONFIRM_PAYMENT"
	ActionConfirmDeposit    Action = "CONFIRM_DEPOSIT"
	ActionCompleteOffRamp   Action = "COMPLETE_OFF_RAMP"
	ActionRejectTransaction Action = "REJECT_TRANSACTION"
	ActionSettlePayout      Action = "SETTLE_PAYOUT"
	ActionUpdateLimits      Action = "UPDATE_LIMITS"
	ActionAcknowledgeAlert  Action = "ACKNOWLEDGE_ALERT"
	ActionRunMonitor        Action = "RUN_TREASURY_MONITOR"
	ActionViewReports       Action = "VIEW_REPORTS"

	// ActionAccessDenied is only recorded, never granted.
	ActionAccessDenied Action = "ACCESS_DENIED"
)

// AdminActions are held by every configured admin.
var AdminActions = []Action{
	ActionConfirmPayment,
	ActionConfirmDeposit,
	ActionCompleteOffRamp,
	ActionRejectTransaction,
	ActionSettlePayout,
	ActionUpdateLimits,
	ActionAcknowledgeAlert,
	ActionRunMonitor,
	ActionViewReports,
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	Subject string `json:"subject"` // wallet address, user id, or system principal
}

func (c Caller) IsZero() bool { return c.Subject == "" }
