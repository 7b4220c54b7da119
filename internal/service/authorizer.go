package service

import (
	"context"
	"strings"

	"ramp-gateway/internal/core/domain"
)

// AllowListAuthorizer implements ports.Authorizer from static grants.
// Admins hold every admin action. System principals hold only what they are granted.
// Any authenticated caller may create transactions.
type AllowListAuthorizer struct {
	grants map[string]map[domain.Action]bool
}

// NewAllowListAuthorizer builds the grant table. Subjects are compared case-insensitively.
func NewAllowListAuthorizer(admins []string, system map[string][]domain.Action) *AllowListAuthorizer {
	a := &AllowListAuthorizer{grants: make(map[string]map[domain.Action]bool)}
	for _, admin := range admins {
		a.grant(admin, domain.AdminActions...)
	}
	for principal, actions := range system {
		a.grant(principal, actions...)
	}
	return a
}

func (a *AllowListAuthorizer) grant(subject string, actions ...domain.Action) {
	key := normalizeSubject(subject)
	if key == "" {
		return
	}
	if a.grants[key] == nil {
		a.grants[key] = make(map[domain.Action]bool)
	}
	for _, action := range actions {
		a.grants[key][action] = true
	}
}

func (a *AllowListAuthorizer) IsAuthorized(_ context.Context, caller domain.Caller, action domain.Action) bool {
	key := normalizeSubject(caller.Subject)
	if key == "" {
		return false
	}
	if action == domain.ActionCreateTransaction {
		return true
	}
	return a.grants[key][action]
}

func normalizeSubject(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
