package service

import "portfoliopal/api/internal/models"

// AdminGate distinguishes the single configured privileged identity from
// everyone else.
type AdminGate struct {
	adminEmail string
}

// NewAdminGate takes the privileged email in normalized (lowercase) form.
func NewAdminGate(adminEmail string) AdminGate {
	return AdminGate{adminEmail: NormalizeEmail(adminEmail)}
}

// IsAdmin reports whether user is the configured admin identity.
func (g AdminGate) IsAdmin(user models.User) bool {
	return g.adminEmail != "" && NormalizeEmail(user.Email) == g.adminEmail
}
