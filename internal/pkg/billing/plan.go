package billing

// Plan display names as they appear in the payment reference.
const (
	PlanBasic      = "Plano Básico"
	PlanPro        = "Plano Pro"
	PlanBotPremium = "Bot Premium"
)

// PlanRoles maps a plan display name to the Discord role it grants.
type PlanRoles map[string]string

// DefaultPlanRoles is the mapping compiled into the binary.
func DefaultPlanRoles() PlanRoles {
	return PlanRoles{
		PlanBasic:      "1384768443005407433",
		PlanPro:        "1402775297442713670",
		PlanBotPremium: "1384768441424019556",
	}
}

// RoleFor returns the role id for a plan. Lookup is exact.
func (p PlanRoles) RoleFor(plan string) (string, bool) {
	role, ok := p[plan]
	return role, ok && role != ""
}
