package entity

// Actor identidad de quien ejecuta una operación, tomada del token de sesión.
type Actor struct {
	UserID    string
	StartupID string // solo para rol STARTUP
	Role      string
}

// IsAdmin informa si el actor tiene rol ADMIN.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanAccessStartup informa si el actor puede ver datos de la startup indicada.
func (a Actor) CanAccessStartup(startupID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == RoleStartup && a.StartupID != "" && a.StartupID == startupID
}
