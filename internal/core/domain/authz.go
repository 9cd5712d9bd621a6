package domain

// Principal is the authenticated caller as resolved from the request
// credentials. A zero Principal represents an unauthenticated caller.
type Principal struct {
	ID   string
	Role string
}

// Authenticated reports whether the principal was resolved from a credential.
func (p Principal) Authenticated() bool {
	return p.ID != ""
}

// IsAdmin reports whether the principal may use the administrative surface.
func (p Principal) IsAdmin() bool {
	return p.Authenticated() && p.Role == RoleAdmin
}

// CanModify reports whether the principal may update or delete the property.
// True for the owner and for administrators; always false when
// unauthenticated.
func (p Principal) CanModify(property *Property) bool {
	if !p.Authenticated() {
		return false
	}
	return p.ID == property.OwnerID || p.IsAdmin()
}
