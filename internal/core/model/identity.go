package model

// Identity is the authenticated principal of a request, as established
// by a live session. It is handed to every mutating operation explicitly.
type Identity struct {
	UserID   UserID
	Username string
}

func (i Identity) IsZero() bool {
	return i.UserID == ""
}

func (i Identity) Owns(o WithOwner) bool {
	owner := o.Owner()
	if owner == nil || i.IsZero() {
		return false
	}

	return owner.ID() == i.UserID
}

func NewIdentity(u User) Identity {
	return Identity{
		UserID:   u.ID(),
		Username: u.Username(),
	}
}
