package models

// Viewer is the identity a request acts as. The zero value is the anonymous viewer.
type Viewer struct {
	UserID   uint
	Username string
	Staff    bool
}

// Anonymous is the identity of a request without a valid session.
var Anonymous = Viewer{}

func (v Viewer) IsAuthenticated() bool {
	return v.UserID != 0
}

// Is reports whether the viewer is the user with the given id.
func (v Viewer) Is(userID uint) bool {
	return v.IsAuthenticated() && v.UserID == userID
}
