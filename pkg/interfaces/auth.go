package interfaces

import "github.com/google/uuid"

// User is the authenticated identity handed to user-scoped operations. A nil
// *User means "no authenticated user" and short-circuits every operation that
// needs one.
type User struct {
	ID    uuid.UUID
	Email string
}
