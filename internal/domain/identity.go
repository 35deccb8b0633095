package domain

import "github.com/google/uuid"

// Identity is the decoded {id, role} attached to a request after successful
// token verification. It is the only caller information authorization
// decisions may rely on.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}
