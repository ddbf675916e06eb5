package domain

import "time"

// Namespace separates ordinary accounts from operator accounts. An email
// belongs to at most one Identity across both namespaces.
type Namespace string

const (
	NamespaceUser  Namespace = "user"
	NamespaceAdmin Namespace = "admin"
)

// Namespaces lists every namespace in resolution order.
var Namespaces = []Namespace{NamespaceUser, NamespaceAdmin}

func (ns Namespace) Valid() bool {
	return ns == NamespaceUser || ns == NamespaceAdmin
}

type Identity struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string // argon2id PHC or legacy bcrypt
	Role         Role
	Namespace    Namespace
	CreatedAt    time.Time
}

// PublicIdentity is the projection of an Identity that may leave the service.
type PublicIdentity struct {
	ID        string
	FullName  string
	Email     string
	Role      Role
	CreatedAt time.Time
}

func (i Identity) Public() PublicIdentity {
	return PublicIdentity{
		ID:        i.ID,
		FullName:  i.FullName,
		Email:     i.Email,
		Role:      i.Role,
		CreatedAt: i.CreatedAt,
	}
}
