package models

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleGuest UserRole = "guest"
)

// Actor - тот, от чьего имени вызывается операция. Роль проверяется снаружи
// (JWT), ядро только читает ее.
type Actor struct {
	Role UserRole `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type Credentials struct {
	Password string `json:"password"`
}
