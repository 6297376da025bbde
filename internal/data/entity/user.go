package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	Base
	Name         *string  `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsBlocked    bool     `db:"is_blocked"`
}
