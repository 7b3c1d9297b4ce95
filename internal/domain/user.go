package domain

import "time"

const (
	RoleAdmin    = "admin"
	RolePengurus = "pengurus"
	RoleAnggota  = "anggota"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	NIM       string    `json:"nim"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanManage reports whether the user holds a board-level role.
func (u User) CanManage() bool {
	return u.Role == RoleAdmin || u.Role == RolePengurus
}
