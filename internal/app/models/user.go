package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"` // NPM for students, NIP for staff
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      Role      `db:"role"`
	Password  string    `db:"password"` // bcrypt hash
	Avatar    *string   `db:"avatar"`
	CreatedAt time.Time `db:"created_at"`
}

// UserFilter narrows ListUsers
type UserFilter struct {
	Search string
	Role   Role // empty means all roles
	Limit  int
	Offset int
}

// UserCounts holds the per-role totals shown on the admin dashboard
type UserCounts struct {
	Students int
	Teachers int
	Admins   int
}

// AdminStats holds the counters of the admin dashboard
type AdminStats struct {
	Students    int
	Teachers    int
	Courses     int
	Submissions int
}
