package entity

import "time"

// User is an account identity. Username doubles as the login identifier
// and the display identity on articles. Password holds a bcrypt hash.
type User struct {
	ID        int64
	Username  string
	Password  string
	CreatedAt time.Time
}
