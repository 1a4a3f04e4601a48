package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	PasswordSalt []byte    `db:"password_salt" json:"-"`
	IsStaff      bool      `db:"is_staff" json:"is_staff"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Profile carries the editable user page. The admin flag the client trusts
// comes from the embedded user's is_staff, never from profile fields.
type Profile struct {
	UserID    uuid.UUID `db:"user_id" json:"-"`
	AvatarURL *string   `db:"avatar_url" json:"avatar,omitempty"`
	Bio       string    `db:"bio" json:"bio"`
	Country   string    `db:"country" json:"country"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

type Favorite struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	AttractionID uuid.UUID `db:"attraction_id" json:"attraction_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
