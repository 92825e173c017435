package model

import "time"

// User represents an application user record as stored in the
// `users` array of the backing file. The json tags define the
// on-disk format; PasswordHash must never leave the server, so
// handlers respond with PublicUser instead.
//
// Fields:
//  ID           – unique identifier assigned at creation.
//  Name         – display name.
//  Email        – unique login key (case-sensitive).
//  PasswordHash – bcrypt digest of the password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the client-facing view of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
