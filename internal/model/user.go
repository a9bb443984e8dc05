package model

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RememberedUser is the blob kept in the local preferences store between launches.
type RememberedUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsLoggedIn bool   `json:"isLoggedIn"`
	Image      string `json:"image,omitempty"`
}
