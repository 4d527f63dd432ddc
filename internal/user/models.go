package user

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`

	Followers int `json:"followers"`
	Following int `json:"following"`
	Posts     int `json:"posts"`
}
