package models

import "time"

// User is a chat identity known to the bot, registered on /start and kept
// for broadcast fan-out.
type User struct {
	ChatID    int64     `db:"chat_id" json:"chatId"`
	FirstName string    `db:"first_name" json:"firstName,omitempty"`
	LastName  string    `db:"last_name" json:"lastName,omitempty"`
	Username  string    `db:"username" json:"username,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}
