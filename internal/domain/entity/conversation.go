package entity

import "time"

// Turn barista bilan bitta savol-javob
type Turn struct {
	ID        string
	UserID    int64
	Username  string
	Question  string
	Answer    string
	Timestamp time.Time
}

// Conversation foydalanuvchining oxirgi suhbatlari
type Conversation struct {
	UserID   int64
	Turns    []Turn
	LastUsed time.Time
}
