package entity

import "time"

// EditorSession menyu muharriri sessiyasi
type EditorSession struct {
	UserID       int64
	LoginTime    time.Time
	LastActivity time.Time
}

// EditorAction muharrir harakatlari
type EditorAction struct {
	ID        string
	UserID    int64
	Action    string // "login", "logout", "add_item"
	Details   string
	Timestamp time.Time
}
