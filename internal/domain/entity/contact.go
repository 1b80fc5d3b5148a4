package entity

import "time"

// ContactMessage aloqa formasi orqali kelgan xabar
type ContactMessage struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sentAt,omitempty"`
}
