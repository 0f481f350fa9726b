package domain

import "time"

// ContactStatus is the triage state of a contact message.
type ContactStatus string

const (
	ContactNew     ContactStatus = "New"
	ContactReplied ContactStatus = "Replied"
	ContactPending ContactStatus = "Pending"
	ContactClosed  ContactStatus = "Closed"
)

// Valid reports whether s is a known status.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactReplied, ContactPending, ContactClosed:
		return true
	}
	return false
}

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
