package models

import "time"

// User represents a registered account in the system.
//
// Phone, Birthday, Profile and UsageReminder are persisted but not used by
// any handler yet; they exist for future extension of the portal.
type User struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"fullName"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // Never expose this to the client
	EducationLevel string    `json:"educationLevel"`
	Phone          string    `json:"phone,omitempty"`
	Birthday       string    `json:"birthday,omitempty"`
	Profile        string    `json:"profile,omitempty"`
	UsageReminder  string    `json:"usageReminder,omitempty"`
	Analytics      string    `json:"-"` // JSON document, decoded by the analytics page only
	CreatedAt      time.Time `json:"createdAt"`
}
