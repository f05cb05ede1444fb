// internal/domain/contact/entity.go
package contact

import "time"

// Submission is a message sent through the contact form
type Submission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Email     string    `gorm:"not null;size:255;index" json:"email"`
	Subject   string    `gorm:"size:255" json:"subject"`
	Message   string    `gorm:"not null;type:text" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name
func (Submission) TableName() string {
	return "contact_submissions"
}

// SubmitRequest represents contact form data
type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ListRequest pages through submissions, newest first
type ListRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// ListResponse is a page of submissions
type ListResponse struct {
	Submissions []Submission `json:"submissions"`
	Total       int64        `json:"total"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
}
