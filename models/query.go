package models

// Query is a contact-form submission handled by the admin back-office.
type Query struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Status    string `json:"status"` // open or resolved
	CreatedAt string `json:"created_at"`
}
