package models

// Review moderation statuses.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

type Review struct {
	ID           int    `json:"id"`
	ReviewerName string `json:"reviewer_name"`
	ReviewerRole string `json:"reviewer_role,omitempty"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}
