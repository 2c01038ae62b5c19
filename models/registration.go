package models

// Registration statuses. Transitions only move forward:
// pending_payment -> paid -> submitted.
const (
	StatusPendingPayment = "pending_payment"
	StatusPaid           = "paid"
	StatusSubmitted      = "submitted"
)

type Registration struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	EventType    string `json:"event_type"`
	ArtworkCount int    `json:"artwork_count"`
	Amount       int    `json:"amount"`
	ContestantID string `json:"contestant_id"`
	Status       string `json:"status"`
	OrderID      string `json:"order_id,omitempty"`
	PaymentID    string `json:"payment_id,omitempty"`
	Remarks      string `json:"remarks,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at,omitempty"`

	// Joined fields for the admin participants listing.
	ParticipantName  string `json:"participant_name,omitempty"`
	ParticipantEmail string `json:"participant_email,omitempty"`
	FilesUploaded    int    `json:"files_uploaded"`
}

type SubmissionFile struct {
	ID             int    `json:"id"`
	RegistrationID int    `json:"registration_id"`
	FileName       string `json:"file_name"`
	FileURL        string `json:"file_url"`
	SizeBytes      int64  `json:"size_bytes"`
	UploadedAt     string `json:"uploaded_at"`
}
