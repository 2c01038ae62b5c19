package models

type User struct {
	ID                 int    `json:"id"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Password           string `json:"password,omitempty"`
	ConfirmPassword    string `json:"confirm_password,omitempty"`
	FirstName          string `json:"first_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
	Address            string `json:"address,omitempty"`
	Age                int    `json:"age,omitempty"`
	PreviousExperience string `json:"previous_experience,omitempty"`
	Role               string `json:"role,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
}
