package contact

import "github.com/aidanlogic/aidanlogic/internal/service"

// ContactRequest represents a contact form submission as posted by the site
type ContactRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	TurnstileToken string `json:"cf-turnstile-response"`
}

// ToSubmission converts the wire form into the service input
func (r *ContactRequest) ToSubmission(remoteIP string) service.ContactSubmission {
	return service.ContactSubmission{
		FullName: r.FullName,
		Email:    r.Email,
		Subject:  r.Subject,
		Message:  r.Message,
		Token:    r.TurnstileToken,
		RemoteIP: remoteIP,
	}
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
