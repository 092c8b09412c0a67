package leads

import "strings"

// Submission is a lead posted by the contact form. It is never stored.
type Submission struct {
	BusinessName string `json:"businessName"`
	YourName     string `json:"yourName"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	WebsiteURL   string `json:"websiteUrl,omitempty"`
}

// Normalize returns a copy with surrounding whitespace removed from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		BusinessName: strings.TrimSpace(s.BusinessName),
		YourName:     strings.TrimSpace(s.YourName),
		PhoneNumber:  strings.TrimSpace(s.PhoneNumber),
		Email:        strings.TrimSpace(s.Email),
		WebsiteURL:   strings.TrimSpace(s.WebsiteURL),
	}
}

// Validate runs the presence, email and phone checks in that order and
// stops at the first failure.
func (s Submission) Validate() error {
	if missing := s.MissingFields(); len(missing) > 0 {
		return &ValidationError{Reason: ReasonMissingFields, Missing: missing}
	}
	if !ValidEmail(s.Email) {
		return &ValidationError{Reason: ReasonBadEmailFormat}
	}
	if !ValidPhone(s.PhoneNumber) {
		return &ValidationError{Reason: ReasonBadPhoneFormat}
	}
	return nil
}

// MissingFields returns the required keys whose values are blank.
func (s Submission) MissingFields() []string {
	var missing []string
	for _, field := range RequiredFields() {
		if strings.TrimSpace(s.value(field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// HasWebsite reports whether the optional website was provided.
func (s Submission) HasWebsite() bool {
	return strings.TrimSpace(s.WebsiteURL) != ""
}

func (s Submission) value(field string) string {
	switch field {
	case FieldBusinessName:
		return s.BusinessName
	case FieldYourName:
		return s.YourName
	case FieldPhoneNumber:
		return s.PhoneNumber
	case FieldEmail:
		return s.Email
	case FieldWebsiteURL:
		return s.WebsiteURL
	}
	return ""
}
