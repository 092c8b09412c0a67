package leads

import "regexp"

// Validation patterns. EmailPattern is also compiled by the Go client and the
// landing page script, so both are written in the subset of regex syntax that
// RE2 and ECMAScript agree on.
const (
	// EmailPattern: a local part, an at-sign, and a domain containing a dot.
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	// PhonePattern: digits, whitespace, dashes, parentheses and plus signs.
	PhonePattern = `^[\d\s\-()+]+$`
)

// Field keys as they appear on the wire and in the page markup.
const (
	FieldBusinessName = "businessName"
	FieldYourName     = "yourName"
	FieldPhoneNumber  = "phoneNumber"
	FieldEmail        = "email"
	FieldWebsiteURL   = "websiteUrl"
)

var (
	emailRe = regexp.MustCompile(EmailPattern)
	phoneRe = regexp.MustCompile(PhonePattern)
)

// RequiredFields lists the mandatory keys in the order they are reported.
func RequiredFields() []string {
	return []string{FieldBusinessName, FieldYourName, FieldPhoneNumber, FieldEmail}
}

// Rule documents a format check together with sample inputs.
type Rule struct {
	Field   string
	Pattern string
	Valid   []string
	Invalid []string
}

// Rules returns the format checks in evaluation order.
func Rules() []Rule {
	return []Rule{
		{
			Field:   FieldEmail,
			Pattern: EmailPattern,
			Valid:   []string{"jane@acme.com", "first.last+tag@mail.example.co.uk", "s@s.io"},
			Invalid: []string{"not-an-email", "jane@acme", "jane doe@acme.com", "@acme.com", "jane@@acme.com"},
		},
		{
			Field:   FieldPhoneNumber,
			Pattern: PhonePattern,
			Valid:   []string{"216-555-0100", "(216) 555 0100", "+1 216 555 0100", "2165550100"},
			Invalid: []string{"call me", "216-555-O100", "216.555.0100", "ext 12"},
		},
	}
}

// ValidEmail reports whether s has the basic local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidPhone reports whether s only contains phone characters.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}
