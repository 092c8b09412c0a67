package leads

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIncludesAllFields(t *testing.T) {
	r := NewRenderer(Branding{SiteName: "216 LAUNCH", SiteDomain: "216launch.com"})

	email, err := r.Render(validSubmission())
	require.NoError(t, err)

	assert.Equal(t, "New Lead: Acme - Jane Doe", email.Subject)

	assert.Contains(t, email.HTML, "New Lead from 216 LAUNCH")
	assert.Contains(t, email.HTML, `<div class="value">Acme</div>`)
	assert.Contains(t, email.HTML, `<div class="value">Jane Doe</div>`)
	assert.Contains(t, email.HTML, `<a href="mailto:jane@acme.com">jane@acme.com</a>`)
	assert.Contains(t, email.HTML, `<a href="tel:216-555-0100">216-555-0100</a>`)
	assert.Contains(t, email.HTML, `<a href="https://acme.com" target="_blank">https://acme.com</a>`)
	assert.Contains(t, email.HTML, "Current Website")
	assert.Contains(t, email.HTML, "Submitted from 216launch.com")

	want := strings.Join([]string{
		"New Lead from 216 LAUNCH",
		"",
		"Business Name: Acme",
		"Contact Name: Jane Doe",
		"Email: jane@acme.com",
		"Phone Number: 216-555-0100",
		"Current Website: https://acme.com",
		"",
		"Submitted from 216launch.com",
		"",
	}, "\n")
	assert.Equal(t, want, email.Text)
}

func TestRenderOmitsWebsiteWhenEmpty(t *testing.T) {
	sub := validSubmission()
	sub.WebsiteURL = ""

	email, err := NewRenderer(Branding{}).Render(sub)
	require.NoError(t, err)

	assert.NotContains(t, email.HTML, "Current Website")
	assert.NotContains(t, email.HTML, "acme.com\" target")
	assert.NotContains(t, email.Text, "Current Website")
	assert.Contains(t, email.Text, "Phone Number: 216-555-0100\n\nSubmitted from 216launch.com")
}

func TestRenderFieldOrderMatchesAcrossBodies(t *testing.T) {
	email, err := NewRenderer(Branding{}).Render(validSubmission())
	require.NoError(t, err)

	labels := []string{"Business Name", "Contact Name", "Email", "Phone Number", "Current Website"}
	lastHTML, lastText := -1, -1
	for _, label := range labels {
		h := strings.Index(email.HTML, ">"+label+"<")
		x := strings.Index(email.Text, label+":")
		require.Greater(t, h, lastHTML, "html label %s out of order", label)
		require.Greater(t, x, lastText, "text label %s out of order", label)
		lastHTML, lastText = h, x
	}
}

func TestRenderEscapesMarkupInHTMLOnly(t *testing.T) {
	sub := validSubmission()
	sub.BusinessName = `<script>alert("x")</script>`
	sub.WebsiteURL = "javascript:alert(1)"

	email, err := NewRenderer(Branding{}).Render(sub)
	require.NoError(t, err)

	assert.NotContains(t, email.HTML, "<script>")
	assert.Contains(t, email.HTML, "&lt;script&gt;")
	assert.NotContains(t, email.HTML, `href="javascript:`)
	assert.Contains(t, email.Text, `Business Name: <script>alert("x")</script>`)
}

// Link targets are URL-normalised by html/template while the visible values
// and the text body keep the submitted characters.
func TestRenderNormalisesContactLinks(t *testing.T) {
	sub := validSubmission()
	sub.PhoneNumber = "(216) 555 0100"
	sub.Email = "jane+leads@acme.com"

	email, err := NewRenderer(Branding{}).Render(sub)
	require.NoError(t, err)

	assert.Contains(t, email.HTML, `href="tel:%28216%29%20555%200100"`)
	assert.Contains(t, email.HTML, `>(216) 555 0100</a>`)
	assert.Contains(t, email.HTML, `href="mailto:jane&#43;leads@acme.com"`)
	assert.Contains(t, email.Text, "Phone Number: (216) 555 0100")
	assert.Contains(t, email.Text, "Email: jane+leads@acme.com")
}

func TestSubjectFlattensNewlines(t *testing.T) {
	sub := validSubmission()
	sub.YourName = "Jane\r\nBcc: someone@example.com"
	assert.NotContains(t, Subject(sub), "\n")
	assert.NotContains(t, Subject(sub), "\r")
}
