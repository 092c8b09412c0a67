package leads

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// RenderedEmail is the lead notification in both representations.
type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

// Branding customises the email header and footer.
type Branding struct {
	SiteName   string
	SiteDomain string
}

// Renderer turns a validated submission into the notification email.
type Renderer struct {
	branding Branding
	html     *htmltemplate.Template
	text     *texttemplate.Template
}

type renderData struct {
	Branding
	Submission
	ShowWebsite bool
}

// NewRenderer parses the email templates.
func NewRenderer(branding Branding) *Renderer {
	if branding.SiteName == "" {
		branding.SiteName = "216 LAUNCH"
	}
	if branding.SiteDomain == "" {
		branding.SiteDomain = "216launch.com"
	}
	return &Renderer{
		branding: branding,
		html:     htmltemplate.Must(htmltemplate.New("lead.html").Parse(leadHTMLTemplate)),
		text:     texttemplate.Must(texttemplate.New("lead.txt").Parse(leadTextTemplate)),
	}
}

// Render builds the subject, HTML and text bodies. Field values are
// contextually escaped in the HTML body and embedded verbatim in the text body.
func (r *Renderer) Render(sub Submission) (RenderedEmail, error) {
	data := renderData{Branding: r.branding, Submission: sub, ShowWebsite: sub.HasWebsite()}

	var html bytes.Buffer
	if err := r.html.Execute(&html, data); err != nil {
		return RenderedEmail{}, fmt.Errorf("render html: %w", err)
	}
	var text bytes.Buffer
	if err := r.text.Execute(&text, data); err != nil {
		return RenderedEmail{}, fmt.Errorf("render text: %w", err)
	}

	return RenderedEmail{
		Subject: Subject(sub),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// Subject builds "New Lead: <business> - <name>" on a single line.
func Subject(sub Submission) string {
	flatten := strings.NewReplacer("\r", " ", "\n", " ")
	return flatten.Replace(fmt.Sprintf("New Lead: %s - %s", sub.BusinessName, sub.YourName))
}

const leadHTMLTemplate = `<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: 'Inter', sans-serif; color: #1a1a1a; line-height: 1.6; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #6E40C9; color: white; padding: 30px; text-align: center; border-radius: 8px 8px 0 0; }
      .header h1 { margin: 0; font-size: 28px; font-weight: 800; }
      .content { background-color: #f7f7f7; padding: 30px; border-radius: 0 0 8px 8px; }
      .field { margin-bottom: 20px; }
      .label { font-weight: 600; color: #666; font-size: 14px; text-transform: uppercase; letter-spacing: 0.5px; }
      .value { font-size: 16px; color: #1a1a1a; margin-top: 5px; }
      .footer { text-align: center; margin-top: 30px; color: #666; font-size: 14px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>🎉 New Lead from {{.SiteName}}</h1>
      </div>
      <div class="content">
        <div class="field">
          <div class="label">Business Name</div>
          <div class="value">{{.BusinessName}}</div>
        </div>
        <div class="field">
          <div class="label">Contact Name</div>
          <div class="value">{{.YourName}}</div>
        </div>
        <div class="field">
          <div class="label">Email</div>
          <div class="value"><a href="mailto:{{.Email}}">{{.Email}}</a></div>
        </div>
        <div class="field">
          <div class="label">Phone Number</div>
          <div class="value"><a href="tel:{{.PhoneNumber}}">{{.PhoneNumber}}</a></div>
        </div>
{{- if .ShowWebsite}}
        <div class="field">
          <div class="label">Current Website</div>
          <div class="value"><a href="{{.WebsiteURL}}" target="_blank">{{.WebsiteURL}}</a></div>
        </div>
{{- end}}
      </div>
      <div class="footer">
        <p>Submitted from {{.SiteDomain}}</p>
      </div>
    </div>
  </body>
</html>
`

const leadTextTemplate = `New Lead from {{.SiteName}}

Business Name: {{.BusinessName}}
Contact Name: {{.YourName}}
Email: {{.Email}}
Phone Number: {{.PhoneNumber}}
{{- if .ShowWebsite}}
Current Website: {{.WebsiteURL}}
{{- end}}

Submitted from {{.SiteDomain}}
`
