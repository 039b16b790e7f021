package email

// Template names an embedded email template.
type Template string

const (
	// TemplateRSVPUpdated corresponds to templates/rsvp_updated.html
	TemplateRSVPUpdated Template = "rsvp_updated"
)

func (t Template) file() string {
	return string(t) + ".html"
}
