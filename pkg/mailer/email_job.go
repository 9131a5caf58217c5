package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Account notifications use Template "universal" with Data["Type"] selecting the copy;
// raw jobs carry Subject and Text/HTML directly.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// UniversalTemplate is the single layout every account notification is rendered with.
const UniversalTemplate = "universal"
