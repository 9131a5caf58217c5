package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/marketplace-storefront/pkg/mailer"
	mailtpl "github.com/oksasatya/marketplace-storefront/pkg/mailer/templates"
)

// SubjectForUniversal picks the subject line from the job's notification type.
func SubjectForUniversal(data map[string]any) string {
	return mailtpl.Subject(fmt.Sprintf("%v", data["Type"]))
}

// EnsureRecipientAndEmail backfills Email and RecipientEmail from the job recipient.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// ComposeEmail resolves the final subject and bodies of a job. Universal jobs are
// rendered from the embedded template with branding filled in; raw jobs pass through.
func ComposeEmail(job *mailer.EmailJob, b mailtpl.Branding) (subject, text, html string, err error) {
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	if !strings.EqualFold(job.Template, mailer.UniversalTemplate) {
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
	EnsureRecipientAndEmail(job)
	mailtpl.ApplyBranding(job.Data, b)
	html, err = mailtpl.RenderHTML(mailer.UniversalTemplate, job.Data)
	if err != nil {
		return "", "", "", err
	}
	subject = job.Subject
	if subject == "" {
		subject = SubjectForUniversal(job.Data)
	}
	return subject, job.Text, html, nil
}
