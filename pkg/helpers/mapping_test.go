package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/marketplace-storefront/pkg/mailer"
	mailtpl "github.com/oksasatya/marketplace-storefront/pkg/mailer/templates"
)

var testBranding = mailtpl.Branding{CompanyName: "Acme Bazaar", AppName: "storefront", SupportURL: "https://help.example.com"}

// Requirement: universal jobs render the copy for their notification type with branding applied.
func TestComposeEmail_Universal(t *testing.T) {
	tests := []struct {
		name        string
		data        map[string]any
		wantSubject string
		wantBody    string
	}{
		{
			name:        "welcome",
			data:        mailtpl.NewWelcomeData("Asha", "asha@example.com", mailtpl.WithRole("seller")),
			wantSubject: "Welcome to the marketplace",
			wantBody:    "Your seller account for asha@example.com is ready",
		},
		{
			name:        "password changed",
			data:        mailtpl.NewPasswordChangedData("Asha", "asha@example.com", mailtpl.WithIP("203.0.113.9")),
			wantSubject: "Your password was changed",
			wantBody:    "Request from 203.0.113.9",
		},
		{
			name:        "profile updated",
			data:        mailtpl.NewProfileUpdatedData("Asha", "asha@example.com", map[string]string{"name": "Asha R"}),
			wantSubject: "Your profile was updated",
			wantBody:    "<li>name: Asha R</li>",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			job := &mailer.EmailJob{To: "asha@example.com", Template: mailer.UniversalTemplate, Data: test.data}
			subject, _, html, err := ComposeEmail(job, testBranding)
			require.NoError(t, err)
			assert.Equal(t, test.wantSubject, subject)
			assert.Contains(t, html, test.wantBody)
			assert.Contains(t, html, "Acme Bazaar")
			assert.Contains(t, html, "https://help.example.com")
		})
	}
}

// Requirement: jobs without a template are sent as given; unknown templates are rejected.
func TestComposeEmail_RawAndUnknown(t *testing.T) {
	raw := &mailer.EmailJob{To: "a@example.com", Subject: "Hi", Text: "plain", HTML: "<b>x</b>"}
	subject, text, html, err := ComposeEmail(raw, testBranding)
	require.NoError(t, err)
	assert.Equal(t, "Hi", subject)
	assert.Equal(t, "plain", text)
	assert.Equal(t, "<b>x</b>", html)

	_, _, _, err = ComposeEmail(&mailer.EmailJob{To: "a@example.com", Template: "legacy"}, testBranding)
	assert.Error(t, err)
}

// Requirement: a job without recipient data still addresses the recipient.
func TestEnsureRecipientAndEmail(t *testing.T) {
	job := &mailer.EmailJob{To: "b@example.com"}
	EnsureRecipientAndEmail(job)
	assert.Equal(t, "b@example.com", job.Data["Email"])
	assert.Equal(t, "b@example.com", job.Data["RecipientEmail"])
}
