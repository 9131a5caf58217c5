package templates

import (
	"fmt"
	"strings"
	"time"
)

type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithRole(role string) Option    { return func(d *EmailData) { d.Role = role } }
func WithChanges(ch map[string]string) Option {
	return func(d *EmailData) { d.Changes = ch }
}
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}

func newData(typ, name, email string, opts ...Option) map[string]any {
	d := EmailData{Name: name, Email: email, RecipientEmail: email, Type: typ}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}

func NewWelcomeData(name, email string, opts ...Option) map[string]any {
	return newData(Welcome, name, email, opts...)
}

func NewPasswordChangedData(name, email string, opts ...Option) map[string]any {
	return newData(PasswordChanged, name, email, opts...)
}

func NewProfileUpdatedData(name, email string, changes map[string]string, opts ...Option) map[string]any {
	opts = append([]Option{WithChanges(changes)}, opts...)
	return newData(ProfileUpdated, name, email, opts...)
}

// Branding is filled in by the email worker, not by the API process.
type Branding struct {
	CompanyName string
	AppName     string
	LogoURL     string
	SupportURL  string
}

// ApplyBranding sets branding keys that the job did not already carry.
func ApplyBranding(data map[string]any, b Branding) {
	set := func(key, val string) {
		if v, ok := data[key]; !ok || strings.TrimSpace(fmt.Sprint(v)) == "" {
			data[key] = val
		}
	}
	set("CompanyName", b.CompanyName)
	set("AppName", b.AppName)
	set("LogoURL", b.LogoURL)
	set("SupportURL", b.SupportURL)
}
