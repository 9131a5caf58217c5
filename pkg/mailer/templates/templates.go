package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Notification types carried in EmailData.Type.
const (
	Welcome         = "welcome"
	PasswordChanged = "password_changed"
	ProfileUpdated  = "profile_updated"
)

// EmailData defines the fields the universal template reads.
type EmailData struct {
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`
	Role           string `json:"Role,omitempty"`

	CompanyName string `json:"CompanyName"`
	AppName     string `json:"AppName"`
	LogoURL     string `json:"LogoURL"`
	SupportURL  string `json:"SupportURL"`

	Time      string            `json:"Time"`
	TimeAt    time.Time         `json:"TimeAt"`
	IP        string            `json:"IP,omitempty"`
	UserAgent string            `json:"UserAgent,omitempty"`
	Changes   map[string]string `json:"Changes,omitempty"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.IsZero() {
			return fallback
		}
		return value
	}
}

var funcMap = htmpl.FuncMap{
	"upper":   strings.ToUpper,
	"default": defaultFn,
	"is":      func(a, b any) bool { return fmt.Sprint(a) == fmt.Sprint(b) },
}

// RenderHTML renders <name>.html.tmpl from the embedded FS.
func RenderHTML(name string, data any) (string, error) {
	filename := name + ".html.tmpl"
	tpl, err := htmpl.New(filename).Funcs(funcMap).ParseFS(FS, filename)
	if err != nil {
		return "", fmt.Errorf("parse html %q: %w", filename, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Subject picks the subject line for a notification type.
func Subject(typ string) string {
	switch strings.ToLower(typ) {
	case Welcome:
		return "Welcome to the marketplace"
	case PasswordChanged:
		return "Your password was changed"
	case ProfileUpdated:
		return "Your profile was updated"
	default:
		return "Account notification"
	}
}
