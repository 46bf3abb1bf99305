package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/storefront-api/pkg/mailer"
	mailtpl "github.com/oksasatya/storefront-api/pkg/mailer/templates"
)

// SubjectFor picks a subject line when a job names a template but no subject.
func SubjectFor(template string, data map[string]any) string {
	company := fmt.Sprintf("%v", data["CompanyName"])
	if company == "" || company == "<nil>" {
		company = "our store"
	}
	switch strings.ToLower(template) {
	case mailtpl.Welcome:
		return "Welcome to " + company
	case mailtpl.OrderReceipt:
		return "Your order " + fmt.Sprintf("%v", data["OrderID"]) + " is confirmed"
	default:
		return "Notification"
	}
}

// EnsureRecipient mirrors job.To into the template data so templates can greet by address.
func EnsureRecipient(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}
