// Package notify delivers outbound email. Every transport reports failure as
// false rather than an error; callers decide what a failed dispatch means.
package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tracehealth/trace/pkg/slogx"
)

// LogNotifier writes dispatches to the log instead of sending them. It is
// meant for local development and tests.
type LogNotifier struct {
	// ShowBody includes the message body in the log record. Leave it off
	// anywhere the log is shared, bodies carry one-time codes.
	ShowBody bool
}

func (n LogNotifier) Send(ctx context.Context, to, subject, body string) bool {
	attrs := []any{
		slog.String("to", to),
		slog.String("subject", subject),
	}
	if n.ShowBody {
		attrs = append(attrs, slog.String("body", body))
	}
	slogx.FromContext(ctx).Info("email dispatched to log", attrs...)
	return true
}

// maskAddress keeps the first character and the domain, "j***@example.com".
func maskAddress(addr string) string {
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 {
		return "***"
	}
	return addr[:1] + "***" + addr[at:]
}
