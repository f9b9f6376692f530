package notification

import "context"

// Dispatcher delivers best-effort transactional email. Implementations never
// fail past their own boundary: every transport problem is reported as
// (false, diagnostic) and the caller decides whether to surface a warning.
// Delivery is at-most-once; there is no retry queue and no delivery record.
type Dispatcher interface {
	Send(ctx context.Context, subject, recipient, body string, html bool) (delivered bool, diagnostic string)
}
