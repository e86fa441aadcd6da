package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/audit"
)

// AuditLogger records append-only audit entries. The dispatcher calls it
// after every successful action; implementations must not be relied on for
// business outcomes: a failed audit write is logged and swallowed by the
// caller, never propagated.
type AuditLogger interface {
	Log(ctx context.Context, entry *audit.Entry) error
}
