package pubfs

import "context"

// Approver handles user interaction for approval workflows, particularly for
// destructive operations like deleting a directory tree.
type Approver interface {
	// RequestApproval asks for confirmation before target is destroyed.
	// It returns false without an error when the user declines.
	RequestApproval(ctx context.Context, target string) (bool, error)
}
