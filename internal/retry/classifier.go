package retry

import (
	"errors"
	"syscall"
)

// transientErrnos are returned by filesystems that are momentarily busy or out
// of descriptors. The same call usually succeeds a moment later.
var transientErrnos = []syscall.Errno{
	syscall.EBUSY,
	syscall.EAGAIN,
	syscall.EINTR,
	syscall.EMFILE,
	syscall.ENFILE,
	syscall.ETXTBSY,
}

// FilesystemErrorClassifier implements pubfs.ErrorClassifier for OS filesystem errors.
type FilesystemErrorClassifier struct{}

// NewFilesystemErrorClassifier creates a new filesystem error classifier.
func NewFilesystemErrorClassifier() *FilesystemErrorClassifier {
	return &FilesystemErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
// Not-exist, exist and permission errors are never transient.
func (c *FilesystemErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}

	for _, transient := range transientErrnos {
		if errno == transient {
			return true
		}
	}
	return false
}
