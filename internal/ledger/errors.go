package ledger

import "fmt" // Error formatting

// ValidationError reports a submission that was rejected before anything was written.
type ValidationError struct {
	Field   string // Offending input field
	Message string // Shown to the user
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps a failure of the underlying database.
type StorageError struct {
	Op  string // Store operation that failed
	Err error  // Underlying database error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
