package pipeline

import "fmt"

// ValidationError means the draft was malformed; nothing was uploaded
// or persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UploadError means a storage gateway call failed partway through
// ingestion. Blobs uploaded earlier in the same run are removed
// best-effort before this is returned.
type UploadError struct {
	Stage Stage
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed while %s: %v", e.Stage, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PersistError means the record store rejected the create or update.
// No retry is attempted here; the caller decides.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist certificate: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
