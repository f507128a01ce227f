package intake

import "errors"

var (
	// ErrJobNotFound means the public form id resolved to nothing; the link
	// is invalid or the job was removed.
	ErrJobNotFound = errors.New("job not found")
	// ErrValidation means a required personal field was missing or malformed.
	ErrValidation = errors.New("validation error")
	// ErrStorageUnavailable means the resume blob write failed. No
	// application record exists, so the whole submission is safe to retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrRepositoryUnavailable means the record write failed after the blob
	// was stored. The orphan blob is garbage-collectable; the applicant
	// should resubmit.
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
