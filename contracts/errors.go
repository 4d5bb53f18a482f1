package contracts

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrSchemaViolation    = errors.New("schema violation")
	ErrNetwork            = errors.New("network failure")
	ErrRetry              = errors.New("retryable failure")
	ErrHashMismatch       = errors.New("hash mismatch")
	ErrMissingManifest    = errors.New("missing manifest")
	ErrMalformedManifest  = errors.New("malformed embedded manifest")
	ErrIdentifierMismatch = errors.New("identifier mismatch")
	ErrInsecureURL        = errors.New("insecure url")
	ErrDuplicateUID       = errors.New("duplicate package uid")
)

// LinkError tags a failure below a followed link with the owning package and the URL involved.
type LinkError struct {
	UID string
	URL string
	Err error
}

func (this *LinkError) Error() string {
	if this.UID == "" {
		return fmt.Sprintf("error validating %s: %v", this.URL, this.Err)
	}
	if this.URL == "" {
		return fmt.Sprintf("error validating %s: %v", this.UID, this.Err)
	}
	return fmt.Sprintf("error validating %s for %s: %v", this.URL, this.UID, this.Err)
}

func (this *LinkError) Unwrap() error { return this.Err }

type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (this *StatusError) Error() string {
	return fmt.Sprintf("non-success status code from %s: %s", this.URL, this.Status)
}

func (this *StatusError) Is(target error) bool {
	if target == ErrNetwork {
		return true
	}
	return target == ErrRetry && this.StatusCode >= http.StatusInternalServerError
}

type TransportError struct {
	URL string
	Err error
}

func (this *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", this.URL, this.Err)
}

func (this *TransportError) Is(target error) bool {
	return target == ErrNetwork || target == ErrRetry
}

func (this *TransportError) Unwrap() error { return this.Err }

type HashMismatchError struct {
	URL      string
	Expected string
	Actual   string
}

func (this *HashMismatchError) Error() string {
	return fmt.Sprintf("sha256 mismatch for %s: expected %s, got %s", this.URL, this.Expected, this.Actual)
}

func (this *HashMismatchError) Unwrap() error { return ErrHashMismatch }

type IdentifierMismatchError struct {
	Expected string
	Actual   string
	URL      string
}

func (this *IdentifierMismatchError) Error() string {
	return fmt.Sprintf("package_uid mismatch: expected %q, got %q in %s", this.Expected, this.Actual, this.URL)
}

func (this *IdentifierMismatchError) Unwrap() error { return ErrIdentifierMismatch }
