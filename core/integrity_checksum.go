package core

import (
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/smarty/packcheck/contracts"
)

// ChecksumIntegrityCheck compares a computed digest with the declared hex hash, ignoring case.
type ChecksumIntegrityCheck struct {
	expected string
}

func NewChecksumIntegrityCheck(expected string) *ChecksumIntegrityCheck {
	return &ChecksumIntegrityCheck{expected: expected}
}

func (this *ChecksumIntegrityCheck) Verify(address url.URL, checksum []byte) error {
	actual := hex.EncodeToString(checksum)
	if strings.EqualFold(actual, this.expected) {
		return nil
	}
	return &contracts.HashMismatchError{URL: address.String(), Expected: this.expected, Actual: actual}
}
