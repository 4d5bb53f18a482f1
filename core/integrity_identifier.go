package core

import (
	"net/url"

	"github.com/smarty/packcheck/contracts"
)

// IdentifierIntegrityCheck requires the embedded manifest to name the expected package.
// An empty expectation accepts any identifier.
type IdentifierIntegrityCheck struct {
	expected string
}

func NewIdentifierIntegrityCheck(expected string) *IdentifierIntegrityCheck {
	return &IdentifierIntegrityCheck{expected: expected}
}

func (this *IdentifierIntegrityCheck) Verify(address url.URL, manifest contracts.EmbeddedManifest) error {
	if this.expected == "" || manifest.PackageUID == this.expected {
		return nil
	}
	return &contracts.IdentifierMismatchError{
		Expected: this.expected,
		Actual:   manifest.PackageUID,
		URL:      address.String(),
	}
}
