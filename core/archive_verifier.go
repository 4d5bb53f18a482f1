package core

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"net/url"
	"os"

	"github.com/charmbracelet/log"

	"github.com/smarty/packcheck/contracts"
)

// ArchiveVerifier downloads a package archive into a temporary file while hashing it,
// then checks the declared hash and the package_uid of the embedded manifest.
type ArchiveVerifier struct {
	downloader contracts.Downloader
	inspector  contracts.ArchiveInspector
	hasher     func() hash.Hash
	logger     *log.Logger
	tempDir    string
}

func NewArchiveVerifier(downloader contracts.Downloader, inspector contracts.ArchiveInspector, logger *log.Logger, tempDir string) *ArchiveVerifier {
	return &ArchiveVerifier{
		downloader: downloader,
		inspector:  inspector,
		hasher:     sha256.New,
		logger:     logger,
		tempDir:    tempDir,
	}
}

func (this *ArchiveVerifier) Verify(address url.URL, expectedHash, expectedUID string) error {
	this.logger.Infof("Validating %s", address.String())

	body, err := this.downloader.Download(address)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	path, checksum, err := this.downloadToTemp(address, body)
	if path != "" {
		defer func() { _ = os.Remove(path) }()
	}
	if err != nil {
		return err
	}

	err = NewChecksumIntegrityCheck(expectedHash).Verify(address, checksum)
	if err != nil {
		return err
	}

	raw, err := this.inspector.ReadManifest(path)
	if err != nil {
		return fmt.Errorf("%s: %w", address.String(), err)
	}
	manifest, err := parseEmbeddedManifest(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", address.String(), err)
	}
	return NewIdentifierIntegrityCheck(expectedUID).Verify(address, manifest)
}

func (this *ArchiveVerifier) downloadToTemp(address url.URL, body io.Reader) (path string, checksum []byte, err error) {
	file, err := os.CreateTemp(this.tempDir, "archive-*.zip")
	if err != nil {
		return "", nil, err
	}
	path = file.Name()
	defer func() {
		closeErr := file.Close()
		if err == nil {
			err = closeErr
		}
	}()

	hasher := this.hasher()
	progress := newDownloadProgressCounter(func(written string) {
		this.logger.Infof("Downloaded %s from %s", written, address.String())
	})
	_, err = io.Copy(io.MultiWriter(file, progress), NewHashReader(body, hasher))
	_ = progress.Close()
	if err != nil {
		return path, nil, fmt.Errorf("%w: reading %s: %v", contracts.ErrNetwork, address.String(), err)
	}
	return path, hasher.Sum(nil), nil
}

func parseEmbeddedManifest(raw []byte) (manifest contracts.EmbeddedManifest, err error) {
	value, err := ParseJSONC(raw)
	if err != nil {
		return manifest, fmt.Errorf("%w: %v", contracts.ErrMalformedManifest, err)
	}
	fields, ok := value.(map[string]any)
	if !ok {
		return manifest, fmt.Errorf("%w: %s is not an object", contracts.ErrMalformedManifest, contracts.EmbeddedManifestFilename)
	}
	uid, ok := fields[contracts.PackageUIDField].(string)
	if !ok {
		return manifest, fmt.Errorf("%w: %s has no %s", contracts.ErrMalformedManifest, contracts.EmbeddedManifestFilename, contracts.PackageUIDField)
	}
	manifest.PackageUID = uid
	return manifest, nil
}
