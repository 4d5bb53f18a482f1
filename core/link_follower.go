package core

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/smarty/packcheck/contracts"
)

type FollowOptions struct {
	Mode contracts.FollowMode

	// Shallow stops after validating versions documents; archives are not downloaded.
	Shallow bool
}

type documentValidator interface {
	ValidateDocument(raw []byte) (any, error)
}

type archiveVerifier interface {
	Verify(address url.URL, expectedHash, expectedUID string) error
}

// LinkFollower walks the packs -> versions -> archive chain. The follow mode applies
// independently at each level and the first failure aborts the whole run.
type LinkFollower struct {
	downloader     contracts.Downloader
	versionsSchema documentValidator
	verifier       archiveVerifier
	logger         *log.Logger
	options        FollowOptions
}

func NewLinkFollower(
	downloader contracts.Downloader,
	versionsSchema documentValidator,
	verifier archiveVerifier,
	logger *log.Logger,
	options FollowOptions,
) *LinkFollower {
	return &LinkFollower{
		downloader:     downloader,
		versionsSchema: versionsSchema,
		verifier:       verifier,
		logger:         logger,
		options:        options,
	}
}

func (this *LinkFollower) FollowPacks(document contracts.PacksDocument) error {
	if this.options.Mode == contracts.FollowNone {
		return nil
	}
	for _, record := range document.Records {
		err := this.followPack(record)
		if err != nil {
			return err
		}
		if this.options.Mode == contracts.FollowFirst {
			break
		}
	}
	return nil
}

func (this *LinkFollower) followPack(record contracts.PackRecord) error {
	address, err := record.VersionsURL()
	if err != nil {
		return &contracts.LinkError{UID: record.UID, Err: err}
	}
	this.logger.Infof("Validating %s versions: %s", record.UID, address.String())

	listing, err := this.fetchVersions(address)
	if err == nil && !this.options.Shallow {
		err = this.FollowVersions(record.UID, listing)
	}
	if err != nil {
		return &contracts.LinkError{UID: record.UID, URL: address.String(), Err: err}
	}
	return nil
}

func (this *LinkFollower) fetchVersions(address url.URL) (listing contracts.VersionListing, err error) {
	err = contracts.CheckLinkPolicy(address)
	if err != nil {
		return listing, err
	}
	body, err := this.downloader.Download(address)
	if err != nil {
		return listing, err
	}
	defer func() { _ = body.Close() }()

	raw, err := io.ReadAll(body)
	if err != nil {
		return listing, fmt.Errorf("%w: reading %s: %v", contracts.ErrNetwork, address.String(), err)
	}
	_, err = this.versionsSchema.ValidateDocument(raw)
	if err != nil {
		return listing, err
	}
	err = json.Unmarshal(raw, &listing)
	return listing, err
}

// FollowVersions verifies the archives of a versions document. Entries without a
// download URL are not links and are skipped. A blank uid disables the embedded
// package_uid comparison.
func (this *LinkFollower) FollowVersions(uid string, listing contracts.VersionListing) error {
	if this.options.Mode == contracts.FollowNone {
		return nil
	}
	for _, entry := range listing.Versions {
		if entry.DownloadURL == nil {
			continue
		}
		address := *entry.DownloadURL.Value()
		err := this.followArchive(uid, address, entry.SHA256)
		if err != nil {
			return &contracts.LinkError{UID: uid, URL: address.String(), Err: err}
		}
		if this.options.Mode == contracts.FollowFirst {
			break
		}
	}
	return nil
}

func (this *LinkFollower) followArchive(uid string, address url.URL, expectedHash string) error {
	err := contracts.CheckLinkPolicy(address)
	if err != nil {
		return err
	}
	return this.verifier.Verify(address, expectedHash, uid)
}
