package core

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/smarty/packcheck/contracts"
	"github.com/smarty/packcheck/shell"
)

func TestArchiveVerifierFixture(t *testing.T) {
	gunit.Run(new(ArchiveVerifierFixture), t)
}

type ArchiveVerifierFixture struct {
	*gunit.Fixture

	verifier   *ArchiveVerifier
	downloader *FakeDownloader
	tempDir    string
	address    url.URL
}

func (this *ArchiveVerifierFixture) Setup() {
	tempDir, err := os.MkdirTemp("", "archive-verifier-*")
	this.So(err, should.BeNil)
	this.tempDir = tempDir
	this.downloader = NewFakeDownloader()
	this.verifier = NewArchiveVerifier(this.downloader, shell.NewZipInspector(), log.New(io.Discard), this.tempDir)
	this.address = url.URL{Scheme: "https", Host: "x", Path: "/a.zip"}
}

func (this *ArchiveVerifierFixture) Teardown() {
	_ = os.RemoveAll(this.tempDir)
}

func (this *ArchiveVerifierFixture) serve(entries ...[2]string) string {
	archive := buildArchive(entries...)
	this.downloader.responses[this.address.String()] = archive
	return hashOf(archive)
}

func (this *ArchiveVerifierFixture) assertTempDirEmpty() {
	listing, err := os.ReadDir(this.tempDir)
	this.So(err, should.BeNil)
	this.So(listing, should.BeEmpty)
}

func (this *ArchiveVerifierFixture) TestMatchingArchive() {
	hash := this.serve([2]string{"manifest.json", `{"package_uid": "pkgA"}`})

	err := this.verifier.Verify(this.address, hash, "pkgA")

	this.So(err, should.BeNil)
	this.So(this.downloader.requests, should.Resemble, []string{"https://x/a.zip"})
	this.assertTempDirEmpty()
}

func (this *ArchiveVerifierFixture) TestHashComparedCaseInsensitively() {
	hash := this.serve([2]string{"manifest.json", `{"package_uid": "pkgA"}`})

	err := this.verifier.Verify(this.address, strings.ToUpper(hash), "pkgA")

	this.So(err, should.BeNil)
}

func (this *ArchiveVerifierFixture) TestHashMismatch() {
	hash := this.serve([2]string{"manifest.json", `{"package_uid": "pkgA"}`})
	declared := strings.Repeat("0", len(hash))

	err := this.verifier.Verify(this.address, declared, "pkgA")

	var mismatch *contracts.HashMismatchError
	this.So(errors.As(err, &mismatch), should.BeTrue)
	this.So(mismatch.Expected, should.Equal, declared)
	this.So(mismatch.Actual, should.Equal, hash)
	this.assertTempDirEmpty()
}

func (this *ArchiveVerifierFixture) TestMissingManifest() {
	hash := this.serve([2]string{"init.lua", "-- no manifest here"})

	err := this.verifier.Verify(this.address, hash, "pkgA")

	this.So(errors.Is(err, contracts.ErrMissingManifest), should.BeTrue)
	this.So(err.Error(), should.ContainSubstring, "https://x/a.zip")
	this.assertTempDirEmpty()
}

func (this *ArchiveVerifierFixture) TestManifestInTopLevelFolder() {
	hash := this.serve(
		[2]string{"pack/", ""},
		[2]string{"pack/images/logo.png", "png"},
		[2]string{"pack/manifest.json", `{"package_uid": "pkgA"}`},
	)

	this.So(this.verifier.Verify(this.address, hash, "pkgA"), should.BeNil)
}

func (this *ArchiveVerifierFixture) TestManifestWithCommentsAndTrailingCommas() {
	hash := this.serve([2]string{"manifest.json", `{
		// written by hand
		"name": "Pack A", /* display name */
		"package_uid": "pkgA",
	}`})

	this.So(this.verifier.Verify(this.address, hash, "pkgA"), should.BeNil)
}

func (this *ArchiveVerifierFixture) TestManifestNotAnObject() {
	hash := this.serve([2]string{"manifest.json", `["pkgA"]`})

	err := this.verifier.Verify(this.address, hash, "pkgA")

	this.So(errors.Is(err, contracts.ErrMalformedManifest), should.BeTrue)
	this.assertTempDirEmpty()
}

func (this *ArchiveVerifierFixture) TestManifestUnparseable() {
	hash := this.serve([2]string{"manifest.json", `{"package_uid": `})

	err := this.verifier.Verify(this.address, hash, "pkgA")

	this.So(errors.Is(err, contracts.ErrMalformedManifest), should.BeTrue)
}

func (this *ArchiveVerifierFixture) TestManifestWithoutIdentifier() {
	hash := this.serve([2]string{"manifest.json", `{"name": "Pack A"}`})

	err := this.verifier.Verify(this.address, hash, "")

	this.So(errors.Is(err, contracts.ErrMalformedManifest), should.BeTrue)
	this.So(err.Error(), should.ContainSubstring, "package_uid")
}

func (this *ArchiveVerifierFixture) TestIdentifierMismatch() {
	hash := this.serve([2]string{"manifest.json", `{"package_uid": "pkgB"}`})

	err := this.verifier.Verify(this.address, hash, "pkgA")

	this.So(errors.Is(err, contracts.ErrIdentifierMismatch), should.BeTrue)
	this.So(err.Error(), should.ContainSubstring, "pkgA")
	this.So(err.Error(), should.ContainSubstring, "pkgB")
	this.So(err.Error(), should.ContainSubstring, "https://x/a.zip")
	this.assertTempDirEmpty()
}

func (this *ArchiveVerifierFixture) TestNoExpectedIdentifier() {
	hash := this.serve([2]string{"manifest.json", `{"package_uid": "anything"}`})

	this.So(this.verifier.Verify(this.address, hash, ""), should.BeNil)
}

func (this *ArchiveVerifierFixture) TestDownloadFailure() {
	this.downloader.errors[this.address.String()] = &contracts.StatusError{URL: this.address.String(), StatusCode: 404, Status: "404 Not Found"}

	err := this.verifier.Verify(this.address, "abc", "pkgA")

	this.So(errors.Is(err, contracts.ErrNetwork), should.BeTrue)
	this.assertTempDirEmpty()
}

func (this *ArchiveVerifierFixture) TestInterruptedDownload() {
	this.downloader.responses[this.address.String()] = []byte("partial")
	this.downloader.readErrors[this.address.String()] = io.ErrUnexpectedEOF

	err := this.verifier.Verify(this.address, "abc", "pkgA")

	this.So(errors.Is(err, contracts.ErrNetwork), should.BeTrue)
	this.assertTempDirEmpty()
}

func (this *ArchiveVerifierFixture) TestBodyClosed() {
	hash := this.serve([2]string{"manifest.json", `{"package_uid": "pkgA"}`})

	_ = this.verifier.Verify(this.address, hash, "pkgA")

	this.So(this.downloader.closed, should.Equal, 1)
}

///////////////////////////////////////////////////////////////////////////////

func buildArchive(entries ...[2]string) []byte {
	buffer := new(bytes.Buffer)
	writer := zip.NewWriter(buffer)
	for _, entry := range entries {
		file, err := writer.Create(entry[0])
		if err != nil {
			panic(err)
		}
		_, _ = file.Write([]byte(entry[1]))
	}
	if err := writer.Close(); err != nil {
		panic(err)
	}
	return buffer.Bytes()
}

func hashOf(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

type FakeDownloader struct {
	responses  map[string][]byte
	errors     map[string]error
	readErrors map[string]error
	requests   []string
	closed     int
}

func NewFakeDownloader() *FakeDownloader {
	return &FakeDownloader{
		responses:  make(map[string][]byte),
		errors:     make(map[string]error),
		readErrors: make(map[string]error),
	}
}

func (this *FakeDownloader) Download(address url.URL) (io.ReadCloser, error) {
	this.requests = append(this.requests, address.String())
	if err := this.errors[address.String()]; err != nil {
		return nil, err
	}
	content, found := this.responses[address.String()]
	if !found {
		return nil, &contracts.StatusError{URL: address.String(), StatusCode: 404, Status: "404 Not Found"}
	}
	var reader io.Reader = bytes.NewReader(content)
	if err := this.readErrors[address.String()]; err != nil {
		reader = io.MultiReader(reader, &failingReader{err: err})
	}
	return &fakeBody{Reader: reader, downloader: this}, nil
}

type fakeBody struct {
	io.Reader
	downloader *FakeDownloader
}

func (this *fakeBody) Close() error {
	this.downloader.closed++
	return nil
}

type failingReader struct{ err error }

func (this *failingReader) Read([]byte) (int, error) { return 0, this.err }
