package contracts

// VersionListing is the release list of a single package.
type VersionListing struct {
	Versions []VersionEntry `json:"versions"`
}

type VersionEntry struct {
	PackageVersion string `json:"package_version"`
	DownloadURL    *URL   `json:"download_url"`
	SHA256         string `json:"sha256"`
	Changelog      string `json:"changelog,omitempty"`
}

// EmbeddedManifest is the manifest.json found inside a package archive.
type EmbeddedManifest struct {
	PackageUID string `json:"package_uid"`
}

const (
	EmbeddedManifestFilename = "manifest.json"
	PackageUIDField          = "package_uid"
)
