package contracts

// ArchiveInspector reads the embedded manifest out of an archive stored at path.
type ArchiveInspector interface {
	ReadManifest(path string) ([]byte, error)
}
