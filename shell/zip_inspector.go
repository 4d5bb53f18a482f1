package shell

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mholt/archiver"

	"github.com/smarty/packcheck/contracts"
)

type ZipInspector struct {
	walker archiver.Walker
}

func NewZipInspector() *ZipInspector {
	return &ZipInspector{walker: &archiver.Zip{}}
}

// ReadManifest returns the contents of the first entry, in container order, named
// manifest.json at any depth.
func (this *ZipInspector) ReadManifest(path string) (content []byte, err error) {
	found := false
	walkErr := this.walker.Walk(path, func(file archiver.File) error {
		if !IsManifestEntry(entryName(file)) {
			return nil
		}
		found = true
		content, err = io.ReadAll(file)
		if err != nil {
			return err
		}
		return archiver.ErrStopWalk
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", contracts.EmbeddedManifestFilename, err)
	}
	if walkErr != nil && !errors.Is(walkErr, archiver.ErrStopWalk) {
		return nil, fmt.Errorf("open archive: %w", walkErr)
	}
	if !found {
		return nil, fmt.Errorf("%w: no %s in archive", contracts.ErrMissingManifest, contracts.EmbeddedManifestFilename)
	}
	return content, nil
}

// IsManifestEntry reports whether the last path segment of name, split on either
// separator, is manifest.json.
func IsManifestEntry(name string) bool {
	return name[strings.LastIndexAny(name, "/\\")+1:] == contracts.EmbeddedManifestFilename
}

func entryName(file archiver.File) string {
	switch header := file.Header.(type) {
	case zip.FileHeader:
		return header.Name
	case *zip.FileHeader:
		return header.Name
	default:
		return file.Name()
	}
}
