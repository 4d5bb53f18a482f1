// Package schema embeds the default JSON Schemas for packs and versions documents.
package schema

import (
	"embed"
	"io"
)

const (
	PacksFilename    = "packs.schema.json"
	VersionsFilename = "versions.schema.json"
)

//go:embed packs.schema.json versions.schema.json
var files embed.FS

func Open(name string) (io.ReadCloser, error) {
	return files.Open(name)
}
