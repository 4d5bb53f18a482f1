package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/smarty/packcheck/schema"
)

// OpenSchema opens the schema at path, or the embedded schema named fallback when path is blank.
func OpenSchema(path, fallback string) (document io.ReadCloser, name string, err error) {
	if path == "" {
		document, err = schema.Open(fallback)
		if err != nil {
			return nil, "", fmt.Errorf("open embedded schema %s: %w", fallback, err)
		}
		return document, fallback, nil
	}
	document, err = os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open schema: %w", err)
	}
	return document, path, nil
}
