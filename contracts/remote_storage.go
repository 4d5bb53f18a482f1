package contracts

import (
	"io"
	"net/url"
)

type Downloader interface {
	Download(address url.URL) (io.ReadCloser, error)
}
