package shell

import (
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/smarty/packcheck/contracts"
)

type HTTPDownloader struct {
	client *http.Client
	logger *log.Logger
}

func NewHTTPDownloader(client *http.Client, logger *log.Logger) *HTTPDownloader {
	return &HTTPDownloader{client: client, logger: logger}
}

// Download issues a single GET; any status outside 2xx fails and the body is discarded.
func (this *HTTPDownloader) Download(address url.URL) (io.ReadCloser, error) {
	request, err := http.NewRequest(http.MethodGet, address.String(), nil)
	if err != nil {
		return nil, err
	}
	response, err := this.client.Do(request)
	if err != nil {
		return nil, &contracts.TransportError{URL: address.String(), Err: err}
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		this.dump(request, response)
		_ = response.Body.Close()
		return nil, &contracts.StatusError{
			URL:        address.String(),
			StatusCode: response.StatusCode,
			Status:     response.Status,
		}
	}
	return response.Body, nil
}

func (this *HTTPDownloader) dump(request *http.Request, response *http.Response) {
	requestDump, _ := httputil.DumpRequestOut(request, false)
	responseDump, _ := httputil.DumpResponse(response, false)
	this.logger.Debugf("non-success status code: \nrequest: \n%s\nresponse:\n%s", requestDump, responseDump)
}
