package core

import (
	"errors"
	"io"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/smarty/packcheck/contracts"
)

type RetryClient struct {
	inner    contracts.Downloader
	maxRetry int
	sleep    func(duration time.Duration)
	logger   *log.Logger
}

func NewRetryClient(inner contracts.Downloader, maxRetry int, sleep func(duration time.Duration), logger *log.Logger) *RetryClient {
	return &RetryClient{inner: inner, maxRetry: maxRetry, sleep: sleep, logger: logger}
}

func (this *RetryClient) Download(address url.URL) (body io.ReadCloser, err error) {
	for x := 0; x <= this.maxRetry; x++ {
		body, err = this.inner.Download(address)
		if err == nil {
			return body, nil
		}
		if !errors.Is(err, contracts.ErrRetry) {
			return nil, err
		}
		if x < this.maxRetry {
			this.logger.Warn("download failed, retry imminent", "url", address.String(), "err", err)
			this.sleep(time.Second * 3)
		}
	}
	return nil, err
}
