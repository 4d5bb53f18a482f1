package contracts

import (
	"fmt"
	"net/url"
)

// CheckLinkPolicy rejects links that are neither https nor plain http on a loopback host.
func CheckLinkPolicy(address url.URL) error {
	switch address.Scheme {
	case "https":
		return nil
	case "http":
		if isLoopback(address.Hostname()) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q, please use https", ErrInsecureURL, address.String())
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
