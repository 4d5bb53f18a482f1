package contracts

import (
	"encoding/json"
	"net/url"
)

type URL url.URL

func (this *URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(this.Value().String())
}

func (this *URL) UnmarshalJSON(p []byte) error {
	raw := string(p)
	if raw == "null" || raw == `"null"` {
		return nil
	}
	var text string
	err := json.Unmarshal(p, &text)
	if err != nil {
		return err
	}
	address, err := url.Parse(text)
	if err == nil {
		*this = URL(*address)
	}
	return err
}

func (this URL) Value() *url.URL {
	standard := url.URL(this)
	return &standard
}
