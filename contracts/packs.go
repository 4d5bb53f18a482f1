package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// PacksDocument is a packs manifest: package identifiers mapped to package records.
// Records keep the order in which they appear in the document.
type PacksDocument struct {
	Records []PackRecord
}

type PackRecord struct {
	UID string
	Raw any
}

func (this *PacksDocument) UnmarshalJSON(raw []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delimiter, ok := token.(json.Delim); !ok || delimiter != '{' {
		return errPacksNotObject
	}

	inventory := make(map[string]struct{})
	records := make([]PackRecord, 0)
	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return err
		}
		uid, _ := token.(string)
		if _, found := inventory[uid]; found {
			return fmt.Errorf("%w: %q", ErrDuplicateUID, uid)
		}
		inventory[uid] = struct{}{}

		record := PackRecord{UID: uid}
		err = decoder.Decode(&record.Raw)
		if err != nil {
			return err
		}
		records = append(records, record)
	}

	_, err = decoder.Token()
	if err != nil {
		return err
	}
	this.Records = records
	return nil
}

// Instance returns the document in the shape expected by schema validation.
func (this PacksDocument) Instance() map[string]any {
	instance := make(map[string]any, len(this.Records))
	for _, record := range this.Records {
		instance[record.UID] = record.Raw
	}
	return instance
}

func (this PackRecord) VersionsURL() (url.URL, error) {
	fields, _ := this.Raw.(map[string]any)
	raw, ok := fields["versions_url"].(string)
	if !ok {
		return url.URL{}, errMissingVersionsURL
	}
	address, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, err
	}
	return *address, nil
}

var (
	errPacksNotObject     = errors.New("packs document must be a JSON object")
	errMissingVersionsURL = errors.New("versions_url is required to follow links")
)
