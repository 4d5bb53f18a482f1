package contracts

import "reflect"

// Changes keeps the records that are new or differ from their counterpart in original.
func (this PacksDocument) Changes(original PacksDocument) (filtered PacksDocument) {
	previous := make(map[string]any, len(original.Records))
	for _, record := range original.Records {
		previous[record.UID] = record.Raw
	}
	filtered.Records = make([]PackRecord, 0)
	for _, record := range this.Records {
		raw, found := previous[record.UID]
		if found && reflect.DeepEqual(raw, record.Raw) {
			continue
		}
		filtered.Records = append(filtered.Records, record)
	}
	return filtered
}
