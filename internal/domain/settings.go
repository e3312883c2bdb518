package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
)

// EmailGroup is one of the three email preference groups a user configures.
type EmailGroup string

const (
	EmailGroupIssuer    EmailGroup = "issuer"
	EmailGroupBoth      EmailGroup = "both"
	EmailGroupFulfiller EmailGroup = "fulfiller"
)

// EmailOptions is stored as JSON in settings.emails.
type EmailOptions struct {
	Issuer    map[string]bool `json:"issuer"`
	Both      map[string]bool `json:"both"`
	Fulfiller map[string]bool `json:"fulfiller"`
}

type Settings struct {
	ID     int64        `json:"id" db:"id"`
	Emails EmailOptions `json:"emails" db:"emails"`
}

// Merged flattens the three groups; on a name clash fulfiller wins over both,
// and both wins over issuer.
func (o EmailOptions) Merged() map[string]bool {
	merged := make(map[string]bool, len(o.Issuer)+len(o.Both)+len(o.Fulfiller))
	for _, group := range []map[string]bool{o.Issuer, o.Both, o.Fulfiller} {
		for name, enabled := range group {
			merged[name] = enabled
		}
	}
	return merged
}

// Enabled returns the enabled setting names, sorted.
func (o EmailOptions) Enabled() []string {
	var names []string
	for name, enabled := range o.Merged() {
		if enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (o EmailOptions) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *EmailOptions) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	case nil:
		*o = EmailOptions{}
		return nil
	default:
		return errors.New("unsupported type for email options")
	}
}
