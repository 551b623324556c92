package domain

import (
	"strings"
	"time"
)

// DataModelInfo is one entry of the catalog returned by the model listing endpoint.
type DataModelInfo struct {
	Type              string                 `json:"type" yaml:"type"`
	ID                string                 `json:"id" yaml:"id"`
	Name              string                 `json:"name" yaml:"name"`
	DataModelVersions []DataModelVersionInfo `json:"dataModelVersions" yaml:"dataModelVersions"`
}

type DataModelVersionInfo struct {
	Type         string `json:"type" yaml:"type"`
	ID           string `json:"id" yaml:"id"`
	CreationDate string `json:"creationDate" yaml:"creationDate"`
	DataModelID  string `json:"dataModelId" yaml:"dataModelId"`
	Name         string `json:"name" yaml:"name"`
}

// creationDateLayouts are tried in order when interpreting CreationDate.
var creationDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CreatedAt parses CreationDate. ok is false when no known layout matches.
func (v DataModelVersionInfo) CreatedAt() (t time.Time, ok bool) {
	raw := strings.TrimSpace(v.CreationDate)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range creationDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
