package resolver

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Response is the resolver's JSON document.
// Every field is optional; a missing Data is a terminal condition for the request.
type Response struct {
	Data *Data `json:"data,omitempty" jsonschema:"description=Resolved media item; absent when the resolver found nothing"`
}

// Data describes a resolved media item.
type Data struct {
	Title       Text       `json:"title,omitempty"`
	Description Text       `json:"description,omitempty"`
	Size        Text       `json:"size,omitempty" jsonschema:"description=Human readable duration or size label"`
	Thumbnail   Text       `json:"thumbnail,omitempty"`
	Author      Text       `json:"author,omitempty"`
	Source      Text       `json:"source,omitempty" jsonschema:"description=Canonical URL of the media page"`
	Downloads   []Download `json:"downloads,omitempty"`
}

// Download is one candidate media location offered by the resolver.
type Download struct {
	URL      Text `json:"url,omitempty"`
	FormatID Text `json:"format_id,omitempty"`
	Size     Text `json:"size,omitempty"`
}

// Text is a string field that also accepts JSON numbers and booleans.
// The resolver is versionless and has been seen to send sizes and ids as numbers.
// Objects and arrays leave the field empty.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null", strings.HasPrefix(raw, "{"), strings.HasPrefix(raw, "["):
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case raw == "true" || raw == "false":
		*t = Text(raw)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("text field: unsupported value %s", raw)
		}
		*t = Text(n.String())
		return nil
	}
}

// String returns the trimmed value.
func (t Text) String() string {
	return strings.TrimSpace(string(t))
}
