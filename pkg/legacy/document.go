// Package legacy imports the portfolio.json document kept by earlier
// versions of the site.
//
// Import is idempotent: images whose filename is already catalogued are
// skipped, and asset files already in storage are not copied again.
package legacy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Document is the legacy portfolio.json.
type Document struct {
	Images []Entry `json:"images"`
}

// Entry is one image of the legacy document. Both the flat "camera" field
// and the split camera_make/camera_model pair are accepted.
type Entry struct {
	Filename     string       `json:"filename"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Categories   CategoryList `json:"categories"`
	Camera       string       `json:"camera"`
	CameraMake   string       `json:"camera_make"`
	CameraModel  string       `json:"camera_model"`
	Lens         string       `json:"lens"`
	Aperture     string       `json:"aperture"`
	ShutterSpeed string       `json:"shutter_speed"`
	ISO          LooseInt     `json:"iso"`
	FocalLength  string       `json:"focal_length"`
	Location     string       `json:"location"`
}

// CategoryList accepts ["Name", ...] as well as [{"name": "Name"}, ...].
type CategoryList []string

func (c *CategoryList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	names := make([]string, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err != nil {
			var obj struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(item, &obj); err != nil {
				return fmt.Errorf("categories: unsupported entry %s", item)
			}
			name = obj.Name
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	*c = names
	return nil
}

// LooseInt accepts a JSON number or a numeric string. Anything else is 0.
type LooseInt int

func (i *LooseInt) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*i = 0
			return nil
		}
		n = json.Number(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil || v < 0 {
		*i = 0
		return nil
	}
	*i = LooseInt(v)
	return nil
}

// ReadDocument decodes a legacy document.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio document: %w", err)
	}
	return &doc, nil
}

func (e Entry) cameraMakeModel() (string, string) {
	mk, model := strings.TrimSpace(e.CameraMake), strings.TrimSpace(e.CameraModel)
	if mk == "" && model == "" {
		if cam := strings.TrimSpace(e.Camera); cam != "" {
			if brand, rest, ok := strings.Cut(cam, " "); ok {
				return brand, strings.TrimSpace(rest)
			}
			return "", cam
		}
	}
	return mk, model
}
