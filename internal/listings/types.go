package listings

import "encoding/json"

// Listing is the canonical listing shape consumed by the frontend, regardless
// of which payload variant the listing backend returned it in.
type Listing struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Price     float64  `json:"price"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Subdomain string   `json:"subdomain,omitempty"`
}

// Page is the canonical search result page.
type Page struct {
	Items []Listing `json:"items"`
	Total int       `json:"total"`
}

// upstreamEnvelope covers the two wrapped payload variants the listing
// backend produces depending on endpoint version: {"items": [...]} and
// {"properties": [...]}. The bare-array variant is handled separately.
type upstreamEnvelope struct {
	Items      []Listing `json:"items"`
	Properties []Listing `json:"properties"`
	Total      *int      `json:"total"`
}

// NormalizePage folds the three upstream payload shapes into one Page.
// An explicit total is kept when present, else the item count is used.
func NormalizePage(raw json.RawMessage) (*Page, error) {
	trimmed := trimLeadingSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Listing
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return &Page{Items: items, Total: len(items)}, nil
	}

	var envelope upstreamEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	items := envelope.Items
	if items == nil {
		items = envelope.Properties
	}
	if items == nil {
		items = []Listing{}
	}

	total := len(items)
	if envelope.Total != nil {
		total = *envelope.Total
	}

	return &Page{Items: items, Total: total}, nil
}

func trimLeadingSpace(raw []byte) []byte {
	for i, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return raw[i:]
		}
	}
	return nil
}
