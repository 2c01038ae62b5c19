package models

// EventType describes one competition category and the kind of media a
// contestant submits for it.
type EventType struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	MediaKind     string `json:"media_kind"` // image, audio or video
	MaxFileSizeMB int64  `json:"max_file_size_mb"`
	MinArtworks   int    `json:"min_artworks"`
	MaxArtworks   int    `json:"max_artworks"`
}

// EventCatalog is the fixed set of event types the platform runs. The
// original site hard-coded the same list in its pricing table.
var EventCatalog = []EventType{
	{Type: "art", Name: "Art & Painting", MediaKind: "image", MaxFileSizeMB: 10, MinArtworks: 1, MaxArtworks: 5},
	{Type: "photography", Name: "Photography", MediaKind: "image", MaxFileSizeMB: 10, MinArtworks: 1, MaxArtworks: 5},
	{Type: "singing", Name: "Singing", MediaKind: "audio", MaxFileSizeMB: 50, MinArtworks: 1, MaxArtworks: 3},
	{Type: "dance", Name: "Dance", MediaKind: "video", MaxFileSizeMB: 200, MinArtworks: 1, MaxArtworks: 3},
}

func EventByType(eventType string) (EventType, bool) {
	for _, e := range EventCatalog {
		if e.Type == eventType {
			return e, true
		}
	}
	return EventType{}, false
}
