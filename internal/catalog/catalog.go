package catalog

// Volume is a search hit, shaped so a client can post it to /books as is.
type Volume struct {
	ExternalID  string   `json:"externalId"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	InfoLink    string   `json:"infoLink"`
}

const (
	DefaultMaxResults = 20
	// MaxResultsLimit is the largest page the upstream API serves.
	MaxResultsLimit = 40
)
