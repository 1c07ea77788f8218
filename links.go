package esfeed

// Link relations used when traversing a stream.
const (
	RelSelf      = "self"
	RelFirst     = "first"
	RelLast      = "last"
	RelNext      = "next"
	RelPrevious  = "previous"
	RelAlternate = "alternate"
)

// Link is a single relation as it appears in a page or entry.
type Link struct {
	Relation string `json:"relation"`
	URI      string `json:"uri"`
}

// Links maps a relation name to its URI.
type Links map[string]string

// NewLinks indexes the links by relation. A relation appearing twice keeps the last URI.
func NewLinks(links []Link) Links {
	index := make(Links, len(links))
	for _, link := range links {
		index[link.Relation] = link.URI
	}

	return index
}

// Get returns the URI of the relation.
func (l Links) Get(relation string) (string, bool) {
	uri, ok := l[relation]
	return uri, ok
}

// Has reports whether the relation is present.
func (l Links) Has(relation string) bool {
	_, ok := l[relation]
	return ok
}
