package esfeed

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Page is one page of a stream as returned by the origin.
// The origin lists entries newest first.
type Page struct {
	// URI the page was fetched from.
	URI string
	// Links of the page itself.
	Links Links
	// HeadOfStream is reported by some origins on the newest page. It is informational.
	// Traversal only follows the links.
	HeadOfStream bool

	entries []Entry
}

// Entries returns the entries of the page oldest first.
func (p *Page) Entries() []Entry {
	entries := slices.Clone(p.entries)
	slices.Reverse(entries)
	return entries
}

// Len is the number of entries on the page.
func (p *Page) Len() int {
	return len(p.entries)
}

// Self returns the canonical URI of the page, falling back to the URI it was fetched from.
func (p *Page) Self() string {
	if uri, ok := p.Links.Get(RelSelf); ok && uri != "" {
		return uri
	}

	return p.URI
}

// Entry references a single event on a Page.
type Entry struct {
	// ID is the Atom id of the entry.
	ID string
	// Title is the Atom title, usually "{eventNumber}@{stream}".
	Title string
	// Summary is the Atom summary, usually the event type.
	Summary string
	// Updated is the Atom timestamp as sent by the origin.
	Updated string
	Links   Links
}

// Alternate is the URI of the full event body.
func (e Entry) Alternate() string {
	return e.Links[RelAlternate]
}

// Number parses the event number from the title. It returns -1 if the title has none.
func (e Entry) Number() int64 {
	head, _, found := strings.Cut(e.Title, "@")
	if !found {
		return -1
	}

	n, err := strconv.ParseInt(head, 10, 64)
	if err != nil {
		return -1
	}

	return n
}

// decodePage validates and decodes a page payload.
func decodePage(uri string, body []byte) (*Page, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("page is not valid json")
	}

	var (
		doc     = gjson.ParseBytes(body)
		rawLink = doc.Get("links")
		rawList = doc.Get("entries")
	)

	if !doc.IsObject() {
		return nil, fmt.Errorf("page is not an object")
	}

	links, err := decodeLinks(rawLink)
	if err != nil {
		return nil, fmt.Errorf("page links: %w", err)
	}

	if !rawList.IsArray() {
		return nil, fmt.Errorf("page entries must be an array")
	}

	page := &Page{
		URI:          uri,
		Links:        links,
		HeadOfStream: doc.Get("headOfStream").Bool(),
	}

	for i, raw := range rawList.Array() {
		entry, err := decodeEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		page.entries = append(page.entries, entry)
	}

	return page, nil
}

func decodeEntry(raw gjson.Result) (Entry, error) {
	if !raw.IsObject() {
		return Entry{}, fmt.Errorf("entry is not an object")
	}

	links, err := decodeLinks(raw.Get("links"))
	if err != nil {
		return Entry{}, err
	}

	if links[RelAlternate] == "" {
		return Entry{}, fmt.Errorf("missing %q link", RelAlternate)
	}

	summary := raw.Get("summary")
	text := summary.String()
	if summary.IsObject() || summary.IsArray() {
		text = summary.Raw
	}

	return Entry{
		ID:      raw.Get("id").String(),
		Title:   raw.Get("title").String(),
		Summary: text,
		Updated: raw.Get("updated").String(),
		Links:   links,
	}, nil
}

// decodeLinks requires an array of {relation, uri} objects.
func decodeLinks(raw gjson.Result) (Links, error) {
	if !raw.IsArray() {
		return nil, fmt.Errorf("links must be an array")
	}

	var links []Link
	for _, item := range raw.Array() {
		relation, uri := item.Get("relation"), item.Get("uri")
		if relation.Type != gjson.String || uri.Type != gjson.String {
			return nil, fmt.Errorf("link needs a relation and an uri: %s", item.Raw)
		}

		links = append(links, Link{Relation: relation.Str, URI: uri.Str})
	}

	return NewLinks(links), nil
}

// NewPage creates a Page for a custom Fetcher. Entries are given in origin order, newest first.
func NewPage(uri string, links []Link, entries ...Entry) *Page {
	return &Page{
		URI:     uri,
		Links:   NewLinks(links),
		entries: slices.Clone(entries),
	}
}
