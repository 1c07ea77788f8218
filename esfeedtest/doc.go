// Package esfeedtest provides an in-memory origin for testing code built on esfeed.
//
// The Server speaks the same paginated Atom-style JSON as a real origin:
//
//	func TestReadStream(t *testing.T) {
//	    server := esfeedtest.NewServer(esfeedtest.WithPageSize(2))
//	    defer server.Close()
//
//	    client := esfeed.NewClient(server.URL(), esfeed.WithHTTPClient(server.Client()))
//	    err := client.PublishEvent(t.Context(), "orders", "OrderPlaced", map[string]any{"id": 1})
//	    // ...
//	    for event, err := range client.Read(t.Context(), "orders") {
//	        // ...
//	    }
//	}
//
// Pages hold PageSize events. The newest page is served as the head of the stream.
// A page links to the next newer page with "previous" once it is full, and to older
// pages with "next" and "last".
package esfeedtest
