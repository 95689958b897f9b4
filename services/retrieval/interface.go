// File: services/retrieval/interface.go
package retrieval

import "context"

// Index names served by the retrieval sidecar.
const (
	IndexProviders = "providers"
	IndexSlots     = "slots"
)

// Scored is one ranked search hit. Distance is the raw vector distance;
// lower means a better match. Doc IDs refer back to catalog records
// (provider type keys for IndexProviders, slot IDs for IndexSlots).
type Scored struct {
	DocID    string  `json:"doc_id"`
	Text     string  `json:"text,omitempty"`
	Distance float64 `json:"distance"`
}

// Searcher is the similarity-search collaborator. Implementations give no
// guarantee of a minimum result count, and consumers must tolerate the
// collaborator being absent entirely (nil Searcher or an error) by falling
// back to rule-based selection.
type Searcher interface {
	Search(ctx context.Context, index, query string, k int) ([]Scored, error)
}
