package analytics

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	domain "github.com/example/shoe-catalog/domain/catalog"
)

// DefaultMaxKeys bounds the number of distinct search terms and products tracked.
const DefaultMaxKeys = 1000

// DefaultTopN is the length of the ranked lists in a summary.
const DefaultTopN = 10

// TermCount is a ranked search term or brand.
type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// ProductCount is the add-to-cart tally of one product.
type ProductCount struct {
	ProductID uint  `json:"product_id"`
	Units     int64 `json:"units"`
	Adds      int64 `json:"adds"`
}

// Summary is the read-only view of the collected analytics.
type Summary struct {
	TotalQueries      int64          `json:"total_queries"`
	ZeroResultQueries int64          `json:"zero_result_queries"`
	TotalCartAdds     int64          `json:"total_cart_adds"`
	TopSearches       []TermCount    `json:"top_searches"`
	TopBrands         []TermCount    `json:"top_brands"`
	TopProducts       []ProductCount `json:"top_products"`
	LastEventAt       *time.Time     `json:"last_event_at,omitempty"`
}

// Store keeps bounded, thread-safe analytics counters. Once a map holds
// maxKeys entries, new keys are dropped while existing ones keep counting.
type Store struct {
	mu          sync.RWMutex
	maxKeys     int
	queries     int64
	zeroResults int64
	cartAdds    int64
	searches    map[string]int64
	brands      map[string]int64
	products    map[uint]*ProductCount
	lastEventAt time.Time
}

// NewStore creates a store with DefaultMaxKeys.
func NewStore() *Store {
	return NewStoreWithLimit(DefaultMaxKeys)
}

// NewStoreWithLimit creates a store that tracks at most maxKeys distinct keys
// per counter.
func NewStoreWithLimit(maxKeys int) *Store {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	return &Store{
		maxKeys:  maxKeys,
		searches: make(map[string]int64),
		brands:   make(map[string]int64),
		products: make(map[uint]*ProductCount),
	}
}

// RecordQuery counts a catalog query. Search terms are trimmed and
// lower-cased; empty terms and the all-brands selector are not ranked.
func (s *Store) RecordQuery(search, brand string, resultCount int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries++
	if resultCount == 0 {
		s.zeroResults++
	}
	if term := strings.ToLower(strings.TrimSpace(search)); term != "" {
		increment(s.searches, term, s.maxKeys)
	}
	if brand != "" && brand != domain.AllBrands {
		increment(s.brands, brand, s.maxKeys)
	}
	s.touch(at)
}

// RecordCartAdd counts an add-to-cart of quantity units.
func (s *Store) RecordCartAdd(productID uint, quantity int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartAdds++
	pc, ok := s.products[productID]
	if !ok {
		if len(s.products) >= s.maxKeys {
			s.touch(at)
			return
		}
		pc = &ProductCount{ProductID: productID}
		s.products[productID] = pc
	}
	pc.Adds++
	pc.Units += int64(quantity)
	s.touch(at)
}

// Summary returns the totals and the top n of each ranking. n <= 0 uses DefaultTopN.
func (s *Store) Summary(n int) Summary {
	if n <= 0 {
		n = DefaultTopN
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]ProductCount, 0, len(s.products))
	for _, pc := range s.products {
		products = append(products, *pc)
	}
	slices.SortFunc(products, func(a, b ProductCount) int {
		if c := cmp.Compare(b.Units, a.Units); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})

	sum := Summary{
		TotalQueries:      s.queries,
		ZeroResultQueries: s.zeroResults,
		TotalCartAdds:     s.cartAdds,
		TopSearches:       topTerms(s.searches, n),
		TopBrands:         topTerms(s.brands, n),
		TopProducts:       products[:min(n, len(products))],
	}
	if !s.lastEventAt.IsZero() {
		at := s.lastEventAt
		sum.LastEventAt = &at
	}
	return sum
}

func (s *Store) touch(at time.Time) {
	if at.After(s.lastEventAt) {
		s.lastEventAt = at
	}
}

func increment(counts map[string]int64, key string, maxKeys int) {
	if _, ok := counts[key]; !ok && len(counts) >= maxKeys {
		return
	}
	counts[key]++
}

// topTerms ranks by count, then alphabetically.
func topTerms(counts map[string]int64, n int) []TermCount {
	terms := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, TermCount{Term: term, Count: count})
	}
	slices.SortFunc(terms, func(a, b TermCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Term, b.Term)
	})
	return terms[:min(n, len(terms))]
}
