package search

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"

	"github.com/unowned-ai/daybook/pkg/journal"
	"github.com/unowned-ai/daybook/pkg/logging"
)

var indexLog = logging.ForComponent(logging.CompIndex)

// DefaultMaxAge is the staleness window: snapshots older than this are
// rebuilt before answering a query.
const DefaultMaxAge = 5 * time.Minute

// State of the index lifecycle.
type State int32

const (
	StateEmpty State = iota
	StateBuilding
	StateReady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Result is a single search hit: the entry, its full text, and the original
// (non-normalized) query it matched, for downstream highlighting.
type Result struct {
	Date  journal.Date `json:"date"`
	Text  string       `json:"text"`
	Query string       `json:"query"`
}

// snapshot is one complete, internally consistent build of the index. It is
// replaced wholesale on rebuild, never mutated.
type snapshot struct {
	words   map[string][]journal.Date
	content map[journal.Date]string
	builtAt time.Time
}

// Index answers free-text queries over the full entry corpus. It holds an
// atomically-replaceable snapshot; queries never observe a half-built one.
type Index struct {
	store  *journal.Store
	maxAge time.Duration

	snap  atomic.Pointer[snapshot]
	state atomic.Int32
	stale atomic.Bool

	// group collapses concurrent rebuild requests into one corpus scan.
	group singleflight.Group
}

// New creates an index over store. A non-positive maxAge falls back to
// DefaultMaxAge.
func New(store *journal.Store, maxAge time.Duration) *Index {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Index{store: store, maxAge: maxAge}
}

// State reports the current lifecycle state.
func (ix *Index) State() State {
	return State(ix.state.Load())
}

// MarkStale forces the next refresh to rebuild regardless of snapshot age.
func (ix *Index) MarkStale() {
	ix.stale.Store(true)
}

// RefreshIfStale rebuilds the snapshot from a full corpus scan when it is
// missing, explicitly marked stale, or older than the staleness window.
// Concurrent callers share a single in-flight build. A failed or cancelled
// build leaves the previous snapshot untouched.
func (ix *Index) RefreshIfStale(ctx context.Context) error {
	if ix.fresh() {
		return nil
	}

	_, err, _ := ix.group.Do("rebuild", func() (interface{}, error) {
		// A caller that queued behind a finished build sees a fresh
		// snapshot here and skips the redundant scan.
		if ix.fresh() {
			return nil, nil
		}
		return nil, ix.rebuild(ctx)
	})
	return err
}

func (ix *Index) fresh() bool {
	snap := ix.snap.Load()
	if snap == nil || ix.stale.Load() {
		return false
	}
	return time.Since(snap.builtAt) < ix.maxAge
}

func (ix *Index) rebuild(ctx context.Context) error {
	ix.state.Store(int32(StateBuilding))
	defer func() {
		if ix.snap.Load() != nil {
			ix.state.Store(int32(StateReady))
		} else {
			ix.state.Store(int32(StateEmpty))
		}
	}()

	started := time.Now()
	entries, err := ix.store.ListAll(ctx)
	if err != nil {
		indexLog.Warn("index rebuild abandoned", "error", err.Error())
		return err
	}

	words := make(map[string][]journal.Date)
	content := make(map[journal.Date]string, len(entries))
	for _, entry := range entries {
		content[entry.Date] = entry.Text
		for _, token := range lo.Uniq(Tokenize(entry.Text)) {
			words[token] = append(words[token], entry.Date)
		}
	}

	ix.snap.Store(&snapshot{
		words:   words,
		content: content,
		builtAt: time.Now(),
	})
	ix.stale.Store(false)

	indexLog.Debug("index rebuilt",
		"entries", len(entries),
		"tokens", len(words),
		"elapsed", time.Since(started).String())
	return nil
}

// Search returns every entry matching query, ordered by ascending date. An
// empty or whitespace-only query yields an empty result set, not an error.
//
// A date matches when an indexed token and the normalized query contain each
// other as substrings in either direction; an exact token hit is the
// degenerate case of both. The reverse direction (query contains token) is
// deliberately permissive and load-bearing: it is long-standing observable
// behavior.
func (ix *Index) Search(ctx context.Context, query string) ([]Result, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Result{}, nil
	}

	if err := ix.RefreshIfStale(ctx); err != nil {
		return nil, err
	}

	snap := ix.snap.Load()
	if snap == nil {
		return []Result{}, nil
	}

	matched := make(map[journal.Date]struct{})
	for token, dates := range snap.words {
		if strings.Contains(token, q) || strings.Contains(q, token) {
			for _, d := range dates {
				matched[d] = struct{}{}
			}
		}
	}

	dates := lo.Keys(matched)
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	results := make([]Result, 0, len(dates))
	for _, d := range dates {
		results = append(results, Result{Date: d, Text: snap.content[d], Query: query})
	}
	return results, nil
}
