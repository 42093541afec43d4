package workspace

// RecordState tracks an optimistically added record until the server confirms it.
type RecordState int

const (
	Pending RecordState = iota
	Confirmed
	Failed
)

func (s RecordState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Entry is one row of a local list.
type Entry[T any] struct {
	Item  T
	State RecordState
}

func confirmed[T any](items []T) []Entry[T] {
	entries := make([]Entry[T], len(items))
	for i, item := range items {
		entries[i] = Entry[T]{Item: item, State: Confirmed}
	}
	return entries
}

// reconcile merges a fresh server list into the local one. Every fetched
// record is Confirmed and uses the server copy, in server order. Pending
// records the server does not know become Failed; Failed records are kept
// until dismissed. Failed rows come first, in their previous order.
func reconcile[T any](local []Entry[T], fetched []T, id func(T) string) []Entry[T] {
	known := make(map[string]bool, len(fetched))
	for _, item := range fetched {
		known[id(item)] = true
	}

	var out []Entry[T]
	for _, e := range local {
		if e.State == Confirmed || known[id(e.Item)] {
			continue
		}
		out = append(out, Entry[T]{Item: e.Item, State: Failed})
	}
	return append(out, confirmed(fetched)...)
}

// removeByID drops the entry with the given id, keeping the order of the rest.
func removeByID[T any](entries []Entry[T], id string, key func(T) string) ([]Entry[T], bool) {
	for i, e := range entries {
		if key(e.Item) == id {
			return append(entries[:i:i], entries[i+1:]...), true
		}
	}
	return entries, false
}

func items[T any](entries []Entry[T]) []T {
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.Item
	}
	return out
}
