package replication

import (
	"encoding/json"
	"sync"
)

// MemoryDoc is the in-memory fake used by single-user builds and tests. It
// implements the same last-write-wins surface as the automerge document but
// never receives remote changes on its own; tests drive SignalRemoteChange
// directly.
type MemoryDoc struct {
	mu        sync.Mutex
	scalars   map[string]any
	colls     map[string]map[string]map[string]any
	observers []func()
}

var _ Doc = (*MemoryDoc)(nil)

// NewMemoryDoc creates an empty in-memory document.
func NewMemoryDoc() *MemoryDoc {
	return &MemoryDoc{
		scalars: map[string]any{},
		colls:   map[string]map[string]map[string]any{},
	}
}

func (d *MemoryDoc) IsEmpty() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.scalars) == 0 && len(d.colls) == 0, nil
}

func (d *MemoryDoc) Scalar(key string) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scalars[key], nil
}

func (d *MemoryDoc) Entries(collection string) (map[string]map[string]any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]map[string]any, len(d.colls[collection]))
	for id, fields := range d.colls[collection] {
		out[id] = deepCopyFields(fields)
	}
	return out, nil
}

func (d *MemoryDoc) Transact(fn func(tx Txn) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(&memoryTxn{doc: d})
}

func (d *MemoryDoc) Observe(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, fn)
}

// SignalRemoteChange invokes every observer, mimicking the arrival of a
// remote change. Exposed for tests.
func (d *MemoryDoc) SignalRemoteChange() {
	d.mu.Lock()
	observers := append([]func(){}, d.observers...)
	d.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}

func (d *MemoryDoc) Save() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return json.Marshal(map[string]any{
		"scalars":     d.scalars,
		"collections": d.colls,
	})
}

type memoryTxn struct {
	doc *MemoryDoc
}

var _ Txn = (*memoryTxn)(nil)

func (t *memoryTxn) SetScalar(key string, value any) error {
	t.doc.scalars[key] = value
	return nil
}

func (t *memoryTxn) DeleteScalar(key string) error {
	delete(t.doc.scalars, key)
	return nil
}

func (t *memoryTxn) SetEntry(collection, id string, fields map[string]any) error {
	coll, ok := t.doc.colls[collection]
	if !ok {
		coll = map[string]map[string]any{}
		t.doc.colls[collection] = coll
	}
	coll[id] = deepCopyFields(fields)
	return nil
}

func (t *memoryTxn) DeleteEntry(collection, id string) error {
	delete(t.doc.colls[collection], id)
	return nil
}

func deepCopyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch vv := v.(type) {
		case map[string]any:
			out[k] = deepCopyFields(vv)
		case []any:
			out[k] = append([]any(nil), vv...)
		case []string:
			out[k] = append([]string(nil), vv...)
		case map[string]int:
			m := make(map[string]int, len(vv))
			for mk, mv := range vv {
				m[mk] = mv
			}
			out[k] = m
		default:
			out[k] = v
		}
	}
	return out
}
