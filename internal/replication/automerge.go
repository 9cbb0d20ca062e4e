package replication

import (
	"fmt"
	"sync"

	"github.com/automerge/automerge-go"
)

// AutomergeDoc implements the Doc port on a CRDT document. Merge semantics are
// the document's own: per-field and per-entry last-observed-write-wins, no
// vector clocks on top.
type AutomergeDoc struct {
	mu        sync.Mutex
	doc       *automerge.Doc
	observers []func()
}

var _ Doc = (*AutomergeDoc)(nil)

// NewAutomergeDoc creates an empty document.
func NewAutomergeDoc() *AutomergeDoc {
	return &AutomergeDoc{doc: automerge.New()}
}

// LoadAutomergeDoc restores a document from its serialized form, e.g. the
// relay's bootstrap payload.
func LoadAutomergeDoc(raw []byte) (*AutomergeDoc, error) {
	doc, err := automerge.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return &AutomergeDoc{doc: doc}, nil
}

// Underlying exposes the CRDT document for the sync transport. The transport
// must call SignalRemoteChange after merging remote messages.
func (d *AutomergeDoc) Underlying() *automerge.Doc {
	return d.doc
}

func (d *AutomergeDoc) IsEmpty() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	keys, err := d.doc.RootMap().Keys()
	if err != nil {
		return false, err
	}
	return len(keys) == 0, nil
}

func (d *AutomergeDoc) Scalar(key string) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.doc.RootMap().Get(key)
	if err != nil {
		return nil, err
	}
	return goValue(v)
}

func (d *AutomergeDoc) Entries(collection string) (map[string]map[string]any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.doc.RootMap().Get(collection)
	if err != nil {
		return nil, err
	}
	if v.Kind() != automerge.KindMap {
		return map[string]map[string]any{}, nil
	}
	m := v.Map()
	keys, err := m.Keys()
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]any, len(keys))
	for _, id := range keys {
		ev, err := m.Get(id)
		if err != nil {
			return nil, err
		}
		fields, err := goValue(ev)
		if err != nil {
			return nil, err
		}
		if fm, ok := fields.(map[string]any); ok {
			out[id] = fm
		}
	}
	return out, nil
}

func (d *AutomergeDoc) Transact(fn func(tx Txn) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := fn(&automergeTxn{doc: d.doc}); err != nil {
		return err
	}
	if _, err := d.doc.Commit("board update", automerge.CommitOptions{AllowEmpty: true}); err != nil {
		return fmt.Errorf("failed to commit changeset: %w", err)
	}
	return nil
}

func (d *AutomergeDoc) Observe(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, fn)
}

// SignalRemoteChange runs the registered observers. Called by the sync
// transport once remote messages have been merged into the document.
func (d *AutomergeDoc) SignalRemoteChange() {
	d.mu.Lock()
	observers := append([]func(){}, d.observers...)
	d.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}

func (d *AutomergeDoc) Save() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Save(), nil
}

type automergeTxn struct {
	doc *automerge.Doc
}

var _ Txn = (*automergeTxn)(nil)

func (t *automergeTxn) SetScalar(key string, value any) error {
	return t.doc.Path(key).Set(value)
}

func (t *automergeTxn) DeleteScalar(key string) error {
	return t.doc.RootMap().Delete(key)
}

func (t *automergeTxn) SetEntry(collection, id string, fields map[string]any) error {
	return t.doc.Path(collection, id).Set(fields)
}

func (t *automergeTxn) DeleteEntry(collection, id string) error {
	v, err := t.doc.RootMap().Get(collection)
	if err != nil {
		return err
	}
	if v.Kind() != automerge.KindMap {
		return nil
	}
	return v.Map().Delete(id)
}

// goValue converts a document value into plain Go types: strings, int64,
// float64, bool, map[string]any and []any.
func goValue(v *automerge.Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Kind() {
	case automerge.KindVoid, automerge.KindNull:
		return nil, nil
	case automerge.KindStr:
		return v.Str(), nil
	case automerge.KindInt64:
		return v.Int64(), nil
	case automerge.KindUint64:
		return int64(v.Uint64()), nil
	case automerge.KindFloat64:
		return v.Float64(), nil
	case automerge.KindBool:
		return v.Bool(), nil
	case automerge.KindMap:
		m := v.Map()
		keys, err := m.Keys()
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			mv, err := m.Get(k)
			if err != nil {
				return nil, err
			}
			gv, err := goValue(mv)
			if err != nil {
				return nil, err
			}
			out[k] = gv
		}
		return out, nil
	case automerge.KindList:
		l := v.List()
		n := l.Len()
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			lv, err := l.Get(i)
			if err != nil {
				return nil, err
			}
			gv, err := goValue(lv)
			if err != nil {
				return nil, err
			}
			out = append(out, gv)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value kind %v", v.Kind())
	}
}
