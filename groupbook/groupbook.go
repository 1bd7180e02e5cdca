// Package groupbook keeps a local record of the groups this wallet deployed
// or touched, so commands can accept a group name instead of an address.
package groupbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/tranvictor/circles-groups/common"
	"github.com/tranvictor/circles-groups/groups"
)

const (
	KindStandard = "standard"
	KindBase     = "base"
)

var (
	ErrNoMatch   = errors.New("no group in the local book matches")
	ErrAmbiguous = errors.New("more than one group in the local book matches")
)

type Entry struct {
	Address   string    `json:"address"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	Owner     string    `json:"owner,omitempty"`
	TxHash    string    `json:"txHash,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Book struct {
	path string
	mu   sync.Mutex
	data map[string]Entry
}

type bookFile struct {
	Groups map[string]Entry `json:"groups"`
}

func DefaultPath(dir string) string {
	return filepath.Join(dir, "groups.json")
}

// Open loads the book at path. A missing file is an empty book.
func Open(path string) (*Book, error) {
	b := &Book{path: path, data: map[string]Entry{}}
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, err
	}
	f := bookFile{}
	if err := json.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("%s is corrupted: %w", path, err)
	}
	for k, e := range f.Groups {
		b.data[strings.ToLower(k)] = e
	}
	return b, nil
}

func (b *Book) Get(addr string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, found := b.data[strings.ToLower(addr)]
	return e, found
}

// Put records e and persists the book. Fields left empty keep their
// previous value.
func (b *Book) Put(e Entry) error {
	addr, err := common.NormalizeAddress(e.Address)
	if err != nil {
		return err
	}
	e.Address = addr

	b.mu.Lock()
	defer b.mu.Unlock()
	if old, found := b.data[addr]; found {
		e = merge(old, e)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	b.data[addr] = e
	return b.persist()
}

func merge(old, e Entry) Entry {
	if e.Name == "" {
		e.Name = old.Name
	}
	if e.Symbol == "" {
		e.Symbol = old.Symbol
	}
	if e.Kind == "" {
		e.Kind = old.Kind
	}
	if e.Owner == "" {
		e.Owner = old.Owner
	}
	if e.TxHash == "" {
		e.TxHash = old.TxHash
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = old.CreatedAt
	}
	return e
}

func (b *Book) persist() error {
	content, err := json.MarshalIndent(bookFile{Groups: b.data}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(b.path, content, 0o600)
}

// All returns every entry, newest first.
func (b *Book) All() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, 0, len(b.data))
	for _, e := range b.data {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Address < out[j].Address
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// FuzzySource lets sahilm/fuzzy search entries by name, symbol and address.
type FuzzySource []Entry

func (s FuzzySource) Len() int {
	return len(s)
}

func (s FuzzySource) String(i int) string {
	return fmt.Sprintf("%s %s %s", s[i].Name, s[i].Symbol, s[i].Address)
}

// Resolve turns a group hint into an address. Addresses pass through
// normalized. A hint starting with 0x must be a full address. Anything
// else must equal one entry's name or symbol, or fuzzy match exactly one
// entry.
func (b *Book) Resolve(hint string) (Entry, error) {
	hint = strings.TrimSpace(hint)
	if common.IsAddress(hint) {
		addr, err := common.NormalizeAddress(hint)
		if err != nil {
			return Entry{}, err
		}
		if e, found := b.Get(addr); found {
			return e, nil
		}
		return Entry{Address: addr}, nil
	}
	if hint == "" {
		return Entry{}, fmt.Errorf("%w: empty group", ErrNoMatch)
	}
	if strings.HasPrefix(strings.ToLower(hint), "0x") {
		return Entry{}, fmt.Errorf("%w: %q is not a valid group address", groups.ErrInvalidInput, hint)
	}
	source := FuzzySource(b.All())
	var exact []Entry
	for _, e := range source {
		if strings.EqualFold(e.Name, hint) || strings.EqualFold(e.Symbol, hint) {
			exact = append(exact, e)
		}
	}
	switch len(exact) {
	case 1:
		return exact[0], nil
	case 0:
	default:
		return Entry{}, ambiguous(hint, exact)
	}
	matches := fuzzy.FindFrom(hint, source)
	switch len(matches) {
	case 0:
		return Entry{}, fmt.Errorf("%w %q", ErrNoMatch, hint)
	case 1:
		return source[matches[0].Index], nil
	}
	candidates := make([]Entry, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, source[m.Index])
	}
	return Entry{}, ambiguous(hint, candidates)
}

func ambiguous(hint string, candidates []Entry) error {
	names := make([]string, 0, len(candidates))
	for _, e := range candidates {
		names = append(names, fmt.Sprintf("%s (%s)", e.Name, e.Address))
	}
	return fmt.Errorf("%w: %q matches %s, use the group address", ErrAmbiguous, hint, strings.Join(names, ", "))
}
