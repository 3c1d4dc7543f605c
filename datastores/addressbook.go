package datastores

import (
	"slices"
	"strings"
	"sync"
)

// AddressBook maps contact names to records, keeping insertion order.
// Adding a record under an existing name replaces the previous one in place.
type AddressBook struct {
	mu      sync.Mutex
	index   map[string]int
	records []*Record
}

// NewAddressBook returns a book holding rs. Later records win over earlier
// ones sharing the same name.
func NewAddressBook(rs ...*Record) *AddressBook {
	b := &AddressBook{index: make(map[string]int, len(rs))}
	for _, r := range rs {
		b.add(r)
	}
	return b
}

func (b *AddressBook) AddRecord(r *Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.add(r)
}

func (b *AddressBook) add(r *Record) {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if i, ok := b.index[r.name]; ok {
		b.records[i] = r
		return
	}
	b.index[r.name] = len(b.records)
	b.records = append(b.records, r)
}

func (b *AddressBook) RemoveRecord(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.index[name]
	if !ok {
		return
	}
	delete(b.index, name)
	b.records = slices.Delete(b.records, i, i+1)
	for j := i; j < len(b.records); j++ {
		b.index[b.records[j].name] = j
	}
}

// GetRecord returns the record stored under name and whether there was one.
func (b *AddressBook) GetRecord(name string) (*Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.index[name]
	if !ok {
		return nil, false
	}
	return b.records[i], true
}

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.records)
}

func (b *AddressBook) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}

// SearchByPhone returns the records with a phone containing query.
// Records without a phone never match.
func (b *AddressBook) SearchByPhone(query string) []*Record {
	return b.filter(func(r *Record) bool {
		return r.phone != "" && strings.Contains(r.phone, query)
	})
}

// SearchByName returns the records with a name containing query.
func (b *AddressBook) SearchByName(query string) []*Record {
	return b.filter(func(r *Record) bool {
		return strings.Contains(r.name, query)
	})
}

// Search returns the records matching query by name or by phone.
func (b *AddressBook) Search(query string) []*Record {
	return b.filter(func(r *Record) bool {
		return strings.Contains(r.name, query) ||
			r.phone != "" && strings.Contains(r.phone, query)
	})
}

func (b *AddressBook) filter(match func(*Record) bool) []*Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	var results []*Record
	for _, r := range b.records {
		if match(r) {
			results = append(results, r)
		}
	}
	return results
}

// replace swaps the whole content of the book for rs.
func (b *AddressBook) replace(rs []*Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.index = make(map[string]int, len(rs))
	b.records = nil
	for _, r := range rs {
		b.add(r)
	}
}
