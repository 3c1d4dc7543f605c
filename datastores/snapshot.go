package datastores

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ugorji/go/codec"
	"gopkg.in/yaml.v3"
)

// snapshotVersion is bumped every time the snapshot layout changes.
const snapshotVersion = 1

// snapshot is the persisted form of an [AddressBook]. Contacts are kept in
// insertion order and only carry plain strings.
type snapshot struct {
	Version  int             `codec:"version"  yaml:"version"`
	Contacts []snapshotEntry `codec:"contacts" yaml:"contacts"`
}

type snapshotEntry struct {
	ID       string `codec:"id"       yaml:"id"`
	Name     string `codec:"name"     yaml:"name"`
	Phone    string `codec:"phone"    yaml:"phone"`
	Birthday string `codec:"birthday" yaml:"birthday"`
}

// newSnapshot refuses records that would not load back, such as zero
// records that never went through [NewRecord].
func newSnapshot(rs []*Record) (*snapshot, error) {
	s := &snapshot{Version: snapshotVersion, Contacts: make([]snapshotEntry, 0, len(rs))}
	for i, r := range rs {
		err := r.validate()
		if err != nil {
			return nil, fmt.Errorf("contact %d: %w", i, err)
		}
		s.Contacts = append(s.Contacts, snapshotEntry{
			ID:       r.id.String(),
			Name:     r.name,
			Phone:    r.phone,
			Birthday: r.birthday,
		})
	}
	return s, nil
}

// records validates the snapshot and rebuilds its records.
// Entries without an id get a fresh one.
func (s *snapshot) records() ([]*Record, error) {
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}

	rs := make([]*Record, 0, len(s.Contacts))
	for i, e := range s.Contacts {
		r, err := NewRecord(e.Name, e.Phone, e.Birthday)
		if err != nil {
			return nil, fmt.Errorf("%w: contact %d: %w", ErrCorruptSnapshot, i, err)
		}
		if e.ID != "" {
			err = r.id.UnmarshalText([]byte(e.ID))
			if err != nil {
				return nil, fmt.Errorf("%w: contact %d: id: %w", ErrCorruptSnapshot, i, err)
			}
		}
		rs = append(rs, r)
	}
	return rs, nil
}

// Format is a serialization of address book snapshots.
type Format struct {
	Name       string
	Extensions []string

	encode func(io.Writer, *snapshot) error
	decode func(io.Reader, *snapshot) error
}

//nolint: gochecknoglobals // immutable after init
var (
	msgpackHandle = &codec.MsgpackHandle{}
	jsonHandle    = &codec.JsonHandle{Indent: 2}

	FormatMsgpack = &Format{
		Name:       "msgpack",
		Extensions: []string{".msgpack", ".mpk", ".db"},
		encode:     func(w io.Writer, s *snapshot) error { return codec.NewEncoder(w, msgpackHandle).Encode(s) },
		decode:     func(r io.Reader, s *snapshot) error { return codec.NewDecoder(r, msgpackHandle).Decode(s) },
	}
	FormatJSON = &Format{
		Name:       "json",
		Extensions: []string{".json"},
		encode: func(w io.Writer, s *snapshot) error {
			err := codec.NewEncoder(w, jsonHandle).Encode(s)
			if err != nil {
				return err
			}
			_, err = io.WriteString(w, "\n")
			return err
		},
		decode: func(r io.Reader, s *snapshot) error { return codec.NewDecoder(r, jsonHandle).Decode(s) },
	}
	FormatYAML = &Format{
		Name:       "yaml",
		Extensions: []string{".yaml", ".yml"},
		encode: func(w io.Writer, s *snapshot) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2) //nolint: mnd // conventional
			err := enc.Encode(s)
			if err != nil {
				return err
			}
			return enc.Close()
		},
		decode: func(r io.Reader, s *snapshot) error { return yaml.NewDecoder(r).Decode(s) },
	}

	formats = newFormatRegistry(FormatMsgpack, FormatJSON, FormatYAML)
)

// formatRegistry looks formats up by name and by file extension.
// The first format given is the default one.
type formatRegistry struct {
	ordered     []*Format
	byName      map[string]*Format
	byExtension map[string]*Format
}

func newFormatRegistry(fs ...*Format) formatRegistry {
	if len(fs) == 0 {
		panic("datastores: at least one format is required")
	}

	reg := formatRegistry{
		ordered:     fs,
		byName:      make(map[string]*Format, len(fs)),
		byExtension: make(map[string]*Format),
	}
	for _, f := range fs {
		if _, ok := reg.byName[f.Name]; ok {
			panic("datastores: duplicate format name " + f.Name)
		}
		reg.byName[f.Name] = f
		for _, ext := range f.Extensions {
			if _, ok := reg.byExtension[ext]; ok {
				panic("datastores: duplicate format extension " + ext)
			}
			reg.byExtension[ext] = f
		}
	}
	return reg
}

func (reg formatRegistry) lookup(name string) (*Format, error) {
	f, ok := reg.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

func (reg formatRegistry) forPath(path string) *Format {
	f, ok := reg.byExtension[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return reg.ordered[0]
	}
	return f
}

// FormatByName returns the format called name: msgpack, json or yaml.
func FormatByName(name string) (*Format, error) { return formats.lookup(name) }

// FormatForPath picks the format matching the extension of path,
// falling back to [FormatMsgpack].
func FormatForPath(path string) *Format { return formats.forPath(path) }

// Encode writes a snapshot of the book to w.
// Records breaking their invariants fail with [ErrValidationRejected].
func (b *AddressBook) Encode(w io.Writer, f *Format) error {
	s, err := newSnapshot(b.Records())
	if err != nil {
		return err
	}
	return f.encode(w, s)
}

// Decode replaces the content of the book with the snapshot read from r.
// The book is left untouched when decoding fails.
func (b *AddressBook) Decode(r io.Reader, f *Format) error {
	var s snapshot
	err := f.decode(r, &s)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorruptSnapshot, f.Name, err)
	}
	rs, err := s.records()
	if err != nil {
		return err
	}
	b.replace(rs)
	return nil
}
