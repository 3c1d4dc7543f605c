package datastores

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SaveFile writes the book to path in the format matching its extension.
// Any previous content of path is replaced as a whole: the snapshot goes to a
// temporary file in the same directory which is then renamed over path.
func (b *AddressBook) SaveFile(path string) error {
	var buf bytes.Buffer
	err := b.Encode(&buf, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("store: save %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) //nolint: errcheck // already renamed on success

	_, err = tmp.Write(buf.Bytes())
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o600)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		return fmt.Errorf("store: save %s: %w", path, err)
	}
	return nil
}

// LoadFile replaces the content of the book with the snapshot stored at path.
// A path that does not exist yields an empty book and no error.
func (b *AddressBook) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		b.replace(nil)
		return nil
	case err != nil:
		return fmt.Errorf("store: load %s: %w", path, err)
	}

	err = b.Decode(bytes.NewReader(data), FormatForPath(path))
	if err != nil {
		return fmt.Errorf("store: load %s: %w", path, err)
	}
	return nil
}
