package datastores

import (
	"encoding/base32"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ContactID identifies a [Record] independently of its name.
// Its text form is unpadded base32, free of punctuation.
type ContactID uuid.UUID

var contactIDEncoding = base32.StdEncoding.WithPadding(base32.NoPadding) //nolint: gochecknoglobals,nolintlint

func newContactID() ContactID { return ContactID(uuid.Must(uuid.NewRandom())) }

func (id ContactID) String() string { return contactIDEncoding.EncodeToString(id[:]) }

// MarshalText implements [encoding.TextMarshaler].
func (id ContactID) MarshalText() ([]byte, error) {
	return contactIDEncoding.AppendEncode(nil, id[:]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (id *ContactID) UnmarshalText(b []byte) error {
	if len(b) != contactIDEncoding.EncodedLen(len(id)) {
		return fmt.Errorf("contact id: invalid length %d", len(b))
	}
	var raw ContactID
	_, err := contactIDEncoding.Decode(raw[:], b)
	if err != nil {
		return fmt.Errorf("contact id: %w", err)
	}
	*id = raw
	return nil
}

// Validation errors all match [ErrValidationRejected] with [errors.Is].
var (
	ErrValidationRejected = errors.New("store: validation rejected")
	ErrInvalidName        = fmt.Errorf("%w: name", ErrValidationRejected)
	ErrInvalidPhone       = fmt.Errorf("%w: phone", ErrValidationRejected)
	ErrInvalidBirthday    = fmt.Errorf("%w: birthday", ErrValidationRejected)
)

var (
	ErrPhoneMismatch      = errors.New("store: phone mismatch")
	ErrUnknownFormat      = errors.New("store: unknown snapshot format")
	ErrUnsupportedVersion = errors.New("store: unsupported snapshot version")
	ErrCorruptSnapshot    = errors.New("store: corrupt snapshot")
)
