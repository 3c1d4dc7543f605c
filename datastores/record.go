package datastores

import (
	"fmt"
	"time"
)

// Record is a single contact. Its name is its key inside an [AddressBook]
// and cannot change; the phone only changes through the phone methods.
//
// The phone is either empty (unset) or made of ASCII digits only.
// The birthday is either empty (unknown) or a [time.DateOnly] date.
type Record struct {
	id       ContactID
	name     string
	phone    string
	birthday string
}

// NewRecord validates its arguments and returns a new record with a fresh ID.
// An empty phone leaves the phone unset and an empty birthday leaves it unknown.
func NewRecord(name, phone, birthday string) (*Record, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if phone != "" && !validPhone(phone) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	if birthday != "" && !validBirthday(birthday) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBirthday, birthday)
	}
	return &Record{
		id:       newContactID(),
		name:     name,
		phone:    phone,
		birthday: birthday,
	}, nil
}

func (r *Record) ID() ContactID    { return r.id }
func (r *Record) Name() string     { return r.name }
func (r *Record) Phone() string    { return r.phone }
func (r *Record) Birthday() string { return r.birthday }

// SetPhone replaces the phone. A value that is empty or contains anything
// but digits is rejected and the current phone is kept.
func (r *Record) SetPhone(phone string) error {
	if !validPhone(phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	r.phone = phone
	return nil
}

// ClearPhone unsets the phone.
func (r *Record) ClearPhone() { r.phone = "" }

// RemovePhone unsets the phone if it equals phone and reports whether it did.
func (r *Record) RemovePhone(phone string) bool {
	if r.phone == "" || r.phone != phone {
		return false
	}
	r.phone = ""
	return true
}

// EditPhone replaces the phone with newPhone if the current one is oldPhone.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	if r.phone != oldPhone {
		return ErrPhoneMismatch
	}
	return r.SetPhone(newPhone)
}

// DaysToBirthday is [Record.DaysToBirthdayFrom] with the current local time.
func (r *Record) DaysToBirthday() (int, bool) {
	return r.DaysToBirthdayFrom(time.Now())
}

// DaysToBirthdayFrom returns the number of days between the date of now and
// the next occurrence of the birthday, 0 when it is today. It returns false
// when the birthday is unknown. A February 29 birthday falls on March 1 in
// non-leap years.
func (r *Record) DaysToBirthdayFrom(now time.Time) (int, bool) {
	if r.birthday == "" {
		return 0, false
	}
	birthday, err := time.Parse(time.DateOnly, r.birthday)
	if err != nil {
		return 0, false
	}

	// dates are compared in UTC so daylight saving shifts never skew the count
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	next := time.Date(year, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if today.After(next) {
		next = time.Date(year+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(today).Hours() / 24), true //nolint: mnd // hours per day
}

// validate checks the invariants [NewRecord] establishes.
func (r *Record) validate() error {
	switch {
	case r.name == "":
		return ErrInvalidName
	case r.phone != "" && !validPhone(r.phone):
		return fmt.Errorf("%w: %q", ErrInvalidPhone, r.phone)
	case r.birthday != "" && !validBirthday(r.birthday):
		return fmt.Errorf("%w: %q", ErrInvalidBirthday, r.birthday)
	}
	return nil
}

func validPhone(phone string) bool {
	if phone == "" {
		return false
	}
	for i := range len(phone) {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return true
}

func validBirthday(birthday string) bool {
	_, err := time.Parse(time.DateOnly, birthday)
	return err == nil
}
