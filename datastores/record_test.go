package datastores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 15, 30, 0, 0, time.Local)
}

func TestNewRecordKeepsItsFields(t *testing.T) {
	r, err := NewRecord("Bill", "1234567890", "1990-08-15")
	require.NoError(t, err)

	assert.Equal(t, "Bill", r.Name())
	assert.Equal(t, "1234567890", r.Phone())
	assert.Equal(t, "1990-08-15", r.Birthday())
	assert.NotEqual(t, ContactID{}, r.ID())
}

func TestNewRecordGivesDistinctIDs(t *testing.T) {
	a, err := NewRecord("Bill", "1", "")
	require.NoError(t, err)
	b, err := NewRecord("Bill", "1", "")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewRecordAllowsUnsetPhoneAndUnknownBirthday(t *testing.T) {
	r, err := NewRecord("Alice", "", "")
	require.NoError(t, err)

	assert.Empty(t, r.Phone())
	assert.Empty(t, r.Birthday())
}

func TestNewRecordRejectsInvalidInput(t *testing.T) {
	for _, tc := range []struct {
		name, phone, birthday string
		err                   error
	}{
		{"", "123", "", ErrInvalidName},
		{"Bill", "123-456", "", ErrInvalidPhone},
		{"Bill", "+380", "", ErrInvalidPhone},
		{"Bill", "123", "15.08.1990", ErrInvalidBirthday},
		{"Bill", "123", "1990-02-30", ErrInvalidBirthday},
		{"Bill", "123", "someday", ErrInvalidBirthday},
	} {
		r, err := NewRecord(tc.name, tc.phone, tc.birthday)
		assert.ErrorIs(t, err, tc.err, "%+v", tc)
		assert.ErrorIs(t, err, ErrValidationRejected, "%+v", tc)
		assert.Nil(t, r)
	}
}

func TestSetPhoneReplacesValidPhone(t *testing.T) {
	r, err := NewRecord("Bill", "1234567890", "")
	require.NoError(t, err)

	assert.NoError(t, r.SetPhone("555"))
	assert.Equal(t, "555", r.Phone())
}

func TestSetPhoneWithNonDigitsLeavesPhoneUnchanged(t *testing.T) {
	r, err := NewRecord("Bill", "1234567890", "")
	require.NoError(t, err)

	for _, phone := range []string{"555-1234", "abc", " 123", ""} {
		assert.ErrorIs(t, r.SetPhone(phone), ErrInvalidPhone)
		assert.Equal(t, "1234567890", r.Phone())
	}
}

func TestClearPhone(t *testing.T) {
	r, err := NewRecord("Bill", "1234567890", "")
	require.NoError(t, err)

	r.ClearPhone()
	assert.Empty(t, r.Phone())

	r.ClearPhone()
	assert.Empty(t, r.Phone())
}

func TestRemovePhoneOnlyRemovesMatchingPhone(t *testing.T) {
	r, err := NewRecord("Bill", "1234567890", "")
	require.NoError(t, err)

	assert.False(t, r.RemovePhone("000"))
	assert.Equal(t, "1234567890", r.Phone())

	assert.True(t, r.RemovePhone("1234567890"))
	assert.Empty(t, r.Phone())

	assert.False(t, r.RemovePhone(""))
}

func TestEditPhone(t *testing.T) {
	r, err := NewRecord("Bill", "1234567890", "")
	require.NoError(t, err)

	assert.ErrorIs(t, r.EditPhone("000", "111"), ErrPhoneMismatch)
	assert.Equal(t, "1234567890", r.Phone())

	assert.ErrorIs(t, r.EditPhone("1234567890", "11-1"), ErrInvalidPhone)
	assert.Equal(t, "1234567890", r.Phone())

	assert.NoError(t, r.EditPhone("1234567890", "111"))
	assert.Equal(t, "111", r.Phone())
}

func TestDaysToBirthdayUnknown(t *testing.T) {
	r, err := NewRecord("Bill", "1", "")
	require.NoError(t, err)

	_, ok := r.DaysToBirthday()
	assert.False(t, ok)
}

func TestDaysToBirthdayFrom(t *testing.T) {
	for _, tc := range []struct {
		birthday string
		now      time.Time
		days     int
	}{
		{"1990-10-19", date(2026, time.October, 19), 0},
		{"1990-10-20", date(2026, time.October, 19), 1},
		{"1990-10-18", date(2026, time.October, 19), 364},
		{"1990-03-01", date(2027, time.March, 2), 365},       // next one is after 2028-02-29
		{"2000-01-01", date(2026, time.December, 31), 1},     // across the year boundary
		{"1990-12-31", date(2027, time.January, 1), 364},     // rolled to the end of the year
		{"2000-02-29", date(2027, time.March, 1), 0},         // March 1 in non-leap years
		{"2000-02-29", date(2028, time.February, 28), 1},     // leap year
		{"2000-02-29", date(2026, time.October, 19), 133},    // 2027-03-01
		{"1995-10-20", date(2026, time.January, 1), 292},     // same year
		{"1995-01-01", date(2026, time.January, 1), 0},       // new year's day
		{"1995-12-31", date(2026, time.December, 31), 0},     // new year's eve
		{"1995-12-30", date(2026, time.December, 31), 364},   // one day past, 2027 is not leap
		{"1995-12-30", date(2027, time.December, 31), 365},   // one day past, 2028 is leap
		{"1995-06-15", time.Date(2026, 6, 14, 23, 59, 59, 0, time.Local), 1},
	} {
		r, err := NewRecord("Bill", "1", tc.birthday)
		require.NoError(t, err)

		days, ok := r.DaysToBirthdayFrom(tc.now)
		assert.True(t, ok)
		assert.Equal(t, tc.days, days, "birthday %s from %s", tc.birthday, tc.now.Format(time.DateOnly))
	}
}
