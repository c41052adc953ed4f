package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	InitValidator()
	m.Run()
}

func TestCollectMessagesReportsEveryViolation(t *testing.T) {
	req := HabitMetricsRequest{
		ID:   "short",
		Date: "2025-03-14",
	}
	messages := collectMessages(validate.Struct(req))
	require.Len(t, messages, 1)
	assert.Equal(t, "id: must be exactly 24 characters long", messages[0])

	empty := HabitMetricsRequest{}
	messages = collectMessages(validate.Struct(empty))
	require.Len(t, messages, 2)
	assert.Equal(t, "id: is required", messages[0])
	assert.Equal(t, "date: is required", messages[1])
}

func TestCollectMessagesNilOnValidInput(t *testing.T) {
	req := HabitIDRequest{ID: "507f1f77bcf86cd799439011"}
	assert.Nil(t, collectMessages(validate.Struct(req)))
}

func TestObjectIDValidation(t *testing.T) {
	testCases := []struct {
		desc  string
		id    string
		valid bool
	}{
		{"lowercase hex", "507f1f77bcf86cd799439011", true},
		{"uppercase hex", "507F1F77BCF86CD799439011", true},
		{"non-hex characters", "507f1f77bcf86cd79943901z", false},
		{"too short", "507f1f77bcf86cd7", false},
		{"too long", "507f1f77bcf86cd79943901122", false},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := validate.Struct(HabitIDRequest{ID: tc.id})
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		desc  string
		value string
		want  time.Time
	}{
		{
			desc:  "rfc3339 with offset",
			value: "2025-03-14T09:30:00Z",
			want:  time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			desc:  "date only in local time",
			value: "2025-03-14",
			want:  time.Date(2025, time.March, 14, 0, 0, 0, 0, time.Local),
		},
		{
			desc:  "datetime without offset in local time",
			value: "2025-03-14T09:30:00",
			want:  time.Date(2025, time.March, 14, 9, 30, 0, 0, time.Local),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := parseDate(tc.value)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want))
		})
	}

	t.Run("unparseable value", func(t *testing.T) {
		_, err := parseDate("not-a-date")
		assert.Error(t, err)
	})
}

func TestCoerceDate(t *testing.T) {
	t.Run("appends violation for bad value", func(t *testing.T) {
		_, messages := coerceDate("date", "yesterday", []string{"id: is required"})
		require.Len(t, messages, 2)
		assert.Equal(t, "date: must be a valid date", messages[1])
	})
	t.Run("leaves messages alone for empty value", func(t *testing.T) {
		_, messages := coerceDate("date", "", nil)
		assert.Nil(t, messages)
	})
	t.Run("parses good value", func(t *testing.T) {
		date, messages := coerceDate("date", "2025-03-14", nil)
		assert.Nil(t, messages)
		assert.Equal(t, 14, date.Day())
	})
}
