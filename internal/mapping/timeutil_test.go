package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUTCISO(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   interface{}
		want string
	}{
		{in: "2024-01-01T10:00:00+02:00", want: "2024-01-01T08:00:00Z"},
		{in: "2024-01-01T10:00:00Z", want: "2024-01-01T10:00:00Z"},
		{in: "2024-01-01T10:00:00+00:00", want: "2024-01-01T10:00:00Z"},
		{in: "2024-01-01T01:30:00-05:00", want: "2024-01-01T06:30:00Z"},
		{in: "2024-03-01 18:00:00", want: "2024-03-01T18:00:00Z"},
		{in: "2024-03-01T18:00:00", want: "2024-03-01T18:00:00Z"},
		{in: "2024-03-01", want: "2024-03-01T00:00:00Z"},
		{in: "2024-03-01T18:00:00.5+01:00", want: "2024-03-01T17:00:00.500000Z"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.in.(string), func(t *testing.T) {
			t.Parallel()
			got := ToUTCISO(tc.in)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestToUTCISO_InvalidReturnsNil(t *testing.T) {
	t.Parallel()

	for _, in := range []interface{}{"not-a-date", "", "2024-13-45T99:00:00Z", nil, float64(1700000000), map[string]interface{}{}} {
		assert.Nil(t, ToUTCISO(in), "input %v", in)
	}
}

func TestToUTCISO_PreservesInstant(t *testing.T) {
	t.Parallel()

	in := "2024-06-15T23:45:10+09:30"
	got := ToUTCISO(in)
	require.NotNil(t, got)

	want, err := time.Parse(time.RFC3339, in)
	require.NoError(t, err)
	parsed, err := time.Parse(time.RFC3339, *got)
	require.NoError(t, err)

	assert.True(t, want.Equal(parsed))
	assert.Equal(t, byte('Z'), (*got)[len(*got)-1])
	assert.NotContains(t, *got, "+")
}
