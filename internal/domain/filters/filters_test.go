package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name          string
		in            Filters
		expectedPage  int
		expectedLimit int
	}{
		{"zero values get defaults", Filters{}, DefaultPage, DefaultLimit},
		{"negative values get defaults", Filters{Page: -3, Limit: -1}, DefaultPage, DefaultLimit},
		{"limit is capped", Filters{Page: 2, Limit: 5000}, 2, MaxLimit},
		{"valid values pass through", Filters{Page: 7, Limit: 25}, 7, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.expectedPage, tc.in.Page)
			assert.Equal(t, tc.expectedLimit, tc.in.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	f := Filters{Page: 3, Limit: 10}
	assert.Equal(t, 20, f.Offset())

	f = Filters{Page: 1, Limit: 10}
	assert.Equal(t, 0, f.Offset())
}
