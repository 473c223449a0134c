package store

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{
			name: "zero value gets default size",
			in:   PageRequest{},
			want: PageRequest{Number: 0, Size: DefaultPageSize},
		},
		{
			name: "negative page number clamps to zero",
			in:   PageRequest{Number: -3, Size: 10},
			want: PageRequest{Number: 0, Size: 10},
		},
		{
			name: "oversized page clamps to maximum",
			in:   PageRequest{Number: 2, Size: MaxPageSize + 50},
			want: PageRequest{Number: 2, Size: MaxPageSize},
		},
		{
			name: "valid request is unchanged",
			in:   PageRequest{Number: 4, Size: 25},
			want: PageRequest{Number: 4, Size: 25},
		},
		{
			name: "huge page number clamps to maximum",
			in:   PageRequest{Number: math.MaxInt, Size: 20},
			want: PageRequest{Number: MaxPageNumber, Size: 20},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, PageRequest{Number: 0, Size: 20}.Offset())
	assert.Equal(t, 20, PageRequest{Number: 1, Size: 20}.Offset())
	assert.Equal(t, 150, PageRequest{Number: 3, Size: 50}.Offset())

	// Normalized requests can never produce a negative offset
	extreme := PageRequest{Number: math.MaxInt, Size: math.MaxInt}.Normalize()
	assert.GreaterOrEqual(t, extreme.Offset(), 0)
}

func TestTaskFilterIsZero(t *testing.T) {
	t.Parallel()

	title := "Write design doc"
	dueDate := time.Now()

	assert.True(t, TaskFilter{}.IsZero())
	assert.False(t, TaskFilter{Title: &title}.IsZero())
	assert.False(t, TaskFilter{DueDate: &dueDate}.IsZero())
	assert.False(t, TaskFilter{Title: &title, DueDate: &dueDate}.IsZero())
}
