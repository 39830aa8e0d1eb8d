package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/surveynav/internal/location"
)

var (
	block1 = location.New("group", 0, "block1")
	block2 = location.New("group", 0, "block2")
	block3 = location.New("group", 0, "block3")
)

func TestStore(t *testing.T) {
	s := NewStore(
		[]location.Location{block1, block2, block1},
		map[SectionKey]CompletionStatus{{SectionID: "default-section", Instance: 0}: InProgress},
	)

	assert.True(t, s.IsCompleted(block1))
	assert.False(t, s.IsCompleted(block3))
	assert.Equal(t, 2, s.CompletedCount())
	assert.Equal(t, []location.Location{block1, block2}, s.Completed())
	assert.Equal(t, InProgress, s.SectionStatus("default-section", 0))
	assert.Equal(t, NotStarted, s.SectionStatus("default-section", 1))
}

func TestNilStore(t *testing.T) {
	var s *Store
	assert.False(t, s.IsCompleted(block1))
	assert.Equal(t, 0, s.CompletedCount())
	assert.Equal(t, NotStarted, s.SectionStatus("x", 0))
}

func TestStatusOf(t *testing.T) {
	path := []location.Location{block1, block2, block3}

	testCases := []struct {
		name      string
		completed []location.Location
		want      CompletionStatus
	}{
		{name: "nothing", want: NotStarted},
		{name: "some", completed: []location.Location{block2}, want: InProgress},
		{name: "all", completed: path, want: Completed},
		{name: "unrelated", completed: []location.Location{location.New("other", 0, "b")}, want: NotStarted},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(tc.completed, nil)
			assert.Equal(t, tc.want, StatusOf(path, s))
			assert.Equal(t, tc.want == Completed, AllCompleted(path, s))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, Completed, s)

	_, err = ParseStatus("DONE")
	assert.Error(t, err)
}
