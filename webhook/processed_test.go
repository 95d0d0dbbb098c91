package webhook

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessedSetMark(t *testing.T) {
	set := newProcessedSet(10)

	assert.True(t, set.mark("evt_1"))
	assert.False(t, set.mark("evt_1"))
	assert.False(t, set.mark("evt_1"))
	assert.True(t, set.mark("evt_2"))
}

func TestProcessedSetNeverExceedsBound(t *testing.T) {
	set := newProcessedSet(3)

	for i := 0; i < 50; i++ {
		set.mark(fmt.Sprintf("evt_%d", i))
		assert.LessOrEqual(t, set.size(), 3)
	}
}

func TestProcessedSetEvictsOldestFirst(t *testing.T) {
	set := newProcessedSet(3)

	set.mark("evt_1")
	set.mark("evt_2")
	set.mark("evt_3")

	// Inserting a fourth id evicts exactly one entry, the oldest.
	set.mark("evt_4")
	assert.Equal(t, 3, set.size())

	assert.True(t, set.mark("evt_1"))
	assert.False(t, set.mark("evt_3"))
}
