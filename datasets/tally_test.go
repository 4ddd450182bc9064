package datasets

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTallyMajority(t *testing.T) {
	var tally Tally
	tally.Init()
	assert.False(t, tally.GetImprovementPossible())

	tally.AddToMapping(1, 3)
	tally.AddToMapping(1, 3)
	tally.AddToMapping(1, 2)
	tally.AddToMapping(2, 5)
	tally.AddToMapping(2, 4)

	m := tally.Majority()
	assert.Equal(t, uint16(3), m[1])
	assert.Equal(t, uint16(4), m[2], "ties go to the lowest output")
	assert.Equal(t, 2, tally.Len())
	assert.True(t, tally.GetImprovementPossible())
}

func TestTallyDatasetBits(t *testing.T) {
	var tally Tally
	tally.Init()
	tally.AddToMapping(7, 5) // 0b101

	d := tally.Dataset(3)
	assert.Len(t, d, 3)
	assert.True(t, d[7])
	assert.False(t, d[7|1<<16])
	assert.True(t, d[7|2<<16])
}

func TestTallyConcurrent(t *testing.T) {
	var tally Tally
	tally.Init()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tally.AddToMapping(uint32(i%10), uint16(i%3))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, tally.Len())
}
