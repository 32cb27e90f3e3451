package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDetectMode(t *testing.T) {
	assert := assert.New(t)

	mode, err := ParseDetectMode("first")
	assert.NoError(err)
	assert.Equal(DETECT_FIRST, mode)

	mode, err = ParseDetectMode("LAST")
	assert.NoError(err)
	assert.Equal(DETECT_LAST, mode)

	_, err = ParseDetectMode("middle")
	assert.ErrorIs(err, ErrDetectMode)
}

func TestDetector(t *testing.T) {
	table := [](struct {
		mode    DetectMode
		samples []int
		value   int
		count   int
	}){
		{DETECT_FIRST, []int{5, 3, 9, 3}, 5, 1},
		{DETECT_LAST, []int{5, 3, 9, 3}, 9, 4},
		{DETECT_LAST, []int{5, 3, 9, 5, 3}, 9, 4},
		{DETECT_LAST, []int{1, 1}, 1, 2},
		{DETECT_LAST, []int{0, -1, 2, -1}, 2, 4},
	}

	for _, entry := range table {
		t.Run(entry.mode.String(), func(t *testing.T) {
			assert := assert.New(t)

			det := &Detector{Mode: entry.mode}
			var value int
			var done bool
			for _, sample := range entry.samples {
				value, done = det.Sample(sample)
				if done {
					break
				}
			}
			assert.True(done)
			assert.Equal(entry.value, value)
			assert.Equal(entry.count, det.Samples())
		})
	}
}

func TestDetectorNoRepeat(t *testing.T) {
	assert := assert.New(t)

	det := &Detector{Mode: DETECT_LAST}

	_, ok := det.Last()
	assert.False(ok)

	for _, sample := range []int{4, 8, 15, 16} {
		_, done := det.Sample(sample)
		assert.False(done)
	}

	last, ok := det.Last()
	assert.True(ok)
	assert.Equal(16, last)
	assert.Equal(4, det.Samples())
}
