package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSetTracksNothing(t *testing.T) {
	s := DefaultSet()

	for _, c := range All {
		assert.False(t, s.Enabled(c), "category %q should be off by default", c)
	}
	assert.Empty(t, s.Available())
}

func TestSetEnabled(t *testing.T) {
	s := NewSet(Materials, Visitors)

	assert.True(t, s.Enabled(Materials))
	assert.True(t, s.Enabled(Visitors))
	assert.False(t, s.Enabled(CrewAttendance))
	assert.False(t, s.Enabled(Category("bogus")))
}

func TestAvailableIsSorted(t *testing.T) {
	s := NewSet(Visitors, CrewAttendance, Materials)

	assert.Equal(t, []Category{CrewAttendance, Materials, Visitors}, s.Available())
}

func TestRequire(t *testing.T) {
	s := NewSet(Materials)

	assert.NoError(t, s.Require(Materials))

	err := s.Require(EquipmentLogs)
	if assert.Error(t, err) {
		// The message names what is missing and what is available.
		assert.Contains(t, err.Error(), string(EquipmentLogs))
		assert.Contains(t, err.Error(), string(Materials))
	}
}

func TestRequireNothingTracked(t *testing.T) {
	err := DefaultSet().Require(Visitors)
	assert.Error(t, err)
}
