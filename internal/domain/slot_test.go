package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayAvailability_HasAvailableSlot(t *testing.T) {
	empty := &DayAvailability{Slots: []Slot{}}
	assert.False(t, empty.HasAvailableSlot())

	allBusy := &DayAvailability{Slots: []Slot{
		{StartTime: "09:00", EndTime: "09:30"},
		{StartTime: "09:30", EndTime: "10:00"},
	}}
	assert.False(t, allBusy.HasAvailableSlot())

	oneFree := &DayAvailability{Slots: []Slot{
		{StartTime: "09:00", EndTime: "09:30"},
		{StartTime: "09:30", EndTime: "10:00", Available: true, Price: 50},
	}}
	assert.True(t, oneFree.HasAvailableSlot())
}
