package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPatientCode(t *testing.T) {
	at := time.UnixMilli(1700000483920)

	assert.Equal(t, "SC1700000483920", NewPatientCode(at))
	assert.Regexp(t, `^SC\d+$`, NewPatientCode(time.Now()))
}

func TestNewPatientCodeDistinctAcrossMilliseconds(t *testing.T) {
	at := time.Now()
	assert.Equal(t, NewPatientCode(at), NewPatientCode(at))
	assert.NotEqual(t, NewPatientCode(at), NewPatientCode(at.Add(time.Millisecond)))

	// Codes stay distinct over long horizons instead of wrapping
	assert.NotEqual(t, NewPatientCode(at), NewPatientCode(at.AddDate(0, 0, 12)))
}
