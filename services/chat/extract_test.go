package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPatientInfoEmail(t *testing.T) {
	info := ExtractPatientInfo("yes, book it, my email is jordan.smith+appt@example.co.uk")
	assert.Equal(t, "jordan.smith+appt@example.co.uk", info["contact"])
}

func TestExtractPatientInfoPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"dashed US format", "call me at 555-123-4567", "555-123-4567"},
		{"dotted US format", "my number is 555.123.4567", "555.123.4567"},
		{"bare ten digits", "reach me on 5551234567", "5551234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ExtractPatientInfo(tt.text)
			assert.Equal(t, tt.want, info["contact"])
		})
	}
}

func TestExtractPatientInfoEmailWinsOverPhone(t *testing.T) {
	info := ExtractPatientInfo("jane@example.com or 555-123-4567")
	assert.Equal(t, "jane@example.com", info["contact"])
}

func TestExtractPatientInfoName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"i'm", "I'm Jane Doe and I confirm", "Jane Doe"},
		{"my name is", "my name is Alex", "Alex"},
		{"this is", "Hi, this is Sam Carter", "Sam Carter"},
		{"labeled", "name: Riley Jones", "Riley Jones"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ExtractPatientInfo(tt.text)
			assert.Equal(t, tt.want, info["name"])
		})
	}
}

func TestExtractPatientInfoNothingFound(t *testing.T) {
	info := ExtractPatientInfo("sounds good")
	assert.Empty(t, info)
}
