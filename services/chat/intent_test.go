package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSchedulingIntent(t *testing.T) {
	assert.True(t, DetectSchedulingIntent("I want to book an appointment"))
	assert.True(t, DetectSchedulingIntent("When can I see someone?"))
	assert.True(t, DetectSchedulingIntent("Schedule me for next week"))
	assert.False(t, DetectSchedulingIntent("What's the weather like?"))
}

func TestDetectMedicalIntent(t *testing.T) {
	assert.True(t, DetectMedicalIntent("I have a terrible headache"))
	assert.True(t, DetectMedicalIntent("feeling unwell since yesterday"))
	assert.True(t, DetectMedicalIntent("my stomach hurts"))
	assert.False(t, DetectMedicalIntent("thanks, goodbye"))
}

func TestDetectConfirmation(t *testing.T) {
	assert.True(t, DetectConfirmation("Yes, please book it"))
	assert.True(t, DetectConfirmation("go ahead"))
	assert.True(t, DetectConfirmation("okay"))
	assert.False(t, DetectConfirmation("actually, never mind"))
}
