package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	assert.Equal(t, "", r.Last())

	r.Error("first")
	r.Error("second")

	assert.Equal(t, []string{"first", "second"}, r.Messages())
	assert.Equal(t, "second", r.Last())
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	n := NewLogNotifier(zap.New(core))

	n.Error("Invalid Asset Id")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "Invalid Asset Id", entries[0].ContextMap()["msg"])
	}
}
