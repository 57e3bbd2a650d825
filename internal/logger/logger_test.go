package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "WARN", "text")
	defer InitWithWriter(new(bytes.Buffer), "INFO", "text")

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestTextFormatIncludesFields(t *testing.T) {
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "INFO", "text")
	defer InitWithWriter(new(bytes.Buffer), "INFO", "text")

	Info("user registered", KeyUsername, "alice", KeyGroupBits, 2048)

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "user registered")
	assert.Contains(t, out, "username=alice")
	assert.Contains(t, out, "group_bits=2048")
}

func TestJSONFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "INFO", "json")
	defer InitWithWriter(new(bytes.Buffer), "INFO", "text")

	Info("session opened", KeySessionID, "5bffe79c-3b86-4571-a167-e5a8e55cbb6c")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "session opened", record["msg"])
	assert.Equal(t, "5bffe79c-3b86-4571-a167-e5a8e55cbb6c", record[KeySessionID])
}

func TestSetLevelAtRuntime(t *testing.T) {
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "INFO", "text")
	defer InitWithWriter(new(bytes.Buffer), "INFO", "text")

	Debug("hidden")
	SetLevel("DEBUG")
	Debug("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestWithBindsAttributes(t *testing.T) {
	buf := new(bytes.Buffer)
	InitWithWriter(buf, "INFO", "text")
	defer InitWithWriter(new(bytes.Buffer), "INFO", "text")

	l := With(KeyRPC, "/zkauth.v1.Auth/Commit")
	l.Info("challenge issued")

	assert.Contains(t, buf.String(), "rpc=/zkauth.v1.Auth/Commit")
}
