package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf,
		[]string{"name", "bits"},
		[][]string{
			{"modp-1024/160", "1024"},
			{"modp-2048/256", "2048"},
		})

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "modp-1024/160")
	assert.Contains(t, out, "2048")
}
