package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeByteArray(t *testing.T) {
	b := []byte("s3cretpass")
	WipeByteArray(b)
	assert.Equal(t, make([]byte, 10), b)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}
