package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_nextVersion(t *testing.T) {
	v, err := nextVersion("v1.2.3\r\n")
	assert.NoError(t, err)
	assert.Equal(t, "v1.2.4", v)

	v, err = nextVersion("1.0.9")
	assert.NoError(t, err)
	assert.Equal(t, "1.0.10", v)

	_, err = nextVersion("v1.2")
	assert.EqualError(t, err, `последняя версия "v1.2" не коррректного формата`)

	_, err = nextVersion("v1.2.x")
	assert.Error(t, err)
}
