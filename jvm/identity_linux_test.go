//go:build linux
// +build linux

package jvm

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_procIdentity(t *testing.T) {
	ident := newIdentity()
	pid := strconv.Itoa(os.Getpid())

	first, err := ident.Lookup(pid)
	require.NoError(t, err)
	assert.NotEmpty(t, first.Name)
	assert.NotZero(t, first.StartTime)

	second, err := ident.Lookup(pid)
	require.NoError(t, err)
	assert.True(t, first.Match(second))

	_, err = ident.Lookup("abc")
	assert.Error(t, err)

	_, err = ident.Lookup("999999999")
	assert.Error(t, err)
}

func Test_psIdentity(t *testing.T) {
	pid := strconv.Itoa(os.Getpid())

	first, err := psIdentity{}.Lookup(pid)
	require.NoError(t, err)
	assert.NotEmpty(t, first.Name)

	second, err := psIdentity{}.Lookup(pid)
	require.NoError(t, err)
	assert.True(t, first.Match(second))

	_, err = psIdentity{}.Lookup("abc")
	assert.Error(t, err)
}
