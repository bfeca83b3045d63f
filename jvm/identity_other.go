//go:build !linux
// +build !linux

package jvm

func newIdentity() IIdentity {
	return psIdentity{}
}
