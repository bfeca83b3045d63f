//go:build linux
// +build linux

package jvm

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
)

type procIdentity struct {
	fs procfs.FS
}

func newIdentity() IIdentity {
	fs, err := procfs.NewFS(procfs.DefaultMountPoint)
	if err != nil {
		return psIdentity{}
	}
	return &procIdentity{fs: fs}
}

// Lookup comm и starttime из /proc/<pid>/stat, starttime в тиках с момента загрузки
func (p *procIdentity) Lookup(pid string) (Identity, error) {
	id, err := strconv.Atoi(pid)
	if err != nil {
		return Identity{}, errors.Wrapf(err, "некорректный pid %q", pid)
	}

	proc, err := p.fs.Proc(id)
	if err != nil {
		return Identity{}, errors.Wrapf(err, "процесс %s не найден", pid)
	}

	stat, err := proc.Stat()
	if err != nil {
		return Identity{}, errors.Wrap(err, "read stat error")
	}

	return Identity{Name: stat.Comm, StartTime: stat.Starttime}, nil
}
