package jvm

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/process"
)

//go:generate mockgen -source=$GOFILE -package=mock_jvm -destination=./mock/mockIdentity.go
type IIdentity interface {
	Lookup(pid string) (Identity, error)
}

// psIdentity работает везде, где есть gopsutil
type psIdentity struct{}

func (psIdentity) Lookup(pid string) (Identity, error) {
	id, err := strconv.ParseInt(pid, 10, 32)
	if err != nil {
		return Identity{}, errors.Wrapf(err, "некорректный pid %q", pid)
	}

	exists, err := process.PidExists(int32(id))
	if err != nil {
		return Identity{}, errors.Wrap(err, "pid exists error")
	}
	if !exists {
		return Identity{}, errors.Errorf("процесс %s не найден", pid)
	}

	p, err := process.NewProcess(int32(id))
	if err != nil {
		return Identity{}, errors.Wrap(err, "new process error")
	}

	name, err := p.Name()
	if err != nil {
		return Identity{}, errors.Wrap(err, "get process name error")
	}
	created, err := p.CreateTime()
	if err != nil {
		return Identity{}, errors.Wrap(err, "get process create time error")
	}

	return Identity{Name: name, StartTime: uint64(created)}, nil
}
