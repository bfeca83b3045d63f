package jvm

import (
	"context"
	"os/exec"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -package=mock_jvm -destination=./mock/mockTerminator.go
type ITerminator interface {
	Terminate(ctx context.Context, pid string) error
}

// Terminator принудительно завершает процесс внешней командой (taskkill /F /PID или kill -9).
// Про реестр ничего не знает, запись удаляет вызывающий.
type Terminator struct {
	runner  IRunner
	logger  *zap.SugaredLogger
	command func(pid string) (string, []string)
}

func NewTerminator(command func(pid string) (string, []string), runner IRunner, logger *zap.SugaredLogger) *Terminator {
	return &Terminator{
		runner:  runner,
		logger:  logger.Named("terminator"),
		command: command,
	}
}

func (t *Terminator) Terminate(ctx context.Context, pid string) error {
	name, args := t.command(pid)

	cmd := exec.CommandContext(ctx, name, args...)
	if _, err := t.runner.Run(ctx, cmd); err != nil {
		t.logger.With("pid", pid).Error(err)
		return errors.Wrapf(ErrTerminationFailed, "pid %s: %v", pid, err)
	}

	t.logger.With("pid", pid).Info("процесс завершен")
	return nil
}
