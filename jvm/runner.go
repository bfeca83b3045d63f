package jvm

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultTimeout = time.Second * 5

//go:generate mockgen -source=$GOFILE -package=mock_jvm -destination=./mock/mockRunner.go
type IRunner interface {
	Run(ctx context.Context, cmd *exec.Cmd) (string, error)
}

type cmdRunner struct {
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func newRunner(timeout time.Duration, logger *zap.SugaredLogger) *cmdRunner {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &cmdRunner{timeout: timeout, logger: logger}
}

// Run запускает команду и ждет ее не дольше timeout. Вывод читается целиком,
// при таймауте или отмене контекста процесс убивается и Wait все равно дожидается.
func (r *cmdRunner) Run(ctx context.Context, cmd *exec.Cmd) (string, error) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// дочерние процессы могут держать пайпы открытыми после kill
	cmd.WaitDelay = time.Second

	r.logger.With("исполняемый файл", cmd.Path).
		With("параметры", cmd.Args).
		Debug("выполнение команды")

	if err := cmd.Start(); err != nil {
		return "", errors.Wrapf(err, "произошла ошибка запуска, параметры: %v", cmd.Args)
	}

	errch := make(chan error, 1)
	go func() {
		errch <- cmd.Wait()
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		_ = cmd.Process.Kill()
		<-errch
		return "", errors.Wrapf(ErrCommandTimeout, "параметры: %v", cmd.Args)
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-errch
		return "", errors.Wrapf(ctx.Err(), "выполнение команды прервано, параметры: %v", cmd.Args)
	case err := <-errch:
		if err != nil {
			errText := "произошла ошибка выполнения, параметры: " + strings.Join(cmd.Args, " ")
			if s := strings.TrimSpace(stderr.String()); s != "" {
				errText += ", stderr: " + s
			}
			return "", errors.Wrap(err, errText)
		}

		return stdout.String(), nil
	}
}
