package jvm

import (
	"context"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LazarenkoA/jvm_process_exporter/settings"
)

const (
	gcMinColumns    = 10
	gcHeapColumn    = 3 // jstat -gc, KB
	gcNonHeapColumn = 7 // jstat -gc, KB
)

//go:generate mockgen -source=$GOFILE -package=mock_jvm -destination=./mock/mockSampler.go
type ISampler interface {
	Sample(ctx context.Context, pid string) (int, bool)
}

// Sampler оценивает память процесса по jstat -gc
type Sampler struct {
	runner  IRunner
	logger  *zap.SugaredLogger
	command string
}

func NewSampler(s *settings.Settings, runner IRunner, logger *zap.SugaredLogger) *Sampler {
	return &Sampler{
		runner:  runner,
		logger:  logger.Named("sampler"),
		command: s.StatCommand(),
	}
}

// Sample возвращает память в MB. Любая ошибка означает ok == false, наружу не пробрасывается
func (s *Sampler) Sample(ctx context.Context, pid string) (int, bool) {
	l := s.logger.With("pid", pid)

	cmd := exec.CommandContext(ctx, s.command, "-gc", pid)
	out, err := s.runner.Run(ctx, cmd)
	if err != nil {
		l.Warn(errors.Wrap(ErrSamplingFailed, err.Error()))
		return 0, false
	}

	mb, err := parseGC(out)
	if err != nil {
		l.With("out", out).Warn(err)
		return 0, false
	}

	l.With("mb", mb).Debug("получена память процесса")
	return mb, true
}

// parseGC берет первую строку с данными, заголовок jstat отсеивается тем, что колонки не числа.
// jstat -gc без интервала печатает одну строку данных. Если строк несколько (например вывод
// с интервалом), используется первая, а не последняя
func parseGC(out string) (int, error) {
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Fields(line)
		if len(parts) < gcMinColumns {
			continue
		}

		usedHeap, ok := parseKB(parts[gcHeapColumn])
		if !ok {
			continue
		}
		usedNonHeap, ok := parseKB(parts[gcNonHeapColumn])
		if !ok {
			continue
		}

		// дробная часть отбрасывается намеренно
		return int(math.Floor((usedHeap + usedNonHeap) / 1024)), nil
	}

	return 0, errors.Wrap(ErrSamplingFailed, "в выводе jstat нет строки с данными")
}

func parseKB(value string) (float64, bool) {
	// в некоторых локалях jstat выводит десятичную запятую
	v, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
