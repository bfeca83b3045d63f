package jvm

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/LazarenkoA/jvm_process_exporter/settings"
)

//go:generate mockgen -source=$GOFILE -package=mock_jvm -destination=./mock/mockEnumerator.go
type IEnumerator interface {
	Discover(ctx context.Context) ([]Discovered, error)
}

// Enumerator получает список java процессов через jps -l
type Enumerator struct {
	runner      IRunner
	logger      *zap.SugaredLogger
	command     string
	toolName    string
	keepFull    []string
	exeSuffixes []string
}

func NewEnumerator(s *settings.Settings, runner IRunner, logger *zap.SugaredLogger) *Enumerator {
	suffixes := lo.Map(s.ExecutableSuffixes, func(item string, _ int) string {
		return strings.ToLower(item)
	})

	return &Enumerator{
		runner:      runner,
		logger:      logger.Named("enumerator"),
		command:     s.ListCommand(),
		toolName:    s.ListToolName(),
		keepFull:    s.KeepFullName,
		exeSuffixes: suffixes,
	}
}

func (e *Enumerator) Discover(ctx context.Context) ([]Discovered, error) {
	cmd := exec.CommandContext(ctx, e.command, "-l")
	out, err := e.runner.Run(ctx, cmd)
	if err != nil {
		return nil, errors.Wrapf(ErrEnumerationUnavailable, "%v", err)
	}

	result := e.parse(out)
	e.logger.With("count", len(result)).Debug("получен список процессов")

	return result, nil
}

func (e *Enumerator) parse(out string) []Discovered {
	var result []Discovered

	for _, line := range strings.Split(normalizeEncoding(out), "\n") {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		pid, name := parts[0], parts[1]
		if _, err := strconv.ParseUint(pid, 10, 32); err != nil {
			e.logger.With("line", line).Debug("строка пропущена, pid не число")
			continue
		}
		if e.isNoise(name) {
			e.logger.With("pid", pid).With("name", name).Debug("строка пропущена")
			continue
		}

		result = append(result, Discovered{PID: pid, Name: e.normalizeName(name)})
	}

	return result
}

// isNoise сам jps и нативные исполняемые файлы в список не попадают
func (e *Enumerator) isNoise(name string) bool {
	if strings.EqualFold(name, e.toolName) || strings.EqualFold(shortName(name), e.toolName) {
		return true
	}

	lower := strings.ToLower(name)
	return lo.SomeBy(e.exeSuffixes, func(suffix string) bool {
		return suffix != "" && strings.HasSuffix(lower, suffix)
	})
}

// normalizeName org.example.Main -> Main, кроме исключений (например процессы idea)
func (e *Enumerator) normalizeName(name string) string {
	keep := lo.SomeBy(e.keepFull, func(marker string) bool {
		return marker != "" && strings.Contains(name, marker)
	})
	if keep {
		return name
	}

	return shortName(name)
}

func shortName(name string) string {
	return name[strings.LastIndex(name, ".")+1:]
}
