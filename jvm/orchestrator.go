package jvm

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LazarenkoA/jvm_process_exporter/logger"
	"github.com/LazarenkoA/jvm_process_exporter/settings"
)

type State int32

const (
	StateIdle State = iota
	StateEnumerating
	StateSampling
	StateRebuilding
	StateEnumerationFailed
)

var stateNames = map[State]string{
	StateIdle:              "idle",
	StateEnumerating:       "enumerating",
	StateSampling:          "sampling",
	StateRebuilding:        "rebuilding",
	StateEnumerationFailed: "enumeration failed",
}

func (s State) String() string {
	return stateNames[s]
}

// Orchestrator полная пересборка реестра и завершение процессов.
// Refresh и Terminate выполняются строго по очереди.
type Orchestrator struct {
	mx    sync.Mutex
	state atomic.Int32

	enumerator IEnumerator
	sampler    ISampler
	terminator ITerminator
	identity   IIdentity
	registry   *Registry
	logger     *zap.SugaredLogger
}

func New(s *settings.Settings) *Orchestrator {
	l := logger.DefaultLogger.Named("jvm")
	runner := newRunner(s.CommandTimeout(), l.Named("runner"))

	return NewOrchestrator(
		NewEnumerator(s, runner, l),
		NewSampler(s, runner, l),
		NewTerminator(s.KillCommandFor, runner, l),
		newIdentity(),
		NewRegistry(),
	)
}

func NewOrchestrator(enumerator IEnumerator, sampler ISampler, terminator ITerminator, identity IIdentity, registry *Registry) *Orchestrator {
	return &Orchestrator{
		enumerator: enumerator,
		sampler:    sampler,
		terminator: terminator,
		identity:   identity,
		registry:   registry,
		logger:     logger.DefaultLogger.Named("orchestrator"),
	}
}

// Refresh discover -> sample по каждому pid -> ReplaceAll. Если jps недоступен, реестр очищается
// и ошибка возвращается вызывающему. Ошибки по отдельным pid только оставляют память пустой.
// При отмене ctx реестр остается от прошлого обновления, возвращается ошибка контекста.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	o.mx.Lock()
	defer o.mx.Unlock()

	start := time.Now()
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "обновление прервано")
	}

	o.setState(StateEnumerating)

	found, err := o.enumerator.Discover(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		// отмена вызывающим не означает, что jps недоступен, реестр не трогаем
		o.setState(StateIdle)
		return errors.Wrap(ctxErr, "обновление прервано")
	}
	if err != nil {
		o.setState(StateEnumerationFailed)
		o.registry.Clear()
		o.logger.Error(err)
		o.setState(StateIdle)
		return err
	}

	o.setState(StateSampling)
	records := make([]ProcessRecord, 0, len(found))
	for _, p := range found {
		if ctx.Err() != nil {
			break
		}

		rec := ProcessRecord{
			PID:         p.PID,
			Name:        p.Name,
			ProcessType: ProcessTypeJava,
		}

		if mb, ok := o.sampler.Sample(ctx, p.PID); ok {
			rec.MemoryMB = &mb
		}
		if id, err := o.identity.Lookup(p.PID); err == nil {
			rec.Identity = id
		} else {
			o.logger.With("pid", p.PID).Debug(errors.Wrap(err, "identity lookup error"))
		}

		records = append(records, rec)
	}

	// неполный снимок после отмены не публикуем
	if err := ctx.Err(); err != nil {
		o.setState(StateIdle)
		return errors.Wrap(err, "обновление прервано")
	}

	o.setState(StateRebuilding)
	o.registry.ReplaceAll(records)
	o.setState(StateIdle)

	o.logger.With("count", o.registry.Len()).
		With("elapsed", time.Since(start).String()).
		Info("список процессов обновлен")

	return nil
}

// Terminate завершает процесс из последнего снимка. Перед kill проверяем, что pid
// все еще принадлежит тому же процессу, иначе можно убить чужой процесс с переиспользованным pid.
func (o *Orchestrator) Terminate(ctx context.Context, pid string) TerminationResult {
	o.mx.Lock()
	defer o.mx.Unlock()

	l := o.logger.With("pid", pid)
	fail := func(err error) TerminationResult {
		l.Error(err)
		return TerminationResult{PID: pid, Detail: err.Error(), Err: err}
	}

	rec, ok := o.registry.Get(pid)
	if !ok {
		return fail(errors.Wrapf(ErrUnknownProcess, "pid %s", pid))
	}

	if err := o.verify(rec); err != nil {
		return fail(err)
	}

	if err := o.terminator.Terminate(ctx, pid); err != nil {
		return fail(err)
	}

	o.registry.Remove(pid)
	l.Info("процесс завершен и удален из списка")

	return TerminationResult{PID: pid, Success: true}
}

func (o *Orchestrator) verify(rec ProcessRecord) error {
	current, err := o.identity.Lookup(rec.PID)
	if err != nil {
		return errors.Wrapf(ErrProcessChanged, "pid %s: %v", rec.PID, err)
	}

	// при обновлении данных о процессе получить не удалось, сравнивать не с чем
	if rec.Identity.IsZero() {
		return nil
	}

	if !rec.Identity.Match(current) {
		return errors.Wrapf(ErrProcessChanged, "pid %s: ожидался %q (старт %d), сейчас %q (старт %d)",
			rec.PID, rec.Identity.Name, rec.Identity.StartTime, current.Name, current.StartTime)
	}

	return nil
}

func (o *Orchestrator) Snapshot() Snapshot {
	return Snapshot{
		RefreshedAt: o.registry.RefreshedAt(),
		Processes:   o.registry.Snapshot(),
	}
}

func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

func (o *Orchestrator) setState(s State) {
	o.state.Store(int32(s))
	o.logger.With("state", s.String()).Debug("смена состояния")
}
