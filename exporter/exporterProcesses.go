package exporter

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"

	"github.com/LazarenkoA/jvm_process_exporter/jvm"
	"github.com/LazarenkoA/jvm_process_exporter/notify"
	"github.com/LazarenkoA/jvm_process_exporter/settings"
)

//go:generate mockgen -source=$GOFILE -package=mock_exporter -destination=./mock/mockManager.go
type IProcessManager interface {
	Refresh(ctx context.Context) error
	Terminate(ctx context.Context, pid string) jvm.TerminationResult
	Snapshot() jvm.Snapshot
}

const cacheKey = "refresh"

type Processes struct {
	BaseExporter

	collectMx    sync.Mutex
	manager      IProcessManager
	notifier     notify.INotifier
	cache        *expirable.LRU[string, time.Time]
	ttl          time.Duration
	count        prometheus.Gauge
	terminations *prometheus.CounterVec
	wg           sync.WaitGroup
}

func (exp *Processes) Construct(s *settings.Settings, manager IProcessManager, notifier notify.INotifier) *Processes {
	exp.BaseExporter = newBase(exp.GetName())
	exp.logger.Info("Создание объекта")

	prefix := s.GetMetricNamePrefix()
	constLabels := prometheus.Labels{"host": exp.host}

	exp.gauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        prefix + "jvm_process_memory_mb",
			Help:        "Память java процесса по данным jstat -gc (S1U + OU), MB",
			ConstLabels: constLabels,
		},
		[]string{"pid", "name", "type"},
	)
	exp.count = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        prefix + "jvm_processes",
		Help:        "Количество найденных java процессов",
		ConstLabels: constLabels,
	})
	exp.terminations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        prefix + "jvm_terminations_total",
			Help:        "Попытки завершения java процессов",
			ConstLabels: constLabels,
		},
		[]string{"result"},
	)

	exp.manager = manager
	exp.notifier = notifier
	if exp.notifier == nil {
		exp.notifier = notify.Nop{}
	}

	// ttl <= 0 у expirable означает "вечно", поэтому такой кэш не используем
	exp.ttl = s.CacheDuration()
	exp.cache = expirable.NewLRU[string, time.Time](1, nil, exp.ttl)
	return exp
}

func (exp *Processes) Collect(ch chan<- prometheus.Metric) {
	if exp.isLocked.Load() {
		return
	}

	exp.collectMx.Lock()
	defer exp.collectMx.Unlock()

	exp.getValue()
	exp.gauge.Collect(ch)
	exp.count.Collect(ch)
	exp.terminations.Collect(ch)
}

func (exp *Processes) Describe(ch chan<- *prometheus.Desc) {
	exp.BaseExporter.Describe(ch)
	exp.count.Describe(ch)
	exp.terminations.Describe(ch)
}

func (exp *Processes) Stop() {
	exp.BaseExporter.Stop()
	exp.wg.Wait()
}

func (exp *Processes) GetName() string {
	return "processes"
}

func (exp *Processes) getValue() {
	if _, ok := exp.cache.Get(cacheKey); ok && exp.ttl > 0 {
		exp.logger.Debug("данные взяты из кэша")
	} else {
		exp.logger.Debug("получение данных экспортера")
		if err := exp.refresh(exp.ctx); err != nil {
			exp.logger.Error(errors.Wrap(err, "refresh error"))
		}
	}

	snap := exp.manager.Snapshot()

	exp.gauge.Reset()
	for _, p := range snap.Processes {
		if p.MemoryMB == nil {
			continue
		}
		exp.gauge.WithLabelValues(p.PID, p.Name, string(p.ProcessType)).Set(float64(*p.MemoryMB))
	}
	exp.count.Set(float64(len(snap.Processes)))
}

func (exp *Processes) refresh(ctx context.Context) error {
	err := exp.manager.Refresh(ctx)
	exp.cache.Add(cacheKey, time.Now())

	if err != nil {
		exp.notify(notify.Event{Kind: notify.EventRefreshFail, Detail: err.Error()})
		return err
	}

	exp.notify(notify.Event{Kind: notify.EventRefreshed, Processes: len(exp.manager.Snapshot().Processes)})
	return nil
}

func (exp *Processes) terminate(ctx context.Context, pid string) jvm.TerminationResult {
	res := exp.manager.Terminate(ctx, pid)
	exp.terminations.WithLabelValues(lo.Ternary(res.Success, "success", "failure")).Inc()

	l := exp.logger.With("pid", pid)
	if res.Success {
		l.Info("процесс завершен")
		exp.notify(notify.Event{Kind: notify.EventTerminated, PID: pid})
	} else {
		l.With("detail", res.Detail).Warn("процесс не завершен")
		exp.notify(notify.Event{Kind: notify.EventTermFail, PID: pid, Detail: res.Detail})
	}

	return res
}

// notify не блокирует вызывающего, дожидаемся отправки только в Stop.
// Add под exp.mx: после отмены контекста в Stop новых отправок нет и Wait не конкурирует с Add
func (exp *Processes) notify(ev notify.Event) {
	exp.mx.Lock()
	if exp.Stopped() {
		exp.mx.Unlock()
		exp.logger.With("kind", ev.Kind).Debug("метрика остановлена, уведомление пропущено")
		return
	}
	exp.wg.Add(1)
	exp.mx.Unlock()

	go func() {
		defer exp.wg.Done()

		if err := exp.notifier.Notify(exp.ctx, ev); err != nil {
			exp.logger.With("kind", ev.Kind).Debug(errors.Wrap(err, "notify error"))
		}
	}()
}
