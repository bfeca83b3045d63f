package exporter

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/LazarenkoA/jvm_process_exporter/exporter/model"
	"github.com/LazarenkoA/jvm_process_exporter/logger"
)

// базовый класс для всех метрик
type BaseExporter struct {
	mx       sync.Mutex
	gauge    *prometheus.GaugeVec
	ctx      context.Context
	cancel   context.CancelFunc
	isLocked atomic.Bool
	resume   *time.Timer // автоснятие паузы
	logger   *zap.SugaredLogger
	host     string
}

type Metrics struct {
	Exporters []model.IExporter
}

func newBase(name string) BaseExporter {
	host, _ := os.Hostname()
	ctx, cancel := context.WithCancel(context.Background())

	return BaseExporter{
		host:   host,
		logger: logger.DefaultLogger.Named(name),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (exp *BaseExporter) Stop() {
	exp.logger.Info("метрика остановлена")

	exp.mx.Lock()
	defer exp.mx.Unlock()

	exp.stopResume()
	exp.cancel()
}

func (exp *BaseExporter) Stopped() bool {
	return exp.ctx != nil && exp.ctx.Err() != nil
}

// Pause останавливает сбор. Если resumeAfter > 0, сбор включится сам, повторная пауза
// или Continue отменяют запланированное включение.
func (exp *BaseExporter) Pause(expName string, resumeAfter time.Duration) {
	l := exp.logger.With("name", expName)

	if exp.isLocked.CompareAndSwap(false, true) {
		l.Info("Pause. Блокировка установлена")

		if exp.gauge != nil {
			exp.gauge.Reset()
		}
	} else {
		l.Debug("Pause. Уже заблокировано")
	}

	exp.mx.Lock()
	defer exp.mx.Unlock()

	exp.stopResume()
	if resumeAfter <= 0 {
		return
	}

	var t *time.Timer
	t = time.AfterFunc(resumeAfter, func() {
		exp.mx.Lock()
		current := exp.resume == t
		if current {
			exp.resume = nil
		}
		exp.mx.Unlock()

		if current {
			exp.unlock(expName)
		}
	})
	exp.resume = t
}

func (exp *BaseExporter) Continue(expName string) {
	exp.mx.Lock()
	exp.stopResume()
	exp.mx.Unlock()

	exp.unlock(expName)
}

func (exp *BaseExporter) Describe(ch chan<- *prometheus.Desc) {
	if exp.gauge != nil {
		exp.gauge.Describe(ch)
	}
}

func (exp *BaseExporter) unlock(expName string) {
	l := exp.logger.With("name", expName)

	if exp.isLocked.CompareAndSwap(true, false) {
		l.Info("Continue. Блокировка снята")
	} else {
		l.Debug("Continue. Блокировка не была установлена")
	}
}

// вызывать под exp.mx
func (exp *BaseExporter) stopResume() {
	if exp.resume != nil {
		exp.resume.Stop()
		exp.resume = nil
	}
}

func (exp *Metrics) AppendExporter(ex ...model.IExporter) {
	exp.Exporters = append(exp.Exporters, ex...)
}

func (exp *Metrics) findExporter(names ...string) (result []model.IExporter) {
	for _, name := range names {
		for i := range exp.Exporters {
			if strings.EqualFold(exp.Exporters[i].GetName(), strings.TrimSpace(name)) || name == "all" {
				result = append(result, exp.Exporters[i])
			}
		}
	}

	return result
}

func Pause(metrics *Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, fmt.Sprintf("Метод %q не поддерживается", r.Method), http.StatusMethodNotAllowed)
			return
		}
		logger.DefaultLogger.With("URL", r.URL.RequestURI()).Debug("Пауза")

		metricNames := r.URL.Query().Get("metricNames")
		offsetMinStr := r.URL.Query().Get("offsetMin")

		var offsetMin int
		if offsetMinStr != "" {
			if v, err := strconv.ParseInt(offsetMinStr, 0, 0); err == nil {
				offsetMin = int(v)
				logger.DefaultLogger.Infof("Сбор метрик включится автоматически через %d минут, в %v", offsetMin, time.Now().Add(time.Minute*time.Duration(offsetMin)))
			} else {
				logger.DefaultLogger.With("offsetMin", offsetMinStr).Error(errors.Wrap(err, "Ошибка конвертации offsetMin"))
			}
		}

		logger.DefaultLogger.Infof("Приостановить сбор метрик %q", metricNames)
		for _, exp := range metrics.findExporter(strings.Split(metricNames, ",")...) {
			exp.Pause(exp.GetName(), time.Minute*time.Duration(offsetMin))
		}
	})
}

func Continue(metrics *Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, fmt.Sprintf("Метод %q не поддерживается", r.Method), http.StatusMethodNotAllowed)
			return
		}
		logger.DefaultLogger.With("URL", r.URL.RequestURI()).Debug("Продолжить")

		metricNames := r.URL.Query().Get("metricNames")
		logger.DefaultLogger.Info("Продолжить сбор метрик ", metricNames)

		for _, exp := range metrics.findExporter(strings.Split(metricNames, ",")...) {
			exp.Continue(exp.GetName())
		}
	})
}
