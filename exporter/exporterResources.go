package exporter

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/LazarenkoA/jvm_process_exporter/exporter/model"
	"github.com/LazarenkoA/jvm_process_exporter/settings"
)

//go:generate mockgen -source=$GOFILE -package=mock_exporter -destination=./mock/mockResources.go
type IResourceInfo interface {
	Usage(pid int32) (model.ResourceUsage, error)
}

// Resources CPU и память ОС для процессов из реестра. Реестр не обновляет, берет последний снимок
type Resources struct {
	BaseExporter

	manager IProcessManager
	hInfo   IResourceInfo
}

func (exp *Resources) Construct(s *settings.Settings, manager IProcessManager) *Resources {
	exp.BaseExporter = newBase(exp.GetName())
	exp.logger.Info("Создание объекта")

	exp.gauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        s.GetMetricNamePrefix() + "jvm_process_resources",
			Help:        "Метрики CPU/памяти ОС в разрезе java процессов",
			ConstLabels: prometheus.Labels{"host": exp.host},
		},
		[]string{"pid", "name", "metrics"},
	)

	exp.manager = manager
	exp.hInfo = new(hardwareInfo)
	return exp
}

func (exp *Resources) getValue() {
	exp.logger.Debug("получение данных экспортера")

	exp.gauge.Reset()
	for _, p := range exp.manager.Snapshot().Processes {
		pid, err := strconv.ParseInt(p.PID, 10, 32)
		if err != nil {
			continue
		}

		usage, err := exp.hInfo.Usage(int32(pid))
		if err != nil {
			// процесс мог завершиться после обновления
			exp.logger.With("pid", p.PID).Debug(err)
			continue
		}

		exp.gauge.WithLabelValues(p.PID, p.Name, "cpu").Set(usage.CPUPercent)
		exp.gauge.WithLabelValues(p.PID, p.Name, "memoryPercent").Set(float64(usage.MemoryPercent))
		exp.gauge.WithLabelValues(p.PID, p.Name, "memoryRSS").Set(float64(usage.RSS))
		exp.gauge.WithLabelValues(p.PID, p.Name, "memoryVMS").Set(float64(usage.VMS))
	}
}

func (exp *Resources) Collect(ch chan<- prometheus.Metric) {
	if exp.isLocked.Load() {
		return
	}

	exp.getValue()
	exp.gauge.Collect(ch)
}

func (exp *Resources) GetName() string {
	return "resources"
}

// sum(topk(5, jvm_process_resources{metrics="memoryRSS"})) by (name)
