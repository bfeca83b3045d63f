package model

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type IExporter interface {
	prometheus.Collector

	Pause(expName string, resumeAfter time.Duration)
	Continue(expName string)
	Stop()
	Stopped() bool
	GetName() string
}

// ResourceUsage потребление ресурсов процессом по данным ОС
type ResourceUsage struct {
	CPUPercent    float64
	MemoryPercent float32
	RSS           uint64
	VMS           uint64
}
