package exporter

import (
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/process"

	"github.com/LazarenkoA/jvm_process_exporter/exporter/model"
)

type hardwareInfo struct {
}

func (h *hardwareInfo) Usage(pid int32) (model.ResourceUsage, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return model.ResourceUsage{}, errors.Wrapf(err, "process %d", pid)
	}

	var result model.ResourceUsage
	result.CPUPercent, _ = p.CPUPercent()
	result.MemoryPercent, _ = p.MemoryPercent()
	if mInfo, err := p.MemoryInfo(); err == nil {
		result.RSS = mInfo.RSS
		result.VMS = mInfo.VMS
	}

	return result, nil
}
