package jvm

import (
	"strconv"
	"time"
)

type ProcessType string

// ProcessTypeJava единственный тип процессов, которые находит jps
const ProcessTypeJava ProcessType = "java"

type (
	// Discovered строка вывода jps после фильтрации и нормализации имени
	Discovered struct {
		PID  string
		Name string
	}

	// Identity то, что ОС сообщает о процессе. По ней проверяем, что pid не переиспользован
	Identity struct {
		Name      string `json:"-"`
		StartTime uint64 `json:"-"`
	}

	ProcessRecord struct {
		PID             string      `json:"pid"`
		Name            string      `json:"name"`
		MemoryMB        *int        `json:"memoryMb"` // nil если jstat не отдал данные
		ProcessType     ProcessType `json:"processType"`
		AuxiliaryParams string      `json:"auxiliaryParams"`
		Identity        Identity    `json:"-"`
	}

	TerminationResult struct {
		PID     string `json:"pid"`
		Success bool   `json:"success"`
		Detail  string `json:"detail,omitempty"`
		Err     error  `json:"-"`
	}

	Snapshot struct {
		RefreshedAt time.Time       `json:"refreshedAt"`
		Processes   []ProcessRecord `json:"processes"`
	}
)

func (r ProcessRecord) Memory() string {
	if r.MemoryMB == nil {
		return ""
	}
	return strconv.Itoa(*r.MemoryMB) + " MB"
}

func (i Identity) IsZero() bool {
	return i == Identity{}
}

func (i Identity) Match(other Identity) bool {
	return i.Name == other.Name && i.StartTime == other.StartTime
}
