package jvm

import (
	"sync"
	"time"
)

// Registry снимок процессов последнего обновления. Всегда заменяется целиком,
// точечно только удаляется запись после успешного завершения процесса.
type Registry struct {
	mx          sync.RWMutex
	records     []ProcessRecord
	index       map[string]int
	refreshedAt time.Time
}

func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

// ReplaceAll при повторе pid побеждает последняя запись, позиция остается от первой
func (r *Registry) ReplaceAll(records []ProcessRecord) {
	list := make([]ProcessRecord, 0, len(records))
	index := make(map[string]int, len(records))

	for _, rec := range records {
		if i, ok := index[rec.PID]; ok {
			list[i] = rec
			continue
		}

		index[rec.PID] = len(list)
		list = append(list, rec)
	}

	r.mx.Lock()
	defer r.mx.Unlock()

	r.records = list
	r.index = index
	r.refreshedAt = time.Now()
}

func (r *Registry) Remove(pid string) bool {
	r.mx.Lock()
	defer r.mx.Unlock()

	i, ok := r.index[pid]
	if !ok {
		return false
	}

	list := make([]ProcessRecord, 0, len(r.records)-1)
	list = append(list, r.records[:i]...)
	list = append(list, r.records[i+1:]...)

	r.records = list
	r.reindex()
	return true
}

func (r *Registry) Clear() {
	r.mx.Lock()
	defer r.mx.Unlock()

	r.records = nil
	r.index = map[string]int{}
	r.refreshedAt = time.Now()
}

// Snapshot копия записей в порядке последнего ReplaceAll
func (r *Registry) Snapshot() []ProcessRecord {
	r.mx.RLock()
	defer r.mx.RUnlock()

	result := make([]ProcessRecord, len(r.records))
	copy(result, r.records)
	return result
}

func (r *Registry) Get(pid string) (ProcessRecord, bool) {
	r.mx.RLock()
	defer r.mx.RUnlock()

	if i, ok := r.index[pid]; ok {
		return r.records[i], true
	}
	return ProcessRecord{}, false
}

func (r *Registry) Len() int {
	r.mx.RLock()
	defer r.mx.RUnlock()

	return len(r.records)
}

func (r *Registry) RefreshedAt() time.Time {
	r.mx.RLock()
	defer r.mx.RUnlock()

	return r.refreshedAt
}

func (r *Registry) reindex() {
	r.index = make(map[string]int, len(r.records))
	for i, rec := range r.records {
		r.index[rec.PID] = i
	}
}
