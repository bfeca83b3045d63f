package jvm

import "github.com/pkg/errors"

var (
	ErrEnumerationUnavailable = errors.New("список java процессов недоступен")
	ErrSamplingFailed         = errors.New("не удалось получить память процесса")
	ErrTerminationFailed      = errors.New("не удалось завершить процесс")
	ErrUnknownProcess         = errors.New("процесс отсутствует в последнем снимке")
	ErrProcessChanged         = errors.New("процесс завершился или pid занят другим процессом")
	ErrCommandTimeout         = errors.New("выполнение команды прервано по таймауту")
)
