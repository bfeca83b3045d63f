package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var atom zap.AtomicLevel

var levelMap = map[int]zapcore.Level{
	5: zapcore.DebugLevel,
	4: zapcore.InfoLevel,
	3: zapcore.WarnLevel,
	2: zapcore.ErrorLevel,
}

var (
	DefaultLogger *zap.SugaredLogger
	NopLogger     *zap.SugaredLogger

	// файл, в который сейчас пишет DefaultLogger, nil при выводе в stdout
	out *fileWriter
)

// fileWriter позволяет сменить файл лога без замены самого логгера
type fileWriter struct {
	lj atomic.Pointer[lumberjack.Logger]
}

func init() {
	atom = zap.NewAtomicLevel()
	NopLogger = newNopLogger()

	// до InitLogger компоненты пишут в никуда
	DefaultLogger = NopLogger
}

func InitLogger(logDir string, ll int) {
	DefaultLogger = newLogger(filepath.Join(logDir, "logs"))
	SetLevel(ll)
}

// Reload применяет новые настройки к уже созданному логгеру. DefaultLogger не переназначается,
// поэтому вызов безопасен при работающих компонентах
func Reload(logDir string, ll int) {
	SetLevel(ll)

	if out != nil {
		out.swap(newRotator(filepath.Join(logDir, "logs")))
	}
}

func newLogger(logDir string) *zap.SugaredLogger {
	var w zapcore.WriteSyncer
	if isTesting() {
		out = nil
		w = zapcore.AddSync(os.Stdout)
	} else {
		out = new(fileWriter)
		out.lj.Store(newRotator(logDir))
		w = zapcore.AddSync(out)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig()),
		w,
		atom,
	)

	return zap.New(core).Sugar()
}

func newRotator(logDir string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "log.txt"),
		MaxSize:    10, // megabytes
		MaxBackups: 10,
		MaxAge:     5, // days
	}
}

func (f *fileWriter) Write(p []byte) (int, error) {
	return f.lj.Load().Write(p)
}

func (f *fileWriter) swap(lj *lumberjack.Logger) {
	if cur := f.lj.Load(); cur != nil && cur.Filename == lj.Filename {
		return
	}

	if old := f.lj.Swap(lj); old != nil {
		_ = old.Close()
	}
}

// SetLevel уровни от 2 (ошибка) до 5 (дебаг), неизвестное значение - info
func SetLevel(level int) {
	if l, ok := levelMap[level]; ok {
		atom.SetLevel(l)
	} else {
		atom.SetLevel(zapcore.InfoLevel)
	}
}

func newNopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func isTesting() bool {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}

	return false
}
