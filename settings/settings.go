package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

type Settings struct {
	LogDir       string `yaml:"LogDir"`
	SettingsPath string `yaml:"-"`

	JDK struct {
		Path        string `yaml:"Path"` // каталог bin JDK, если пусто - ищем в PATH
		ListCommand string `yaml:"ListCommand" default:"jps"`
		StatCommand string `yaml:"StatCommand" default:"jstat"`
	} `yaml:"JDK"`

	// Команда принудительного завершения, pid дописывается последним аргументом.
	// Если не задана, берется taskkill /F /PID для windows и kill -9 для остальных ОС
	KillCommand []string `yaml:"KillCommand"`

	Notify *struct {
		URL     string `yaml:"URL"`
		Timeout int    `yaml:"Timeout" default:"10"`
	} `yaml:"Notify"`

	KeepFullName       []string `yaml:"KeepFullName" default:"[\"idea\"]"`
	ExecutableSuffixes []string `yaml:"ExecutableSuffixes" default:"[\".exe\"]"`
	MetricNamePrefix   string   `yaml:"MetricNamePrefix"`

	Timeout         int `yaml:"Timeout" default:"5"`         // сек, ожидание одной внешней команды
	CacheTTL        int `yaml:"CacheTTL" default:"5"`        // сек, как долго /metrics не перечитывает процессы
	RefreshInterval int `yaml:"RefreshInterval" default:"0"` // сек, 0 - обновление только по запросу

	LogLevel int `yaml:"LogLevel" default:"4"` // Уровень логирования от 2 до 5, где 2 - ошибка, 3 - предупреждение, 4 - информация, 5 - дебаг
}

func LoadSettings(filePath string) (*Settings, error) {
	s := new(Settings)

	if filePath != "" {
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			return nil, fmt.Errorf("файл настроек %q не найден", filePath)
		}
		file, err := os.ReadFile(filePath)
		if err != nil {
			return nil, errors.Wrapf(err, "ошибка чтения файла %q", filePath)
		}

		if err := yaml.Unmarshal(file, s); err != nil {
			return nil, errors.Wrap(err, "ошибка десериализации настроек")
		}
	}

	if err := defaults.Set(s); err != nil {
		return nil, errors.Wrap(err, "set default error")
	}

	s.SettingsPath = filePath
	return s, nil
}

// Default настройки без файла
func Default() *Settings {
	s, _ := LoadSettings("")
	return s
}

func (s *Settings) ListCommand() string {
	return s.jdkTool(s.JDK.ListCommand)
}

func (s *Settings) StatCommand() string {
	return s.jdkTool(s.JDK.StatCommand)
}

// ListToolName имя утилиты листинга без пути и расширения, нужно чтобы jps не попадал в список процессов
func (s *Settings) ListToolName() string {
	name := filepath.Base(s.JDK.ListCommand)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (s *Settings) KillCommandFor(pid string) (string, []string) {
	cmd := s.KillCommand
	if len(cmd) == 0 {
		cmd = defaultKillCommand(runtime.GOOS)
	}

	args := append(append([]string{}, cmd[1:]...), pid)
	return cmd[0], args
}

func (s *Settings) CommandTimeout() time.Duration {
	return time.Second * time.Duration(s.Timeout)
}

func (s *Settings) CacheDuration() time.Duration {
	return time.Second * time.Duration(s.CacheTTL)
}

func (s *Settings) RefreshEvery() time.Duration {
	return time.Second * time.Duration(s.RefreshInterval)
}

func (s *Settings) NotifyURL() string {
	if s.Notify == nil {
		return ""
	}
	return s.Notify.URL
}

func (s *Settings) NotifyTimeout() time.Duration {
	if s.Notify == nil || s.Notify.Timeout <= 0 {
		return time.Second * 10
	}
	return time.Second * time.Duration(s.Notify.Timeout)
}

func (s *Settings) GetMetricNamePrefix() string {
	return s.MetricNamePrefix
}

func (s *Settings) jdkTool(name string) string {
	if s.JDK.Path == "" {
		return name
	}
	return filepath.Join(s.JDK.Path, name)
}

func defaultKillCommand(goos string) []string {
	if goos == "windows" {
		return []string{"taskkill", "/F", "/PID"}
	}
	return []string{"kill", "-9"}
}
