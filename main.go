package main

//go:generate go run release/release.go

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/judwhite/go-svc"

	"github.com/LazarenkoA/jvm_process_exporter/jvm"
	"github.com/LazarenkoA/jvm_process_exporter/logger"
	"github.com/LazarenkoA/jvm_process_exporter/settings"
	"github.com/LazarenkoA/jvm_process_exporter/view"
)

var (
	version   = "undefined"
	gitCommit = "undefined"
)

func main() {
	var settingsPath, port, kill string
	var help, v, list bool

	flag.StringVar(&settingsPath, "settings", "", "Путь к файлу настроек, если не задан используются значения по умолчанию")
	flag.StringVar(&port, "port", "9092", "Порт для прослушивания")
	flag.BoolVar(&list, "list", false, "Вывести список java процессов и выйти")
	flag.StringVar(&kill, "kill", "", "Завершить java процесс с указанным pid и выйти")
	flag.BoolVar(&help, "help", false, "Помощь")
	flag.BoolVar(&v, "version", false, "Версия")
	flag.Parse()

	if help {
		flag.Usage()
		return
	}
	if v {
		fmt.Printf("Версия: %s\n", version)
		return
	}

	s, err := settings.LoadSettings(settingsPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger.InitLogger(s.LogDir, s.LogLevel)
	logger.DefaultLogger.Infof("Версия: %q, gitCommit: %q", version, gitCommit)

	switch {
	case list:
		os.Exit(runList(s))
	case kill != "":
		os.Exit(runKill(s, kill))
	}

	if err := svc.Run(&app{settings: s, port: port}); err != nil {
		logger.DefaultLogger.Error(err)
		os.Exit(1)
	}
}

func runList(s *settings.Settings) int {
	orch := jvm.New(s)
	if err := orch.Refresh(context.Background()); err != nil {
		fmt.Println(err)
		return 1
	}

	view.Render(os.Stdout, orch.Snapshot())
	return 0
}

// runKill pid должен быть в списке, поэтому сначала обновляем реестр
func runKill(s *settings.Settings, pid string) int {
	orch := jvm.New(s)
	if err := orch.Refresh(context.Background()); err != nil {
		fmt.Println(err)
		return 1
	}

	res := orch.Terminate(context.Background(), pid)
	view.RenderResult(os.Stdout, res)
	if !res.Success {
		return 1
	}

	return 0
}

// add info
// go build -o "jvm_exporter" -ldflags "-s -w" - билд чутка меньше размером
//
// pprof
// go tool pprof -http=:8082 .\heap (просмотр в браузере)
//
// go test -fuzz=Fuzz_ReplaceAll ./jvm -fuzztime=30s
