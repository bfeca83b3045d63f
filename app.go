package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/judwhite/go-svc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	exp "github.com/LazarenkoA/jvm_process_exporter/exporter"
	"github.com/LazarenkoA/jvm_process_exporter/jvm"
	"github.com/LazarenkoA/jvm_process_exporter/logger"
	"github.com/LazarenkoA/jvm_process_exporter/notify"
	"github.com/LazarenkoA/jvm_process_exporter/settings"
)

type app struct {
	settings *settings.Settings // начальные настройки, после перечитывания актуальные в current
	current  atomic.Pointer[appState]
	reloadMx sync.Mutex
	httpSrv  *http.Server
	port     string
	ctx      context.Context
	cancel   context.CancelFunc
	registry *prometheus.Registry
}

// appState все, что пересоздается при перечитывании настроек. После публикации не изменяется,
// кроме stopLoop, который трогают только под reloadMx
type appState struct {
	settings *settings.Settings
	orch     *jvm.Orchestrator
	procs    *exp.Processes
	metric   *exp.Metrics
	mux      *http.ServeMux
	stopLoop context.CancelFunc
}

func (a *app) Init(_ svc.Environment) (err error) {
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.registry = prometheus.NewRegistry()

	a.current.Store(a.build(a.settings))
	a.initHTTP()

	return nil
}

func (a *app) Start() error {
	logger.DefaultLogger.Info("Запущен сбор метрик java процессов")
	fmt.Println("port :", a.port)

	rt := a.current.Load()
	if err := rt.orch.Refresh(a.ctx); err != nil {
		// не фатально, jps может появиться позже
		logger.DefaultLogger.Warn(err)
	}

	a.reloadMx.Lock()
	a.startRefreshLoop(rt)
	a.register(rt)
	a.reloadMx.Unlock()

	go a.reloadWatcher()
	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.DefaultLogger.Error(err)
		}
	}()

	return nil
}

func (a *app) Stop() error {
	logger.DefaultLogger.Info("Остановка приложения")

	a.reloadMx.Lock()
	defer a.reloadMx.Unlock()

	defer a.cancel()

	rt := a.current.Load()
	defer rt.stopAll()
	defer rt.stopLoop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	return a.httpSrv.Shutdown(ctx)
}

// build собирает оркестратор и экспортеры по переданным настройкам, ничего общего с текущими не меняет
func (a *app) build(s *settings.Settings) *appState {
	rt := &appState{
		settings: s,
		orch:     jvm.New(s),
		metric:   new(exp.Metrics),
		stopLoop: func() {},
	}

	rt.procs = new(exp.Processes).Construct(s, rt.orch, notify.New(s.NotifyURL(), s.NotifyTimeout()))
	res := new(exp.Resources).Construct(s, rt.orch) // CPU/память ОС по процессам из реестра

	rt.metric.AppendExporter(rt.procs, res)
	rt.mux = a.newMux(rt)
	return rt
}

// вызывать под reloadMx
func (a *app) startRefreshLoop(rt *appState) {
	ctx, cancel := context.WithCancel(a.ctx)
	rt.stopLoop = cancel

	go refreshLoop(ctx, rt.orch, rt.settings.RefreshEvery())
}

// refreshLoop фоновое обновление, если в настройках задан RefreshInterval
func refreshLoop(ctx context.Context, orch *jvm.Orchestrator, every time.Duration) {
	if every <= 0 {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := orch.Refresh(ctx); err != nil {
				logger.DefaultLogger.Warn(err)
			}
		}
	}
}

func (a *app) reloadWatcher() {
	// Обработка сигала от ОС
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGHUP) // SIGHUP получаем при отпавки reload
	defer signal.Stop(c)

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-c:
		}

		// перечитываем настройки
		news, err := settings.LoadSettings(a.current.Load().settings.SettingsPath)
		if err != nil {
			logger.DefaultLogger.Error(err)
			os.Exit(1)
		}

		a.reload(news)
	}
}

// reload заменяет текущий appState новым. Старые экспортеры останавливаются после публикации нового
func (a *app) reload(news *settings.Settings) {
	a.reloadMx.Lock()
	defer a.reloadMx.Unlock()

	if a.ctx.Err() != nil {
		return
	}

	logger.Reload(news.LogDir, news.LogLevel)

	old := a.current.Load()
	rt := a.build(news)

	old.stopLoop()
	a.unregister(old)
	a.register(rt)
	a.startRefreshLoop(rt)
	a.current.Store(rt)
	old.stopAll()

	if err := rt.orch.Refresh(a.ctx); err != nil {
		logger.DefaultLogger.Warn(err)
	}

	logger.DefaultLogger.Info("Обновлены настройки")
}

func (a *app) initHTTP() {
	a.httpSrv = &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.current.Load().mux.ServeHTTP(w, r)
		}),
		Addr:              ":" + a.port,
		ReadHeaderTimeout: time.Second * 10,
	}
}

// newMux обработчики привязаны к экспортерам своего appState
func (a *app) newMux(rt *appState) *http.ServeMux {
	siteMux := http.NewServeMux()
	siteMux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	siteMux.Handle("/processes", exp.ProcessList(rt.procs))
	siteMux.Handle("/refresh", exp.Refresh(rt.procs))
	siteMux.Handle("/terminate", exp.Terminate(rt.procs))
	siteMux.Handle("/Continue", exp.Continue(rt.metric))
	siteMux.Handle("/Pause", exp.Pause(rt.metric))

	siteMux.HandleFunc("/debug/pprof/", pprof.Index)
	siteMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	siteMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	siteMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	siteMux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return siteMux
}

func (rt *appState) stopAll() {
	for _, ex := range rt.metric.Exporters {
		ex.Stop()
	}
}

func (a *app) unregister(rt *appState) {
	for _, ex := range rt.metric.Exporters {
		a.registry.Unregister(ex)
	}
}

func (a *app) register(rt *appState) {
	for _, ex := range rt.metric.Exporters {
		if err := a.registry.Register(ex); err != nil {
			logger.DefaultLogger.Errorf("Метрика %q не зарегистрирована: %v", ex.GetName(), err)
		}
	}
}
