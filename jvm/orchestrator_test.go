package jvm_test

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LazarenkoA/jvm_process_exporter/jvm"
	mock_jvm "github.com/LazarenkoA/jvm_process_exporter/jvm/mock"
	"github.com/LazarenkoA/jvm_process_exporter/logger"
	"github.com/LazarenkoA/jvm_process_exporter/settings"
)

func testSettings() *settings.Settings {
	s := settings.Default()
	s.KillCommand = []string{"kill", "-9"}
	return s
}

func Test_Enumerator(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()

	run := mock_jvm.NewMockIRunner(c)
	e := jvm.NewEnumerator(testSettings(), run, logger.NopLogger)

	t.Run("pass", func(t *testing.T) {
		run.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd *exec.Cmd) (string, error) {
			assert.Equal(t, []string{"jps", "-l"}, cmd.Args)
			return "1234 jps\n100 org.example.First\n200 org.example.Second\n", nil
		})

		result, err := e.Discover(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []jvm.Discovered{{PID: "100", Name: "First"}, {PID: "200", Name: "Second"}}, result)
	})
	t.Run("unavailable", func(t *testing.T) {
		run.EXPECT().Run(gomock.Any(), gomock.Any()).Return("", errors.New("exec: \"jps\": executable file not found in $PATH"))

		result, err := e.Discover(context.Background())
		assert.ErrorIs(t, err, jvm.ErrEnumerationUnavailable)
		assert.Nil(t, result)
	})
}

func Test_Sampler(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()

	run := mock_jvm.NewMockIRunner(c)
	s := jvm.NewSampler(testSettings(), run, logger.NopLogger)

	t.Run("pass", func(t *testing.T) {
		run.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd *exec.Cmd) (string, error) {
			assert.Equal(t, []string{"jstat", "-gc", "100"}, cmd.Args)
			return jstatOut("1024", "3072"), nil
		})

		mb, ok := s.Sample(context.Background(), "100")
		assert.True(t, ok)
		assert.Equal(t, 4, mb)
	})
	t.Run("malformed", func(t *testing.T) {
		run.EXPECT().Run(gomock.Any(), gomock.Any()).Return(jstatOut("x", "3072"), nil)

		_, ok := s.Sample(context.Background(), "100")
		assert.False(t, ok)
	})
	t.Run("process gone", func(t *testing.T) {
		run.EXPECT().Run(gomock.Any(), gomock.Any()).Return("", errors.New("exit status 1"))

		_, ok := s.Sample(context.Background(), "100")
		assert.False(t, ok)
	})
	t.Run("no output", func(t *testing.T) {
		run.EXPECT().Run(gomock.Any(), gomock.Any()).Return("", nil)

		_, ok := s.Sample(context.Background(), "100")
		assert.False(t, ok)
	})
}

func Test_Terminator(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()

	run := mock_jvm.NewMockIRunner(c)
	term := jvm.NewTerminator(testSettings().KillCommandFor, run, logger.NopLogger)

	t.Run("pass", func(t *testing.T) {
		run.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd *exec.Cmd) (string, error) {
			assert.Equal(t, []string{"kill", "-9", "100"}, cmd.Args)
			return "", nil
		})

		assert.NoError(t, term.Terminate(context.Background(), "100"))
	})
	t.Run("exit code", func(t *testing.T) {
		run.EXPECT().Run(gomock.Any(), gomock.Any()).Return("", errors.New("exit status 1"))

		err := term.Terminate(context.Background(), "100")
		assert.ErrorIs(t, err, jvm.ErrTerminationFailed)
	})
	t.Run("interrupted", func(t *testing.T) {
		run.EXPECT().Run(gomock.Any(), gomock.Any()).Return("", context.Canceled)

		err := term.Terminate(context.Background(), "100")
		assert.ErrorIs(t, err, jvm.ErrTerminationFailed)
	})
}

type fixture struct {
	run      *mock_jvm.MockIRunner
	identity *mock_jvm.MockIIdentity
	orch     *jvm.Orchestrator

	mx   sync.Mutex
	jps  string
	gc   map[string]string // pid -> вывод jstat
	kill map[string]error

	onStat func(pid string) // вызывается перед ответом jstat
}

func newFixture(c *gomock.Controller) *fixture {
	f := &fixture{
		run:      mock_jvm.NewMockIRunner(c),
		identity: mock_jvm.NewMockIIdentity(c),
		gc:       map[string]string{},
		kill:     map[string]error{},
	}

	s := testSettings()
	f.orch = jvm.NewOrchestrator(
		jvm.NewEnumerator(s, f.run, logger.NopLogger),
		jvm.NewSampler(s, f.run, logger.NopLogger),
		jvm.NewTerminator(s.KillCommandFor, f.run, logger.NopLogger),
		f.identity,
		jvm.NewRegistry(),
	)

	// эмуляция jps/jstat/kill по аргументам команды
	f.run.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd *exec.Cmd) (string, error) {
		f.mx.Lock()
		defer f.mx.Unlock()

		switch cmd.Args[0] {
		case "jps":
			if f.jps == "" {
				return "", errors.New("exec: \"jps\": executable file not found in $PATH")
			}
			return f.jps, nil
		case "jstat":
			if f.onStat != nil {
				f.onStat(cmd.Args[2])
			}
			if out, ok := f.gc[cmd.Args[2]]; ok {
				return out, nil
			}
			return "", errors.New("exit status 1")
		case "kill":
			return "", f.kill[cmd.Args[2]]
		}
		return "", errors.New("unexpected command " + strings.Join(cmd.Args, " "))
	}).AnyTimes()

	return f
}

func (f *fixture) set(jps string, gc map[string]string) {
	f.mx.Lock()
	defer f.mx.Unlock()

	f.jps = jps
	f.gc = gc
}

func (f *fixture) setOnStat(fn func(pid string)) {
	f.mx.Lock()
	defer f.mx.Unlock()

	f.onStat = fn
}

func Test_OrchestratorRefresh(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()

	f := newFixture(c)
	f.identity.EXPECT().Lookup(gomock.Any()).Return(jvm.Identity{Name: "java", StartTime: 1}, nil).AnyTimes()

	t.Run("two cycles", func(t *testing.T) {
		f.set("100 org.example.A\n200 org.example.B\n", map[string]string{"100": jstatOut("1024", "3072"), "200": jstatOut("2048", "2048")})
		require.NoError(t, f.orch.Refresh(context.Background()))
		assert.Equal(t, []string{"100", "200"}, snapshotPIDs(f.orch))

		f.set("200 org.example.B\n300 org.example.C\n", map[string]string{"200": jstatOut("2048", "2048"), "300": jstatOut("0", "1024")})
		require.NoError(t, f.orch.Refresh(context.Background()))
		assert.Equal(t, []string{"200", "300"}, snapshotPIDs(f.orch))
		assert.Equal(t, jvm.StateIdle, f.orch.State())
	})
	t.Run("record fields", func(t *testing.T) {
		f.set("100 org.example.A\n", map[string]string{"100": jstatOut("1024", "3072")})
		require.NoError(t, f.orch.Refresh(context.Background()))

		snap := f.orch.Snapshot()
		require.Len(t, snap.Processes, 1)
		rec := snap.Processes[0]
		assert.Equal(t, "A", rec.Name)
		assert.Equal(t, jvm.ProcessTypeJava, rec.ProcessType)
		assert.Equal(t, "", rec.AuxiliaryParams)
		require.NotNil(t, rec.MemoryMB)
		assert.Equal(t, 4, *rec.MemoryMB)
		assert.False(t, snap.RefreshedAt.IsZero())
	})
	t.Run("sampling failure is per pid", func(t *testing.T) {
		// процесс 200 завершился между jps и jstat
		f.set("100 org.example.A\n200 org.example.B\n300 org.example.C\n", map[string]string{"100": jstatOut("x", "3072"), "300": jstatOut("1024", "1024")})
		require.NoError(t, f.orch.Refresh(context.Background()))

		snap := f.orch.Snapshot().Processes
		require.Len(t, snap, 3)
		assert.Nil(t, snap[0].MemoryMB)
		assert.Nil(t, snap[1].MemoryMB)
		require.NotNil(t, snap[2].MemoryMB)
		assert.Equal(t, 2, *snap[2].MemoryMB)
	})
	t.Run("duplicates", func(t *testing.T) {
		f.set("100 org.example.A\n100 org.example.Again\n", map[string]string{})
		require.NoError(t, f.orch.Refresh(context.Background()))

		snap := f.orch.Snapshot().Processes
		require.Len(t, snap, 1)
		assert.Equal(t, "Again", snap[0].Name)
	})
	t.Run("enumeration unavailable", func(t *testing.T) {
		f.set("100 org.example.A\n", map[string]string{})
		require.NoError(t, f.orch.Refresh(context.Background()))

		f.set("", nil)
		err := f.orch.Refresh(context.Background())
		assert.ErrorIs(t, err, jvm.ErrEnumerationUnavailable)
		assert.Empty(t, f.orch.Snapshot().Processes)
		assert.Equal(t, jvm.StateIdle, f.orch.State())

		// следующий цикл снова работает
		f.set("300 org.example.C\n", map[string]string{})
		require.NoError(t, f.orch.Refresh(context.Background()))
		assert.Equal(t, []string{"300"}, snapshotPIDs(f.orch))
	})
	t.Run("cancelled before enumeration", func(t *testing.T) {
		f.set("100 org.example.A\n", map[string]string{"100": jstatOut("1024", "3072")})
		require.NoError(t, f.orch.Refresh(context.Background()))
		before := f.orch.Snapshot()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := f.orch.Refresh(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, errors.Is(err, jvm.ErrEnumerationUnavailable))
		assert.Equal(t, before, f.orch.Snapshot())
		assert.Equal(t, jvm.StateIdle, f.orch.State())
	})
	t.Run("cancelled during sampling", func(t *testing.T) {
		f.set("100 org.example.A\n200 org.example.B\n", map[string]string{"100": jstatOut("1024", "3072"), "200": jstatOut("2048", "2048")})
		require.NoError(t, f.orch.Refresh(context.Background()))
		before := f.orch.Snapshot()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		f.setOnStat(func(pid string) {
			if pid == "100" {
				cancel()
			}
		})
		defer f.setOnStat(nil)

		err := f.orch.Refresh(ctx)
		assert.ErrorIs(t, err, context.Canceled)

		// снимок прошлого обновления, без записей с пустой памятью
		after := f.orch.Snapshot()
		assert.Equal(t, before, after)
		for _, p := range after.Processes {
			assert.NotNil(t, p.MemoryMB, p.PID)
		}
		assert.Equal(t, jvm.StateIdle, f.orch.State())
	})
}

func Test_OrchestratorTerminate(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()

	java := jvm.Identity{Name: "java", StartTime: 42}

	t.Run("exit code 0", func(t *testing.T) {
		f := newFixture(c)
		f.identity.EXPECT().Lookup(gomock.Any()).Return(java, nil).AnyTimes()
		f.set("100 org.example.A\n200 org.example.B\n", map[string]string{})
		require.NoError(t, f.orch.Refresh(context.Background()))

		res := f.orch.Terminate(context.Background(), "100")
		assert.True(t, res.Success)
		assert.NoError(t, res.Err)
		assert.Equal(t, []string{"200"}, snapshotPIDs(f.orch))
	})
	t.Run("exit code 1", func(t *testing.T) {
		f := newFixture(c)
		f.identity.EXPECT().Lookup(gomock.Any()).Return(java, nil).AnyTimes()
		f.kill["100"] = errors.New("exit status 1")
		f.set("100 org.example.A\n200 org.example.B\n", map[string]string{})
		require.NoError(t, f.orch.Refresh(context.Background()))

		res := f.orch.Terminate(context.Background(), "100")
		assert.False(t, res.Success)
		assert.ErrorIs(t, res.Err, jvm.ErrTerminationFailed)
		assert.NotEmpty(t, res.Detail)
		assert.Equal(t, []string{"100", "200"}, snapshotPIDs(f.orch))
	})
	t.Run("unknown pid", func(t *testing.T) {
		f := newFixture(c)
		f.identity.EXPECT().Lookup(gomock.Any()).Return(java, nil).AnyTimes()
		f.set("100 org.example.A\n", map[string]string{})
		require.NoError(t, f.orch.Refresh(context.Background()))

		res := f.orch.Terminate(context.Background(), "999")
		assert.False(t, res.Success)
		assert.ErrorIs(t, res.Err, jvm.ErrUnknownProcess)
	})
	t.Run("pid reused", func(t *testing.T) {
		f := newFixture(c)
		gomock.InOrder(
			f.identity.EXPECT().Lookup("100").Return(java, nil),
			f.identity.EXPECT().Lookup("100").Return(jvm.Identity{Name: "bash", StartTime: 99}, nil),
		)
		f.kill["100"] = errors.New("kill must not be called")
		f.set("100 org.example.A\n", map[string]string{})
		require.NoError(t, f.orch.Refresh(context.Background()))

		res := f.orch.Terminate(context.Background(), "100")
		assert.False(t, res.Success)
		assert.ErrorIs(t, res.Err, jvm.ErrProcessChanged)
		assert.Equal(t, []string{"100"}, snapshotPIDs(f.orch))
	})
	t.Run("process gone", func(t *testing.T) {
		f := newFixture(c)
		gomock.InOrder(
			f.identity.EXPECT().Lookup("100").Return(java, nil),
			f.identity.EXPECT().Lookup("100").Return(jvm.Identity{}, errors.New("процесс 100 не найден")),
		)
		f.set("100 org.example.A\n", map[string]string{})
		require.NoError(t, f.orch.Refresh(context.Background()))

		res := f.orch.Terminate(context.Background(), "100")
		assert.ErrorIs(t, res.Err, jvm.ErrProcessChanged)
	})
	t.Run("identity unknown at refresh", func(t *testing.T) {
		f := newFixture(c)
		gomock.InOrder(
			f.identity.EXPECT().Lookup("100").Return(jvm.Identity{}, errors.New("access denied")),
			f.identity.EXPECT().Lookup("100").Return(java, nil),
		)
		f.set("100 org.example.A\n", map[string]string{})
		require.NoError(t, f.orch.Refresh(context.Background()))

		res := f.orch.Terminate(context.Background(), "100")
		assert.True(t, res.Success)
		assert.Empty(t, snapshotPIDs(f.orch))
	})
}

func Test_OrchestratorSerialized(t *testing.T) {
	c := gomock.NewController(t)
	defer c.Finish()

	f := newFixture(c)
	f.identity.EXPECT().Lookup(gomock.Any()).Return(jvm.Identity{}, nil).AnyTimes()
	f.set("100 org.example.A\n200 org.example.B\n", map[string]string{"100": jstatOut("1024", "0")})

	wg := new(sync.WaitGroup)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = f.orch.Refresh(context.Background())
		}()
		go func() {
			defer wg.Done()
			f.orch.Terminate(context.Background(), "100")
		}()
	}
	wg.Wait()

	pids := snapshotPIDs(f.orch)
	assert.Equal(t, lo.Uniq(pids), pids)
}

func snapshotPIDs(o *jvm.Orchestrator) []string {
	return lo.Map(o.Snapshot().Processes, func(item jvm.ProcessRecord, _ int) string {
		return item.PID
	})
}

func jstatOut(heap, nonHeap string) string {
	return " S0C    S1C    S0U    S1U      EC       EU        OC         OU       MC     MU    CCSC   CCSU   YGC     YGCT    FGC    FGCT     GCT\n" +
		" 0.0 4096.0 0.0 " + heap + " 30720.0 2048.0 20480.0 " + nonHeap + " 512.0 256.0 64.0 32.0 3 0.012 0 0.000 0.012\n"
}
