package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/LazarenkoA/jvm_process_exporter/jvm"
)

func Test_Render(t *testing.T) {
	t.Run("pass", func(t *testing.T) {
		buf := new(bytes.Buffer)
		Render(buf, jvm.Snapshot{
			RefreshedAt: time.Now().Add(-time.Minute * 2),
			Processes: []jvm.ProcessRecord{
				{PID: "100", Name: "App", MemoryMB: lo.ToPtr(1000), ProcessType: jvm.ProcessTypeJava},
				{PID: "200", Name: "Worker", ProcessType: jvm.ProcessTypeJava},
				{PID: "300", Name: "idea.Main", MemoryMB: lo.ToPtr(1500), ProcessType: jvm.ProcessTypeJava},
			},
		})

		out := buf.String()
		assert.Contains(t, out, "PID")
		assert.Contains(t, out, "1000 MB")
		assert.Contains(t, out, "2,500 MB")
		assert.Contains(t, out, "minutes")
		assert.Less(t, strings.Index(out, "100"), strings.Index(out, "Worker"))
		assert.Less(t, strings.Index(out, "Worker"), strings.Index(out, "idea.Main"))
	})
	t.Run("empty", func(t *testing.T) {
		buf := new(bytes.Buffer)
		Render(buf, jvm.Snapshot{})

		assert.Contains(t, buf.String(), "никогда")
		assert.Contains(t, buf.String(), "0 MB")
	})
}

func Test_RenderResult(t *testing.T) {
	buf := new(bytes.Buffer)
	RenderResult(buf, jvm.TerminationResult{PID: "100", Success: true})
	assert.Equal(t, "Процесс 100 завершен\n", buf.String())

	buf.Reset()
	RenderResult(buf, jvm.TerminationResult{PID: "100", Detail: "access denied"})
	assert.Equal(t, "Процесс 100 не завершен: access denied\n", buf.String())
}
