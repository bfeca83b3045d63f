package view

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/LazarenkoA/jvm_process_exporter/jvm"
)

var header = []string{"PID", "Name", "Memory", "Type"}

// Render печатает снимок реестра таблицей, порядок строк как в реестре
func Render(out io.Writer, snap jvm.Snapshot) {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, p := range snap.Processes {
		table.Append([]string{p.PID, p.Name, p.Memory(), string(p.ProcessType)})
	}

	total := lo.SumBy(snap.Processes, func(p jvm.ProcessRecord) int {
		return lo.FromPtr(p.MemoryMB)
	})
	table.SetFooter([]string{"", "", humanize.Comma(int64(total)) + " MB", fmt.Sprint(len(snap.Processes))})
	table.SetCaption(true, "Обновлено: "+refreshed(snap))

	table.Render()
}

func RenderResult(out io.Writer, res jvm.TerminationResult) {
	if res.Success {
		fmt.Fprintf(out, "Процесс %s завершен\n", res.PID)
		return
	}

	fmt.Fprintf(out, "Процесс %s не завершен: %s\n", res.PID, res.Detail)
}

func refreshed(snap jvm.Snapshot) string {
	if snap.RefreshedAt.IsZero() {
		return "никогда"
	}

	return fmt.Sprintf("%s (%s)", snap.RefreshedAt.Format("2006-01-02 15:04:05"), humanize.Time(snap.RefreshedAt))
}
