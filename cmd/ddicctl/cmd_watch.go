package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"ddic"
	"ddic/internal/ddic/catalog"
	"ddic/internal/ddic/exec"
	"ddic/internal/ddic/pool"
	"ddic/internal/ddic/trackers"
	"ddic/internal/ddic/types"
)

func newWatchCommand() *cobra.Command {
	var target string
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard driving repeated Construct calls against the demo catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := buildDemoCatalog()
			targetType, err := cat.Resolve(target)
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}

			m := newWatchModel(cat, targetType, interval)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&target, "target", "Rect", "demo catalog type name to keep constructing")
	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "time between Construct attempts")
	return cmd
}

type tickMsg time.Time

type watchModel struct {
	cat      *catalog.Catalog
	pool     *pool.SequenceCollection
	trackers *trackers.Trackers
	target   types.Type
	interval time.Duration
	attempts int
	table    table.Model
	sampler  *exec.Sampler
	snapshot exec.Snapshot
}

func newWatchModel(cat *catalog.Catalog, target types.Type, interval time.Duration) watchModel {
	cols := []table.Column{
		{Title: "Type", Width: 24},
		{Title: "Sequences", Width: 12},
	}
	t := table.New(table.WithColumns(cols), table.WithFocused(false), table.WithHeight(8))

	// NewSampler can fail to attach on a sandboxed host; a nil Sampler
	// degrades to the zero Snapshot rather than panicking, so the TUI keeps
	// running without a resource row.
	sampler, _ := exec.NewSampler()

	return watchModel{
		cat:      cat,
		pool:     pool.New(),
		trackers: trackers.New(),
		target:   target,
		interval: interval,
		table:    t,
		sampler:  sampler,
	}
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		m.attempts++
		opts := ddic.Options{Trackers: m.trackers}
		_, _ = ddic.Construct(context.Background(), m.cat, m.pool, m.target, opts)
		m.snapshot = m.sampler.Sample()
		m.table.SetRows(m.rows())
		return m, m.tick()
	}
	return m, nil
}

func (m watchModel) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.pool.Types()))
	for _, t := range m.pool.Types() {
		rows = append(rows, table.Row{t.String(), fmt.Sprintf("%d", m.pool.CountForType(t))})
	}
	return rows
}

var watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

func (m watchModel) View() string {
	header := watchTitleStyle.Render(fmt.Sprintf("ddicctl watch — target %s, attempt %d", m.target, m.attempts))
	stats := fmt.Sprintf(
		"pool size: %d   unspecified: %d   uninstantiable: %d\n",
		m.pool.Size(), len(m.trackers.Unspecified()), len(m.trackers.Uninstantiable()),
	)
	resources := fmt.Sprintf(
		"rss: %.1f MiB   threads: %d\n",
		float64(m.snapshot.RSSBytes)/(1<<20), m.snapshot.NumThreads,
	)
	return header + "\n\n" + stats + resources + "\n" + m.table.View() + "\n\n(q to quit)\n"
}
