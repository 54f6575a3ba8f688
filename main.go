package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dot5enko/column-limits/compression"
	"github.com/dot5enko/column-limits/distribution"
	"github.com/dot5enko/column-limits/layout"
	"github.com/dot5enko/column-limits/manager"
	"github.com/dot5enko/column-limits/manager/executor"
	"github.com/dot5enko/column-limits/manager/query"
	"github.com/dot5enko/column-limits/schema"
	"github.com/dot5enko/column-limits/session"
	"github.com/dot5enko/column-limits/synthetic"
	"github.com/fatih/color"
	"github.com/kballard/go-shellquote"
)

const defaultScript = `
load rect:%d first
load rect:%d:3 grouped
wait
limits
draw
bound d1 0.25 ""
bound d2 "" 7.5
limits
color group
norm per
draw
rename d2 "second dimension"
show first off
draw
verify
`

var errUsage = errors.New("bad arguments")

type demo struct {
	ctx     context.Context
	m       *manager.Manager
	view    *manager.DistributionView
	session string
	codec   compression.Codec
}

func main() {

	script := flag.String("script", "", "command script to run, default runs a built-in walkthrough")
	rows := flag.Int("rows", 200, "rows of the built-in synthetic datasets")
	resolution := flag.Int("resolution", distribution.DefaultResolution, "histogram bins")
	sessionPath := flag.String("session", "", "session file restored on start and used by save")
	codecName := flag.String("codec", "zstd", "session compression: none, lz4 or zstd")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	codec, err := compression.ParseCodec(*codecName)
	if err != nil {
		color.Red("%s", err)
		os.Exit(2)
	}

	m := manager.New(manager.Config{
		Resolution:       *resolution,
		Decoder:          synthetic.Decoder(256, nil),
		ColorDiagnostics: true,
		Logger:           logger,
	})

	d := &demo{
		ctx:     context.Background(),
		m:       m,
		view:    m.NewDistributionView(),
		session: *sessionPath,
		codec:   codec,
	}

	if d.session != "" && session.Exists(d.session) {
		if err := d.restore(d.session); err != nil {
			color.Red("restore %s: %s", d.session, err)
			os.Exit(1)
		}
	}

	lines, err := readScript(*script, *rows)
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}

	before := time.Now()

	for n, line := range lines {

		words, err := shellquote.Split(line)
		if err != nil {
			color.Red("line %d: %s", n+1, err)
			os.Exit(1)
		}
		if len(words) == 0 || strings.HasPrefix(words[0], "#") {
			continue
		}

		color.Cyan("> %s", line)

		if err := d.run(words[0], words[1:]); err != nil {
			color.Red("line %d: %s", n+1, err)
		}

		d.m.Frame()
	}

	color.Green("done in %.2fms", time.Since(before).Seconds()*1000)
}

func readScript(path string, rows int) ([]string, error) {

	if path == "" {
		return strings.Split(fmt.Sprintf(defaultScript, rows, rows), "\n"), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	return lines, sc.Err()
}

func (d *demo) run(cmd string, args []string) error {

	switch cmd {
	case "load":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("%w: load <path> [label]", errUsage)
		}
		src := executor.Source{Path: args[0]}
		if len(args) == 2 {
			src.Label = args[1]
		}
		id := d.m.RequestLoad(d.ctx, src)
		fmt.Printf("requested %s as %s\n", src.Name(), id)

	case "wait":
		if err := d.m.WaitLoads(d.ctx); err != nil {
			return err
		}

	case "bound":
		if len(args) != 3 {
			return fmt.Errorf("%w: bound <dimension> <lower> <upper>", errUsage)
		}
		dim, err := d.dimension(args[0])
		if err != nil {
			return err
		}
		return d.m.EditBound(dim, args[1], args[2])

	case "reset":
		if len(args) != 1 {
			return fmt.Errorf("%w: reset <dimension>", errUsage)
		}
		dim, err := d.dimension(args[0])
		if err != nil {
			return err
		}
		return d.m.ResetBound(dim)

	case "rename":
		if len(args) != 2 {
			return fmt.Errorf("%w: rename <dimension> <label>", errUsage)
		}
		dim, err := d.dimension(args[0])
		if err != nil {
			return err
		}
		return d.m.Rename(dim, args[1])

	case "plot":
		if len(args) != 1 {
			return fmt.Errorf("%w: plot <dimension>", errUsage)
		}
		dim, err := d.dimension(args[0])
		if err != nil {
			return err
		}
		return d.m.Plot(dim)

	case "color":
		if len(args) != 1 {
			return fmt.Errorf("%w: color <dimension>|off", errUsage)
		}
		if args[0] == "off" {
			d.view.ClearColor()
			return nil
		}
		dim, err := d.dimension(args[0])
		if err != nil {
			return err
		}
		return d.view.ColorBy(dim)

	case "norm":
		if len(args) != 1 {
			return fmt.Errorf("%w: norm same|per", errUsage)
		}
		switch args[0] {
		case "same":
			d.view.SetNormalization(distribution.SameForAll)
		case "per":
			d.view.SetNormalization(distribution.PerSeries)
		default:
			return fmt.Errorf("%w: unknown normalization %q", errUsage, args[0])
		}

	case "res":
		if len(args) != 1 {
			return fmt.Errorf("%w: res <bins>", errUsage)
		}
		bins, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		d.view.SetResolution(bins)

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("%w: show <dataset> on|off", errUsage)
		}
		ds, err := d.dataset(args[0])
		if err != nil {
			return err
		}
		return d.m.ShowDataset(ds, args[1] != "off")

	case "move":
		if len(args) != 2 {
			return fmt.Errorf("%w: move <dataset> <index>", errUsage)
		}
		ds, err := d.dataset(args[0])
		if err != nil {
			return err
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		return d.m.MoveDataset(ds, index)

	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("%w: remove <dataset>", errUsage)
		}
		ds, err := d.dataset(args[0])
		if err != nil {
			return err
		}
		return d.m.RemoveDataset(ds)

	case "limits":
		d.printLimits()

	case "datasets":
		d.printDatasets()

	case "draw":
		d.draw()

	case "save":
		path := d.session
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("%w: save <path>", errUsage)
		}
		if err := session.Save(path, d.m.Snapshot(), d.codec); err != nil {
			return err
		}
		fmt.Printf("saved session to %s (%s)\n", path, d.codec)

	case "restore":
		if len(args) != 1 {
			return fmt.Errorf("%w: restore <path>", errUsage)
		}
		return d.restore(args[0])

	case "verify":
		if err := d.m.Verify(); err != nil {
			return err
		}
		color.Green("counters consistent")

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	return nil
}

func (d *demo) restore(path string) error {

	snap, err := session.Load(path)
	if err != nil {
		return err
	}

	ids := d.m.Restore(d.ctx, snap)
	fmt.Printf("restored session %s, reloading %d datasets\n", snap.ID, len(ids))

	return nil
}

func (d *demo) dimension(label string) (schema.DimensionID, error) {
	dim, ok := d.m.FindDimension(label)
	if !ok {
		return 0, fmt.Errorf("%w: %q", manager.ErrUnknownDimension, label)
	}
	return dim.ID, nil
}

func (d *demo) dataset(label string) (schema.DatasetID, error) {
	ds, ok := d.m.FindDataset(label)
	if !ok {
		return 0, fmt.Errorf("%w: %q", manager.ErrUnknownDataset, label)
	}
	return ds.ID, nil
}

func (d *demo) printLimits() {

	plotted, hasPlotted := d.m.Plotted()

	for _, dim := range d.m.VisibleDimensions() {

		marker := " "
		if hasPlotted && dim.ID == plotted {
			marker = "*"
		}

		line := fmt.Sprintf("%s %-20s %-10s %s", marker, dim.Label, dim.Bound, dim.Kind)
		if dim.ParseIssue {
			color.Yellow("%s  (unparsed input)", line)
			continue
		}
		fmt.Println(line)
	}
}

func (d *demo) printDatasets() {
	for _, ds := range d.m.Datasets() {
		shown := "shown"
		if !ds.Shown {
			shown = "hidden"
		}
		fmt.Printf("  %-12s %-8s %-6s %d/%d rows %s\n", ds.Label, ds.State, shown, d.m.VisibleRows(ds.ID), ds.Rows, ds.Message)
	}
}

const barWidth = 40

func (d *demo) draw() {

	res := d.view.Result()
	if res.State != query.StateReady {
		color.Yellow("%s: %s", res.Label, res.State)
		return
	}

	color.New(color.Bold).Printf("%s over [%g, %g]\n", res.Label, res.Range.Min, res.Range.Max)

	for _, entry := range res.Entries {

		fmt.Printf("  %s (%d rows)\n", entry.Label, entry.VisibleRows)

		for _, s := range entry.Series {

			norm := res.Normalizer
			if norm == 0 {
				norm = s.MaxBin
			}

			if s.Colored {
				fmt.Printf("    color %d\n", s.Color)
			}

			for i := len(s.Bins) - 1; i >= 0; i-- {
				width := 0
				if norm > 0 {
					width = int(s.Bins[i] * barWidth / norm)
				}
				fmt.Printf("    %3d |%s\n", i, strings.Repeat("#", width))
			}
		}
	}

	if placements, ok := d.view.Labels(layout.DefaultFace, 480, 0); ok {
		fmt.Printf("  labels take %d px of height\n", int(layout.Extent(placements)))
	} else {
		color.Yellow("  labels do not fit")
	}
}
