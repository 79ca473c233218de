package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/unkn0wn-root/tinct/internal/update"
)

const (
	updateRepo         = "unkn0wn-root/tinct"
	updateCheckTimeout = 20 * time.Second
	updateApplyTimeout = 10 * time.Minute
)

var errUpdateDisabled = errors.New("update disabled for dev build")

// downloadMeter prints download progress as a single rewritten line:
// "Downloading 1.2 MiB / 4.5 MiB (27%)".
type downloadMeter struct {
	out     io.Writer
	total   int64
	done    int64
	lastPct int
}

func newDownloadMeter(out io.Writer) *downloadMeter {
	return &downloadMeter{out: out, lastPct: -1}
}

func (m *downloadMeter) Start(total int64) {
	m.total = total
	m.print()
}

func (m *downloadMeter) Advance(n int64) {
	if n <= 0 {
		return
	}
	m.done += n
	m.print()
}

func (m *downloadMeter) Finish() {
	m.lastPct = -1
	m.print()
	if _, err := fmt.Fprintln(m.out); err != nil {
		log.Printf("progress finish write failed: %v", err)
	}
}

func (m *downloadMeter) print() {
	var line string
	if m.total > 0 {
		pct := int(m.done * 100 / m.total)
		if pct > 100 {
			pct = 100
		}
		if pct == m.lastPct {
			return
		}
		m.lastPct = pct
		line = fmt.Sprintf(
			"\rDownloading %s / %s (%d%%)",
			humanBytes(m.done),
			humanBytes(m.total),
			pct,
		)
	} else {
		line = fmt.Sprintf("\rDownloading %s", humanBytes(m.done))
	}
	if _, err := fmt.Fprint(m.out, line); err != nil {
		log.Printf("progress write failed: %v", err)
	}
}

type cliUpdater struct {
	cl  update.Client
	ver string
	out io.Writer
}

func newCLIUpdater(cl update.Client, ver string) cliUpdater {
	return cliUpdater{cl: cl, ver: strings.TrimSpace(ver), out: os.Stdout}
}

func (u cliUpdater) check(ctx context.Context) (update.Result, bool, error) {
	if u.ver == "" || u.ver == "dev" {
		return update.Result{}, false, errUpdateDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, updateCheckTimeout)
	defer cancel()

	plat, err := update.Detect()
	if err != nil {
		return update.Result{}, false, err
	}
	res, err := u.cl.Check(ctx, u.ver, plat)
	if err != nil {
		if errors.Is(err, update.ErrNoUpdate) {
			return update.Result{}, false, nil
		}
		return update.Result{}, false, err
	}
	return res, true, nil
}

func (u cliUpdater) apply(ctx context.Context, res update.Result) (update.SwapStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, updateApplyTimeout)
	defer cancel()

	exe, err := os.Executable()
	if err != nil {
		return update.SwapStatus{}, fmt.Errorf("locate executable: %w", err)
	}
	if resolved, rerr := filepath.EvalSymlinks(exe); rerr == nil {
		exe = resolved
	}

	current := u.ver
	if current == "" {
		current = "unknown"
	}
	u.say("Updating tinct %s -> %s", current, res.Info.Version)
	if !res.HasSum {
		u.say("Warning: checksum not published; proceeding without verification.")
	}

	st, err := update.ApplyWithProgress(ctx, u.cl, res, exe, newDownloadMeter(u.out))
	if err != nil && !errors.Is(err, update.ErrPendingSwap) {
		return st, err
	}
	if st.Pending {
		u.say("Update staged at %s. Restart tinct to complete.", st.NewPath)
		return st, err
	}
	u.say("tinct updated to %s", res.Info.Version)
	return st, err
}

func (u cliUpdater) printNoUpdate() {
	u.say("tinct is up to date.")
}

func (u cliUpdater) printRelease(res update.Result) {
	u.say("New version available: %s", res.Info.Version)
	notes := strings.TrimSpace(res.Info.Notes)
	if notes == "" {
		return
	}
	divider := strings.Repeat("-", 64)
	u.say("%s\n%s\n%s", divider, notes, divider)
}

func (u cliUpdater) say(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(u.out, format+"\n", args...); err != nil {
		log.Printf("update output write failed: %v", err)
	}
}

func humanBytes(n int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.2f GiB", float64(n)/float64(gb))
	case n >= mb:
		return fmt.Sprintf("%.2f MiB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.2f KiB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
