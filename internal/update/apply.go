package update

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/unkn0wn-root/tinct/internal/config"
)

var ErrPendingSwap = errors.New("update staged; restart required to complete")

const (
	stageDirName        = "updates"
	versionProbeTimeout = 15 * time.Second
)

type SwapStatus struct {
	Pending bool
	NewPath string
}

type Progress interface {
	Start(total int64)
	Advance(n int64)
	Finish()
}

func Apply(ctx context.Context, c Client, res Result, exe string) (SwapStatus, error) {
	return apply(ctx, c, res, exe, nil)
}

func ApplyWithProgress(
	ctx context.Context,
	c Client,
	res Result,
	exe string,
	prog Progress,
) (SwapStatus, error) {
	return apply(ctx, c, res, exe, prog)
}

func apply(
	ctx context.Context,
	c Client,
	res Result,
	exe string,
	prog Progress,
) (SwapStatus, error) {
	staged, err := c.stage(ctx, res, prog)
	if staged != "" {
		defer func() {
			_ = os.Remove(staged)
		}()
	}
	if err != nil {
		return SwapStatus{}, err
	}
	return swapBinary(staged, exe)
}

// stage downloads the release binary into <config>/updates, checks the
// published sha256 and probes the binary's own version report before
// anything touches the installed executable.
func (c Client) stage(ctx context.Context, res Result, prog Progress) (string, error) {
	dir := filepath.Join(config.Dir(), stageDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create stage dir: %w", err)
	}

	pattern := c.binary + "-*"
	if runtime.GOOS == "windows" {
		pattern += ".exe"
	}
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	staged := f.Name()
	if err := f.Close(); err != nil {
		return staged, fmt.Errorf("close staged file: %w", err)
	}

	if err := c.download(ctx, res.Bin, staged, prog); err != nil {
		return staged, err
	}
	if res.HasSum {
		want, err := c.fetchChecksum(ctx, res.Sum)
		if err != nil {
			return staged, err
		}
		if err := verifyChecksum(staged, want); err != nil {
			return staged, err
		}
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(staged, 0o755); err != nil {
			return staged, fmt.Errorf("chmod staged binary: %w", err)
		}
	}
	return staged, verifyVersion(ctx, staged, res.Info.Version)
}

// swapBinary moves the verified binary into place. The stage dir may
// live on a different filesystem than the executable, so the move goes
// through a sibling file and an atomic rename. Windows cannot replace
// a running executable; the new binary lands next to it as .new and
// startup finishes the swap.
func swapBinary(staged, exe string) (SwapStatus, error) {
	if runtime.GOOS == "windows" {
		dst := exe + ".new"
		if err := copyFile(staged, dst); err != nil {
			return SwapStatus{}, err
		}
		return SwapStatus{Pending: true, NewPath: dst}, ErrPendingSwap
	}

	sibling := exe + ".next"
	if err := copyFile(staged, sibling); err != nil {
		return SwapStatus{}, err
	}
	if err := os.Rename(sibling, exe); err != nil {
		_ = os.Remove(sibling)
		return SwapStatus{}, fmt.Errorf("replace binary: %w", err)
	}
	return SwapStatus{}, nil
}

func (c Client) download(ctx context.Context, a Asset, dst string, prog Progress) error {
	res, err := c.get(ctx, a.URL)
	if err != nil {
		return fmt.Errorf("download %s: %w", a.Name, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open staged file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var reader io.Reader = res.Body
	if prog != nil {
		total := a.Size
		if total <= 0 && res.ContentLength > 0 {
			total = res.ContentLength
		}
		prog.Start(total)
		defer prog.Finish()
		reader = progressReader{r: res.Body, prog: prog}
	}

	n, err := io.Copy(f, reader)
	if err != nil {
		return fmt.Errorf("write %s: %w", a.Name, err)
	}
	if a.Size > 0 && n != a.Size {
		return fmt.Errorf("download size mismatch: got %d want %d", n, a.Size)
	}
	return nil
}

type progressReader struct {
	r    io.Reader
	prog Progress
}

func (p progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.prog.Advance(int64(n))
	}
	return n, err
}

// fetchChecksum reads a goreleaser-style "<sha256>  <asset>" file and
// returns the digest.
func (c Client) fetchChecksum(ctx context.Context, a Asset) (string, error) {
	if !strings.HasSuffix(a.Name, ".sha256") {
		return "", fmt.Errorf("not a checksum asset: %s", a.Name)
	}
	res, err := c.get(ctx, a.URL)
	if err != nil {
		return "", fmt.Errorf("download checksum: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	scanner := bufio.NewScanner(res.Body)
	if !scanner.Scan() {
		return "", fmt.Errorf("empty checksum body")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) == 0 {
		return "", fmt.Errorf("invalid checksum line")
	}
	sum := strings.ToLower(fields[0])
	if len(sum) != 64 {
		return "", fmt.Errorf("unexpected checksum length: %d", len(sum))
	}
	return sum, nil
}

func (c Client) get(ctx context.Context, url string) (*http.Response, error) {
	if c.http == nil {
		return nil, errNilHTTPClient
	}
	if url == "" {
		return nil, fmt.Errorf("empty asset url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		_ = res.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	return res, nil
}

func verifyChecksum(path, want string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open for checksum: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hash binary: %w", err)
	}
	got := hex.EncodeToString(h.Sum(nil))
	if got != want {
		return fmt.Errorf("checksum mismatch: got %s want %s", got, want)
	}
	return nil
}

// verifyVersion runs the staged binary with --version and checks the
// release it claims to be. The first output line is "tinct <version>";
// the build details below it are ignored.
func verifyVersion(ctx context.Context, path, want string) error {
	if strings.TrimSpace(want) == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return fmt.Errorf("version probe failed: %w", err)
	}
	got, err := parseVersionLine(out)
	if err != nil {
		return err
	}
	if !sameVersion(got, want) {
		return fmt.Errorf("staged binary reports %s, release is %s", got, want)
	}
	return nil
}

func parseVersionLine(out []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if !scanner.Scan() {
		return "", fmt.Errorf("empty version output")
	}
	line := strings.TrimSpace(scanner.Text())
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != "tinct" {
		return "", fmt.Errorf("unexpected version line %q", line)
	}
	return fields[1], nil
}

// sameVersion compares normalized tags so "v1.2.0" matches "1.2.0".
func sameVersion(a, b string) bool {
	as := versionSegments(a)
	bs := versionSegments(b)
	if len(as) == 0 || len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open src: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("open dst: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}
