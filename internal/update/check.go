// Package update checks GitHub releases for newer tinct builds and
// swaps the running binary in place.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strconv"
	"strings"
)

const userAgent = "tinct-updater"

var (
	ErrNoUpdate      = errors.New("no update available")
	errNilHTTPClient = errors.New("nil http client")
)

type Platform struct {
	OS   string
	Arch string
}

// Detect maps the runtime platform onto release asset naming
// (tinct_Linux_x86_64, tinct_Darwin_arm64, ...).
func Detect() (Platform, error) {
	var plat Platform
	switch runtime.GOOS {
	case "linux":
		plat.OS = "Linux"
	case "darwin":
		plat.OS = "Darwin"
	case "windows":
		plat.OS = "Windows"
	default:
		return Platform{}, fmt.Errorf("unsupported OS %q", runtime.GOOS)
	}
	switch runtime.GOARCH {
	case "amd64":
		plat.Arch = "x86_64"
	case "arm64":
		plat.Arch = "arm64"
	default:
		return Platform{}, fmt.Errorf("unsupported architecture %q", runtime.GOARCH)
	}
	return plat, nil
}

func (p Platform) assetName(binary string) string {
	name := fmt.Sprintf("%s_%s_%s", binary, p.OS, p.Arch)
	if p.OS == "Windows" {
		name += ".exe"
	}
	return name
}

type Info struct {
	Version string
	Notes   string
}

type Asset struct {
	Name string
	URL  string
	Size int64
}

type Result struct {
	Info   Info
	Bin    Asset
	Sum    Asset
	HasSum bool
}

type Client struct {
	http   *http.Client
	repo   string
	binary string
}

// NewClient builds a release client for repo ("owner/name").
func NewClient(httpClient *http.Client, repo string) (Client, error) {
	repo = strings.TrimSpace(repo)
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Client{}, fmt.Errorf("invalid repo %q: expected owner/name", repo)
	}
	return Client{http: httpClient, repo: repo, binary: parts[1]}, nil
}

func (c Client) Ready() bool {
	return c.http != nil && c.repo != ""
}

type releasePayload struct {
	TagName string `json:"tag_name"`
	Body    string `json:"body"`
	Assets  []struct {
		Name string `json:"name"`
		URL  string `json:"browser_download_url"`
		Size int64  `json:"size"`
	} `json:"assets"`
}

// Check fetches the latest release and returns ErrNoUpdate when the
// running version is current or newer.
func (c Client) Check(ctx context.Context, current string, plat Platform) (Result, error) {
	if c.http == nil {
		return Result{}, errNilHTTPClient
	}

	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build release request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("fetch latest release failed: %s", res.Status)
	}

	var payload releasePayload
	if err := json.NewDecoder(io.LimitReader(res.Body, 4<<20)).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("decode release: %w", err)
	}

	latest := strings.TrimSpace(payload.TagName)
	if latest == "" {
		return Result{}, fmt.Errorf("release has no tag")
	}
	if !versionNewer(latest, current) {
		return Result{}, ErrNoUpdate
	}

	binName := plat.assetName(c.binary)
	result := Result{Info: Info{Version: latest, Notes: payload.Body}}
	for _, asset := range payload.Assets {
		switch asset.Name {
		case binName:
			result.Bin = Asset{Name: asset.Name, URL: asset.URL, Size: asset.Size}
		case binName + ".sha256":
			result.Sum = Asset{Name: asset.Name, URL: asset.URL, Size: asset.Size}
			result.HasSum = true
		}
	}
	if result.Bin.URL == "" {
		return Result{}, fmt.Errorf("release %s has no asset %s", latest, binName)
	}
	return result, nil
}

// versionNewer compares dotted tags numerically, segment by segment.
// Non-numeric segments fall back to string comparison.
func versionNewer(latest, current string) bool {
	ls := versionSegments(latest)
	cs := versionSegments(current)
	for i := 0; i < len(ls) || i < len(cs); i++ {
		var l, c string
		if i < len(ls) {
			l = ls[i]
		}
		if i < len(cs) {
			c = cs[i]
		}
		if l == c {
			continue
		}
		ln, lerr := strconv.Atoi(l)
		cn, cerr := strconv.Atoi(c)
		if lerr == nil && cerr == nil {
			return ln > cn
		}
		return l > c
	}
	return false
}

func versionSegments(tag string) []string {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "v")
	if idx := strings.IndexAny(tag, "-+"); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return nil
	}
	return strings.Split(tag, ".")
}
