package update

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type stubResponse struct {
	status int
	body   string
}

type stubTransport struct {
	res map[string]stubResponse
}

func (t stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	stub, ok := t.res[req.URL.String()]
	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Status:     "404 Not Found",
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    req,
		}, nil
	}
	status := stub.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(stub.body)),
		Request:    req,
	}, nil
}

const releaseJSON = `{
	"tag_name": "v1.2.0",
	"body": "- faster catalog loads",
	"assets": [
		{"name": "tinct_Linux_x86_64", "browser_download_url": "https://mock/bin", "size": 10},
		{"name": "tinct_Linux_x86_64.sha256", "browser_download_url": "https://mock/sum", "size": 70}
	]
}`

func TestCheckFindsPlatformAssets(t *testing.T) {
	tr := stubTransport{res: map[string]stubResponse{
		"https://api.github.com/repos/unkn0wn-root/tinct/releases/latest": {body: releaseJSON},
	}}
	cl, err := NewClient(&http.Client{Transport: tr}, "unkn0wn-root/tinct")
	if err != nil {
		t.Fatalf("client err: %v", err)
	}

	res, err := cl.Check(context.Background(), "v1.0.0", Platform{OS: "Linux", Arch: "x86_64"})
	if err != nil {
		t.Fatalf("check err: %v", err)
	}
	if res.Info.Version != "v1.2.0" {
		t.Fatalf("unexpected version %q", res.Info.Version)
	}
	if res.Bin.URL != "https://mock/bin" {
		t.Fatalf("unexpected binary url %q", res.Bin.URL)
	}
	if !res.HasSum || res.Sum.URL != "https://mock/sum" {
		t.Fatalf("expected checksum asset, got %+v", res.Sum)
	}
}

func TestCheckReturnsErrNoUpdateWhenCurrent(t *testing.T) {
	tr := stubTransport{res: map[string]stubResponse{
		"https://api.github.com/repos/unkn0wn-root/tinct/releases/latest": {body: releaseJSON},
	}}
	cl, err := NewClient(&http.Client{Transport: tr}, "unkn0wn-root/tinct")
	if err != nil {
		t.Fatalf("client err: %v", err)
	}

	if _, err := cl.Check(
		context.Background(),
		"v1.2.0",
		Platform{OS: "Linux", Arch: "x86_64"},
	); !errors.Is(err, ErrNoUpdate) {
		t.Fatalf("expected ErrNoUpdate, got %v", err)
	}
}

func TestCheckMissingAssetErrors(t *testing.T) {
	tr := stubTransport{res: map[string]stubResponse{
		"https://api.github.com/repos/unkn0wn-root/tinct/releases/latest": {body: releaseJSON},
	}}
	cl, err := NewClient(&http.Client{Transport: tr}, "unkn0wn-root/tinct")
	if err != nil {
		t.Fatalf("client err: %v", err)
	}

	if _, err := cl.Check(
		context.Background(),
		"v1.0.0",
		Platform{OS: "Darwin", Arch: "arm64"},
	); err == nil {
		t.Fatal("expected missing asset error")
	}
}

func TestNewClientRejectsBadRepo(t *testing.T) {
	if _, err := NewClient(&http.Client{}, "not-a-repo"); err == nil {
		t.Fatal("expected invalid repo error")
	}
}

func TestVersionNewer(t *testing.T) {
	cases := []struct {
		latest  string
		current string
		want    bool
	}{
		{"v1.2.0", "v1.1.9", true},
		{"v1.2.0", "v1.2.0", false},
		{"v1.2.0", "v1.10.0", false},
		{"v2.0.0", "v1.99.99", true},
		{"1.0.1", "v1.0.0", true},
		{"v1.2.0-rc1", "v1.2.0", false},
	}
	for _, tc := range cases {
		if got := versionNewer(tc.latest, tc.current); got != tc.want {
			t.Fatalf("versionNewer(%q, %q) = %v, want %v", tc.latest, tc.current, got, tc.want)
		}
	}
}
