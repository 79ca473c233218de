package importer

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"

	"github.com/unkn0wn-root/tinct/internal/errdef"
)

// maxFetchSize caps remote theme downloads; anything larger is not a
// theme file.
const maxFetchSize = 2 << 20

func fetchSource(ctx context.Context, rawURL string) ([]byte, string, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, "", errdef.Wrap(errdef.CodeImport, err, "configure http2 transport")
	}
	client := &http.Client{Transport: transport, Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", errdef.Wrap(errdef.CodeImport, err, "build request for %s", rawURL)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", errdef.Wrap(errdef.CodeImport, err, "fetch %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errdef.New(errdef.CodeImport, "fetch %s: %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize+1))
	if err != nil {
		return nil, "", errdef.Wrap(errdef.CodeImport, err, "read %s", rawURL)
	}
	if len(data) > maxFetchSize {
		return nil, "", errdef.New(errdef.CodeImport, "theme source %s exceeds %d bytes", rawURL, maxFetchSize)
	}
	return data, nameHint(rawURL), nil
}
