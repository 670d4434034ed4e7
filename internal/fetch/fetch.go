// Package fetch retrieves WSDL documents from local files or HTTP
// servers.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const (
	// DefaultTimeout bounds a download when no timeout is configured.
	DefaultTimeout = 30 * time.Second
	// UserAgent is sent with every request.
	UserAgent = "wsdl2ts/1.0.0"
)

// A Loader reads documents. The zero value reads local files and uses
// http.DefaultClient with DefaultTimeout for URLs.
type Loader struct {
	Client  *http.Client
	Timeout time.Duration
}

// IsURL reports whether source is fetched over the network rather than
// read from disk.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load returns the contents of source, which is either an http(s) URL
// or a file path. Errors carry errbuilder codes: CodeNotFound for a
// missing file or a non-200 response, CodeInvalidArgument for a
// malformed URL, and CodeInternal otherwise.
func (l *Loader) Load(ctx context.Context, source string) ([]byte, error) {
	if IsURL(source) {
		return l.download(ctx, source)
	}
	return readFile(source)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	code := errbuilder.CodeInternal
	if errors.Is(err, fs.ErrNotExist) {
		code = errbuilder.CodeNotFound
	}
	return nil, errbuilder.New().
		WithCode(code).
		WithMsg(fmt.Sprintf("failed to read WSDL file %s", path)).
		WithCause(err)
}

func (l *Loader) download(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid WSDL URL %s", url)).
			WithCause(err)
	}
	req.Header.Set("User-Agent", UserAgent)

	rsp, err := client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to download WSDL from %s", url)).
			WithCause(err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to download WSDL from %s: %s", url, rsp.Status))
	}
	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to download WSDL from %s", url)).
			WithCause(err)
	}
	return data, nil
}
