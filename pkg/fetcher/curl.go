package fetcher

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"
)

const statusTrailerFormat = "\n%{http_code}"

// CurlTransport shells out to the curl binary. Its TLS fingerprint differs from
// net/http which is sometimes enough to get past the upstream WAF.
type CurlTransport struct {
	Path           string
	ConnectTimeout time.Duration
}

func NewCurlTransport(path string) *CurlTransport {
	if path == "" {
		path = "curl"
	}

	return &CurlTransport{
		Path:           path,
		ConnectTimeout: 5 * time.Second,
	}
}

func (t *CurlTransport) Do(ctx context.Context, request Request) (*Response, error) {
	cmd := exec.CommandContext(ctx, t.Path, t.arguments(request)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			return nil, err
		}
		return nil, errors.New(message)
	}

	body, statusCode := splitStatusTrailer(stdout.Bytes())

	return &Response{StatusCode: statusCode, Body: body}, nil
}

func (t *CurlTransport) arguments(request Request) []string {
	maxTime := int(request.Timeout.Seconds())
	if maxTime < 1 {
		maxTime = 1
	}
	connectTimeout := int(t.ConnectTimeout.Seconds())
	if connectTimeout < 1 {
		connectTimeout = 1
	}

	args := []string{
		"--silent",
		"--show-error",
		"--location",
		"--compressed",
		"--max-time", strconv.Itoa(maxTime),
		"--connect-timeout", strconv.Itoa(connectTimeout),
		"-w", statusTrailerFormat,
		request.URL,
	}

	keys := make([]string, 0, len(request.Headers))
	for key := range request.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, "-H", key+": "+request.Headers[key])
	}

	return args
}

// splitStatusTrailer separates the body from the status line that curl
// appends after the last newline
func splitStatusTrailer(output []byte) ([]byte, int) {
	index := bytes.LastIndexByte(output, '\n')
	if index < 0 {
		return output, StatusUnknown
	}

	body := output[:index]
	statusCode, err := strconv.Atoi(strings.TrimSpace(string(output[index+1:])))
	if err != nil || statusCode <= 0 {
		return body, StatusUnknown
	}

	return body, statusCode
}
