/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: source.go
Description: Input sources for automaton descriptions and word streams. A location is
standard input ("-"), a local file, or an HTTP/HTTPS URL fetched with a timeout.
*/

package source

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Stdin is the location that selects standard input
const Stdin = "-"

// Source opens a readable stream
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// New picks the source for a location
func New(location string, timeout time.Duration) Source {
	switch {
	case location == "" || location == Stdin:
		return &ReaderSource{NameStr: "stdin", Reader: os.Stdin}
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		return &HTTPSource{URL: location, Timeout: timeout}
	default:
		return &FileSource{Path: location}
	}
}

// Open is a shorthand for New(location, timeout).Open(ctx)
func Open(ctx context.Context, location string, timeout time.Duration) (io.ReadCloser, error) {
	return New(location, timeout).Open(ctx)
}

// ReaderSource wraps an already open reader; closing it is a no-op
type ReaderSource struct {
	NameStr string
	Reader  io.Reader
}

func (rs *ReaderSource) Name() string { return rs.NameStr }

func (rs *ReaderSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(rs.Reader), nil
}

// FileSource reads a local file
type FileSource struct {
	Path string
}

func (fs *FileSource) Name() string { return fs.Path }

func (fs *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	file, err := os.Open(fs.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", fs.Path)
	}
	return file, nil
}

// HTTPSource fetches a document over HTTP or HTTPS
type HTTPSource struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

func (hs *HTTPSource) Name() string { return hs.URL }

func (hs *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := hs.Client
	if client == nil {
		client = &http.Client{Timeout: hs.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hs.URL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", hs.URL)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", hs.URL)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Newf("%s returned status %d", hs.URL, resp.StatusCode)
	}
	return resp.Body, nil
}
