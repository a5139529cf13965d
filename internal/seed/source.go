package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/traymate/mealmenu/internal/storage"
)

// Source is a location a seed document can be read from.
type Source interface {
	// Location returns the source as given on the command line.
	Location() string

	// Open returns a reader over the seed document. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Options configures remote sources.
type Options struct {
	Timeout    time.Duration
	RetryCount int

	// Storage is the template for s3:// sources; Bucket is taken from the URL.
	Storage storage.S3Config
}

// Resolve picks a Source implementation from the location's scheme:
// s3://bucket/key, http(s)://..., or a local file path.
func Resolve(location string, opts Options) (Source, error) {
	if location == "" {
		return nil, fmt.Errorf("seed source is required")
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// No scheme, or a Windows drive letter
		return &FileSource{Path: location}, nil
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return &FileSource{Path: u.Path}, nil
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("invalid s3 location %q, expected s3://bucket/key", location)
		}
		cfg := opts.Storage
		cfg.Bucket = u.Host
		store, err := storage.NewStorage(&cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 client: %w", err)
		}
		return &S3Source{location: location, Key: key, Store: store}, nil
	case "http", "https":
		return NewHTTPSource(location, opts), nil
	default:
		return nil, fmt.Errorf("unsupported seed source scheme %q", u.Scheme)
	}
}

// FileSource reads a seed document from the local filesystem.
type FileSource struct {
	Path string
}

func (s *FileSource) Location() string { return s.Path }

func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	return f, nil
}

// S3Source reads a seed document from an object in a bucket.
type S3Source struct {
	location string
	Key      string
	Store    storage.ObjectStorage
}

func (s *S3Source) Location() string { return s.location }

func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	ok, err := s.Store.Exists(ctx, s.Key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("seed object %s not found", s.location)
	}
	return s.Store.Download(ctx, s.Key)
}

// HTTPSource fetches a seed document over HTTP(S).
type HTTPSource struct {
	url    string
	client *resty.Client
}

// NewHTTPSource creates an HTTPSource with the timeout and retry policy in opts.
func NewHTTPSource(rawURL string, opts Options) *HTTPSource {
	client := resty.New()
	client.SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.RetryCount > 0 {
		client.SetRetryCount(opts.RetryCount)
		client.SetRetryWaitTime(200 * time.Millisecond)
		client.AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= 500
		})
	}
	return &HTTPSource{url: rawURL, client: client}
}

func (s *HTTPSource) Location() string { return s.url }

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed document: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("seed document request failed with status %d", resp.StatusCode())
	}
	return io.NopCloser(bytes.NewReader(resp.Body())), nil
}
