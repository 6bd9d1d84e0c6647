package records

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	gzip "github.com/klauspost/pgzip"
)

// Source yields the whole JSON document of one record set
type Source interface {
	// Name identifies the source in error messages
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// SourceOptions configures remote sources
type SourceOptions struct {
	Timeout    time.Duration
	S3Region   string
	S3Endpoint string
	HTTPClient *http.Client
}

// NewSource picks a Source for location: an http(s) URL, an s3://bucket/key URL
// or a local file path. Locations ending in .gz are decompressed after reading.
func NewSource(location string, opts SourceOptions) (Source, error) {
	var src Source
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		client := opts.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: opts.Timeout}
		}
		src = &httpSource{url: location, client: client}
	case strings.HasPrefix(location, "s3://"):
		s, err := newS3Source(location, opts)
		if err != nil {
			return nil, err
		}
		src = s
	default:
		src = &fileSource{path: location}
	}
	if strings.HasSuffix(location, ".gz") {
		src = &gzipSource{inner: src}
	}
	return src, nil
}

// fileSource reads a local file
type fileSource struct {
	path string
}

func (f *fileSource) Name() string { return baseName(f.path) }

func (f *fileSource) Read(_ context.Context) ([]byte, error) {
	return os.ReadFile(f.path)
}

// httpSource fetches the document with a GET request
type httpSource struct {
	url    string
	client *http.Client
}

func (h *httpSource) Name() string { return h.url }

func (h *httpSource) Read(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", h.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, h.url)
	}
	return io.ReadAll(resp.Body)
}

// s3Source downloads an object using the default AWS credential chain
type s3Source struct {
	location string
	bucket   string
	key      string
	timeout  time.Duration
	client   *s3.S3
}

func newS3Source(location string, opts SourceOptions) (*s3Source, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid s3 location %q: %w", location, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", location)
	}
	cfg := &aws.Config{Region: aws.String(opts.S3Region)}
	if opts.S3Endpoint != "" {
		cfg.Endpoint = aws.String(opts.S3Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return &s3Source{
		location: location,
		bucket:   u.Host,
		key:      key,
		timeout:  opts.Timeout,
		client:   s3.New(sess),
	}, nil
}

func (s *s3Source) Name() string { return s.location }

func (s *s3Source) Read(ctx context.Context) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.location, err)
	}
	defer func() { _ = out.Body.Close() }()
	return io.ReadAll(out.Body)
}

// gzipSource decompresses whatever its inner source returns
type gzipSource struct {
	inner Source
}

func (g *gzipSource) Name() string { return g.inner.Name() }

func (g *gzipSource) Read(ctx context.Context) ([]byte, error) {
	data, err := g.inner.Read(ctx)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error creating uncompressor: %w", err)
	}
	defer func() { _ = gz.Close() }()
	return io.ReadAll(gz)
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
