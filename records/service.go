package records

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theoremus-urban-solutions/user-records-api/config"
)

// Record set names
const (
	Basic    = "basic"
	Detailed = "detailed"
)

// Service looks up records. It holds no state besides its sources, so one
// Service is shared by all requests.
type Service struct {
	sources map[string]Source
}

// NewService creates a service over named sources
func NewService(sources map[string]Source) *Service {
	cp := make(map[string]Source, len(sources))
	for k, v := range sources {
		cp[k] = v
	}
	return &Service{sources: cp}
}

// NewServiceFromConfig builds the basic and detailed sources from cfg
func NewServiceFromConfig(cfg config.DataConfig) (*Service, error) {
	opts := SourceOptions{
		Timeout:    time.Duration(cfg.TimeoutMS) * time.Millisecond,
		S3Region:   cfg.S3.Region,
		S3Endpoint: cfg.S3.Endpoint,
	}
	basic, err := NewSource(cfg.BasicUsers, opts)
	if err != nil {
		return nil, fmt.Errorf("basic users: %w", err)
	}
	detailed, err := NewSource(cfg.DetailedUsers, opts)
	if err != nil {
		return nil, fmt.Errorf("detailed users: %w", err)
	}
	return NewService(map[string]Source{
		Basic:    basic,
		Detailed: detailed,
	}), nil
}

// Names returns the configured record set names, sorted
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.sources))
	for k := range s.sources {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Collection reads and parses the named record set
func (s *Service) Collection(ctx context.Context, name string) (Collection, error) {
	src, ok := s.sources[name]
	if !ok {
		return nil, &DataSourceError{Source: name, Err: fmt.Errorf("unknown record set %q", name)}
	}
	data, err := src.Read(ctx)
	if err != nil {
		log.Error().Err(err).Str("source", src.Name()).Msg("error reading record set")
		return nil, &DataSourceError{Source: src.Name(), Err: err}
	}
	c, err := ParseCollection(data)
	if err != nil {
		log.Error().Err(err).Str("source", src.Name()).Msg("error parsing record set")
		return nil, &DataSourceError{Source: src.Name(), Err: err}
	}
	return c, nil
}

// ByID returns the first record in the named set whose id equals id
func (s *Service) ByID(ctx context.Context, name string, id int64) (Record, error) {
	c, err := s.Collection(ctx, name)
	if err != nil {
		return nil, err
	}
	r, ok := c.Find(id)
	if !ok {
		return nil, &NotFoundError{Collection: name, ID: id}
	}
	return r, nil
}

// Lookup parses raw with ParseID and then calls ByID
func (s *Service) Lookup(ctx context.Context, name, raw string) (Record, error) {
	id, err := ParseID(raw)
	if err != nil {
		return nil, err
	}
	return s.ByID(ctx, name, id)
}
