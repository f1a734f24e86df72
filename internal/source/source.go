package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bioprephq/bioprep/internal/domain"
)

// Resource names of the two catalog collections.
const (
	ResourceCourses = "courses"
	ResourceExams   = "exams"
)

// Source supplies raw record collections. Implementations return the entire
// collection in one call; there is no pagination envelope.
type Source interface {
	FetchCollection(ctx context.Context, resource string) ([]domain.Record, error)
}

func kindFor(resource string) (domain.Kind, error) {
	switch resource {
	case ResourceCourses:
		return domain.KindCourse, nil
	case ResourceExams:
		return domain.KindExam, nil
	}
	return "", fmt.Errorf("source: unknown resource %q", resource)
}

// FileSource loads collections from JSON files on disk, one file per
// resource.
type FileSource struct {
	paths map[string]string
}

func NewFileSource(paths map[string]string) *FileSource {
	return &FileSource{paths: paths}
}

func (s *FileSource) FetchCollection(_ context.Context, resource string) ([]domain.Record, error) {
	kind, err := kindFor(resource)
	if err != nil {
		return nil, err
	}

	path, ok := s.paths[resource]
	if !ok {
		return nil, fmt.Errorf("source: no file configured for %q", resource)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}

	return decode(kind, b)
}

// HTTPSource loads collections with a one-shot GET per resource from
// {base}/{resource}.json.
type HTTPSource struct {
	base   string
	client *http.Client
}

func NewHTTPSource(base string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSource{base: base, client: client}
}

func (s *HTTPSource) FetchCollection(ctx context.Context, resource string) ([]domain.Record, error) {
	kind, err := kindFor(resource)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s.json", s.base, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("source: new request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source: get %s: status %d", url, resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("source: read body: %w", err)
	}

	return decode(kind, b)
}

func decode(kind domain.Kind, b []byte) ([]domain.Record, error) {
	var records []domain.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("source: decode collection: %w", err)
	}
	return Normalize(kind, records), nil
}

// Static serves a fixed in-memory collection set.
type Static struct {
	collections map[string][]domain.Record
}

func NewStatic(collections map[string][]domain.Record) *Static {
	normalized := make(map[string][]domain.Record, len(collections))
	for resource, records := range collections {
		kind, err := kindFor(resource)
		if err != nil {
			continue
		}
		normalized[resource] = Normalize(kind, records)
	}
	return &Static{collections: normalized}
}

func (s *Static) FetchCollection(_ context.Context, resource string) ([]domain.Record, error) {
	if _, err := kindFor(resource); err != nil {
		return nil, err
	}

	records, ok := s.collections[resource]
	if !ok {
		return nil, fmt.Errorf("source: no collection for %q", resource)
	}

	out := make([]domain.Record, len(records))
	copy(out, records)
	return out, nil
}

// Cached wraps a source with a TTL cache, so repeated list queries within
// the window do not refetch the collection.
type Cached struct {
	src   Source
	cache *gocache.Cache
}

func NewCached(src Source, ttl time.Duration) *Cached {
	return &Cached{
		src:   src,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *Cached) FetchCollection(ctx context.Context, resource string) ([]domain.Record, error) {
	if cached, ok := s.cache.Get(resource); ok {
		records := cached.([]domain.Record)
		out := make([]domain.Record, len(records))
		copy(out, records)
		return out, nil
	}

	records, err := s.src.FetchCollection(ctx, resource)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(resource, records)

	out := make([]domain.Record, len(records))
	copy(out, records)
	return out, nil
}
