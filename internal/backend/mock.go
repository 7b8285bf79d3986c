package backend

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"hash/crc32"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"headshot-viewer/internal/logger"
	"headshot-viewer/internal/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var seedPresets []byte

const (
	DefaultBaseURL   = "http://localhost:8000/api"
	DefaultFileCount = 24
	similarCount     = 3
)

type presetDocument struct {
	Presets []struct {
		Name       string         `yaml:"name"`
		Parameters map[string]int `yaml:"parameters"`
	} `yaml:"presets"`
}

// LoadSeedPresets parses a preset document in the embedded YAML layout.
func LoadSeedPresets(data []byte) (map[string]map[string]int, error) {
	var doc presetDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse preset document: %w", err)
	}

	out := make(map[string]map[string]int, len(doc.Presets))
	for _, p := range doc.Presets {
		preset := models.Preset{Name: p.Name, Parameters: p.Parameters}
		if err := preset.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		out[p.Name] = models.CloneParameters(p.Parameters)
	}
	return out, nil
}

type MockOption func(*Mock)

// WithLatency delays every call by d, honouring context cancellation.
func WithLatency(d time.Duration) MockOption {
	return func(m *Mock) { m.latency = d }
}

// WithFileCount sets how many files a directory scan yields.
func WithFileCount(n int) MockOption {
	return func(m *Mock) { m.fileCount = n }
}

// WithBaseURL records the endpoint the mock pretends to talk to.
func WithBaseURL(url string) MockOption {
	return func(m *Mock) { m.baseURL = url }
}

// Mock fabricates every result and logs a diagnostic line per call.
type Mock struct {
	logger    logger.Logger
	baseURL   string
	latency   time.Duration
	fileCount int

	mu           sync.Mutex
	token        string
	presets      map[string]map[string]int
	pathFailures map[string]error
	opFailures   map[string]error
	calls        map[string]int
}

func NewMock(log logger.Logger, opts ...MockOption) (*Mock, error) {
	presets, err := LoadSeedPresets(seedPresets)
	if err != nil {
		return nil, err
	}

	m := &Mock{
		logger:       log,
		baseURL:      DefaultBaseURL,
		fileCount:    DefaultFileCount,
		presets:      presets,
		pathFailures: make(map[string]error),
		opFailures:   make(map[string]error),
		calls:        make(map[string]int),
	}
	for _, opt := range opts {
		opt(m)
	}

	log.Info("MockBackend", "backend initialized", map[string]interface{}{
		"base_url": m.baseURL,
		"presets":  len(presets),
	})
	return m, nil
}

// FailPath makes adjustment calls for path fail with err. A nil err clears it.
func (m *Mock) FailPath(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.pathFailures, path)
		return
	}
	m.pathFailures[path] = err
}

// FailOp makes every call of op fail with err. A nil err clears it.
func (m *Mock) FailOp(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.opFailures, op)
		return
	}
	m.opFailures[op] = err
}

// SetLatency changes the simulated call latency.
func (m *Mock) SetLatency(d time.Duration) {
	m.mu.Lock()
	m.latency = d
	m.mu.Unlock()
}

// Calls returns how many times op has been invoked.
func (m *Mock) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *Mock) begin(ctx context.Context, op string, fields map[string]interface{}) error {
	m.mu.Lock()
	m.calls[op]++
	latency := m.latency
	opErr := m.opFailures[op]
	m.mu.Unlock()

	m.logger.Debug("MockBackend", op, fields)

	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	return opErr
}

func (m *Mock) pathError(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pathFailures[path]
}

func (m *Mock) Authenticate(ctx context.Context, username string) (string, error) {
	if err := m.begin(ctx, "authenticate", map[string]interface{}{"username": username}); err != nil {
		return "", err
	}
	if username == "" {
		return "", errors.New("username is required")
	}

	token := uuid.NewString()
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return token, nil
}

func (m *Mock) Scan(ctx context.Context, dir string) ([]string, error) {
	if err := m.begin(ctx, "scan", map[string]interface{}{"dir": dir}); err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, errors.New("directory is required")
	}

	paths := make([]string, 0, m.fileCount)
	for i := 1; i <= m.fileCount; i++ {
		p := filepath.Join(dir, fmt.Sprintf("headshot_%03d.jpg", i))
		if models.IsSupportedImage(p) {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// Metadata fabricates stable values derived from the path so that filtering
// and sorting have something to work on.
func (m *Mock) Metadata(ctx context.Context, path string) (map[string]interface{}, error) {
	if err := m.begin(ctx, "metadata", map[string]interface{}{"path": path}); err != nil {
		return nil, err
	}

	sum := crc32.ChecksumIEEE([]byte(path))
	width, height := 1920, 1080
	if sum%3 == 0 {
		width, height = 1080, 1350
	}

	return map[string]interface{}{
		"width":        width,
		"height":       height,
		"file_size":    2048576,
		"created_date": fmt.Sprintf("2024-01-%02d", 1+sum%28),
		"camera_model": "Canon EOS R5",
	}, nil
}

func (m *Mock) Apply(ctx context.Context, path string, params map[string]int) error {
	if err := m.begin(ctx, "apply", map[string]interface{}{"path": path, "params": params}); err != nil {
		return err
	}
	if err := m.requireSession(); err != nil {
		return err
	}
	return m.pathError(path)
}

func (m *Mock) ApplyBatch(ctx context.Context, paths []string, settings map[string]int) ([]Result, error) {
	if err := m.begin(ctx, "apply_batch", map[string]interface{}{"count": len(paths), "settings": settings}); err != nil {
		return nil, err
	}
	if err := m.requireSession(); err != nil {
		return nil, err
	}

	results := make([]Result, len(paths))
	for i, p := range paths {
		results[i] = Result{Path: p, Err: m.pathError(p)}
	}
	return results, nil
}

func (m *Mock) Save(ctx context.Context, path string, adjustments map[string]int, dest string) (string, error) {
	if err := m.begin(ctx, "save", map[string]interface{}{"path": path, "dest": dest, "adjustments": len(adjustments)}); err != nil {
		return "", err
	}
	if err := m.pathError(path); err != nil {
		return "", err
	}
	if dest == "" {
		ext := filepath.Ext(path)
		dest = strings.TrimSuffix(path, ext) + "_edited" + ext
	}
	return dest, nil
}

func (m *Mock) Presets(ctx context.Context) (map[string]map[string]int, error) {
	if err := m.begin(ctx, "presets", nil); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]map[string]int, len(m.presets))
	for name, params := range m.presets {
		out[name] = models.CloneParameters(params)
	}
	return out, nil
}

func (m *Mock) SavePreset(ctx context.Context, name string, params map[string]int) error {
	if err := m.begin(ctx, "save_preset", map[string]interface{}{"name": name}); err != nil {
		return err
	}

	m.mu.Lock()
	m.presets[name] = models.CloneParameters(params)
	m.mu.Unlock()
	return nil
}

func (m *Mock) FindSimilar(ctx context.Context, path string, threshold float64) ([]string, error) {
	if err := m.begin(ctx, "find_similar", map[string]interface{}{"path": path, "threshold": threshold}); err != nil {
		return nil, err
	}
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("threshold %.2f outside (0, 1]", threshold)
	}

	dir := filepath.Dir(path)
	out := make([]string, similarCount)
	for i := range out {
		out[i] = filepath.Join(dir, fmt.Sprintf("similar_%d.jpg", i+1))
	}
	return out, nil
}

func (m *Mock) requireSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return ErrNotAuthenticated
	}
	return nil
}
