package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"skillmatch/internal/errors"
	"skillmatch/internal/evaluation"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PolicyStore holds the loaded evaluation configs and serves them to the CLI
// and HTTP handlers. Safe for concurrent use; the watcher goroutine swaps the
// whole map on reload.
type PolicyStore struct {
	mu       sync.RWMutex
	configs  map[string]evaluation.EvaluationConfig
	settings EvaluationSettings
	logger   *errors.Logger

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewPolicyStore loads the evaluation policy file (if configured) and returns
// a store. Invalid policies fail the load; a broken scoring policy must never
// reach an evaluation.
func NewPolicyStore(settings EvaluationSettings, logger *errors.Logger) (*PolicyStore, error) {
	store := &PolicyStore{
		configs:  make(map[string]evaluation.EvaluationConfig),
		settings: settings,
		logger:   logger,
	}

	if settings.ConfigFile != "" {
		configs, err := loadPolicyFile(settings.ConfigFile)
		if err != nil {
			return nil, err
		}
		store.configs = configs
		if logger != nil {
			logger.Info("Evaluation policies loaded",
				"file", settings.ConfigFile,
				"count", len(configs))
		}
	}

	return store, nil
}

// loadPolicyFile reads and validates every evaluation config in the file
func loadPolicyFile(path string) (map[string]evaluation.EvaluationConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read evaluation policy file %s: %w", path, err)
	}

	var file struct {
		Configs []evaluation.EvaluationConfig `mapstructure:"configs"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation policy file %s: %w", path, err)
	}

	configs := make(map[string]evaluation.EvaluationConfig, len(file.Configs))
	for _, cfg := range file.Configs {
		if cfg.ID == "" {
			return nil, errors.NewConfigError(errors.ErrCodeInvalidCriteria,
				fmt.Sprintf("Evaluation config in %s has no id", path), nil)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, exists := configs[cfg.ID]; exists {
			return nil, errors.NewConfigError(errors.ErrCodeInvalidCriteria,
				fmt.Sprintf("Duplicate evaluation config id %q in %s", cfg.ID, path), nil)
		}
		configs[cfg.ID] = cfg
	}
	return configs, nil
}

// Get returns the config with the given id, falling back to the built-in
// default policy when the id is empty or unknown
func (s *PolicyStore) Get(id string) evaluation.EvaluationConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id != "" {
		if cfg, ok := s.configs[id]; ok {
			return cfg
		}
		if s.logger != nil {
			s.logger.Warn("Unknown evaluation config id, using default policy", "id", id)
		}
	}
	return evaluation.DefaultConfig(s.settings.DefaultDivision)
}

// GetForDivision returns the first config matching the division, or the
// built-in default for it
func (s *PolicyStore) GetForDivision(division string) evaluation.EvaluationConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cfg := range s.configs {
		if strings.EqualFold(cfg.Division, division) {
			return cfg
		}
	}
	return evaluation.DefaultConfig(division)
}

// IDs returns the loaded config ids
func (s *PolicyStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.configs))
	for id := range s.configs {
		ids = append(ids, id)
	}
	return ids
}

// Watch starts watching the policy file for changes and reloads it on write.
// A reload that fails validation keeps the previous policies in place.
func (s *PolicyStore) Watch() error {
	if s.settings.ConfigFile == "" || !s.settings.WatchConfigFile {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create policy file watcher: %w", err)
	}
	// Watch the directory: editors often replace the file on save, which
	// drops a watch registered on the file itself
	if err := watcher.Add(filepath.Dir(s.settings.ConfigFile)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch policy directory: %w", err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	go s.watchLoop()

	if s.logger != nil {
		s.logger.Info("Watching evaluation policy file for changes",
			"file", s.settings.ConfigFile,
			"debounce", s.settings.DebounceDelay.String())
	}
	return nil
}

func (s *PolicyStore) watchLoop() {
	var debounce *time.Timer
	target := filepath.Clean(s.settings.ConfigFile)

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(s.settings.DebounceDelay, s.reload)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			if s.logger != nil {
				s.logger.Warn("Policy file watcher error", "error", err.Error())
			}

		case <-s.done:
			return
		}
	}
}

func (s *PolicyStore) reload() {
	configs, err := loadPolicyFile(s.settings.ConfigFile)
	if err != nil {
		if s.logger != nil {
			s.logger.LogError(err, "Policy reload failed, keeping previous policies",
				"file", s.settings.ConfigFile)
		}
		return
	}

	s.mu.Lock()
	s.configs = configs
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("Evaluation policies reloaded",
			"file", s.settings.ConfigFile,
			"count", len(configs))
	}
}

// Close stops the watcher if one is running
func (s *PolicyStore) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	return s.watcher.Close()
}
