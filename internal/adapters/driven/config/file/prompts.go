package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/quarry-labs/corrag/internal/core/ports/driven"
	"github.com/quarry-labs/corrag/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk,
// falling back to embedded defaults.
//
// The store uses lazy initialisation - files are only created when
// first accessed, not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts, used when user
// files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptRelevanceEval: `You are evaluating whether retrieved documents are relevant to a user query.

User Query: %s

Retrieved Documents:
%s

Evaluate the relevance of these documents to the query. Consider:
1. Do the documents contain information directly related to the query?
2. Are the documents useful for answering the query?
3. Is the information accurate and up-to-date?

Respond in JSON format:
{
  "isRelevant": true/false,
  "score": 0.0-1.0,
  "reason": "brief explanation"
}`,

	driven.PromptQueryRefine: `The following query did not retrieve relevant documents:

Query: %s

Evaluation: %s (score: %.2f)

Rewrite the query to be more specific and more likely to match relevant documents. Respond with ONLY the rewritten query, no explanation.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.corrag/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".corrag", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default
// files. Falls back to the embedded default if the file is missing.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Double-check under the write lock to avoid overwriting a
	// concurrent load.
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Watch reloads the cache whenever a prompt file changes on disk.
// It blocks until ctx is cancelled, so run it in a goroutine. Long
// running processes (the MCP server) use this so prompt edits take
// effect without a restart.
func (s *PromptStore) Watch(ctx context.Context) error {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.promptDir); err != nil {
		return fmt.Errorf("watch prompt directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("Prompt file changed: %s", event.Name)
				s.Reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Prompt watcher error: %v", err)
		}
	}
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
