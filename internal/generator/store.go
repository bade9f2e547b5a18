package generator

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/askillindva/XmlTemplateGenerator/internal/common/config"
	apperrors "github.com/askillindva/XmlTemplateGenerator/internal/common/errors"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/logger"
)

// Store reads XML templates from a configured directory. Templates are
// re-read on every request; freshness wins over performance here.
type Store struct {
	dir       string
	extension string
	logger    logger.Logger
}

func NewStore(cfg config.TemplatesConfig, log logger.Logger) *Store {
	return &Store{
		dir:       cfg.Dir,
		extension: cfg.Extension,
		logger:    log.WithFields(map[string]interface{}{"component": "template-store"}),
	}
}

// List scans the template directory non-recursively and returns the sorted
// template names, extension stripped. A missing or empty directory yields an
// empty list, not an error; the listing page renders a "no templates" state.
func (s *Store) List() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("failed to scan template directory", map[string]interface{}{
				"dir": s.dir,
			})
		}
		return []string{}
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// Suffix match is case-sensitive on purpose: the directory contract
		// recognizes ".xml", not ".XML".
		if !strings.HasSuffix(entry.Name(), s.extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), s.extension))
	}
	sort.Strings(names)
	return names
}

// Load returns the raw text of the named template. The name is validated
// before touching the filesystem so requests cannot escape the configured
// directory.
func (s *Store) Load(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name+s.extension)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewTemplateNotFoundError(name)
		}
		return "", apperrors.NewTemplateReadFailedError(name, err)
	}
	return string(content), nil
}

// validateName rejects anything that is not a plain file name: empty names,
// path separators and parent-directory segments.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return apperrors.NewInvalidTemplateNameError(name)
	}
	if strings.ContainsAny(name, `/\`) {
		return apperrors.NewInvalidTemplateNameError(name)
	}
	if filepath.Base(name) != name {
		return apperrors.NewInvalidTemplateNameError(name)
	}
	return nil
}
