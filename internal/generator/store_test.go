package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askillindva/XmlTemplateGenerator/internal/common/config"
	apperrors "github.com/askillindva/XmlTemplateGenerator/internal/common/errors"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestStore(t *testing.T, files map[string]string) *Store {
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return NewStore(
		config.TemplatesConfig{Dir: dir, Extension: ".xml"},
		logger.NewTestLogger(t),
	)
}

// ==========================
// Listing Tests
// ==========================

func TestStore_List(t *testing.T) {
	store := createTestStore(t, map[string]string{
		"order.xml":    `<order/>`,
		"customer.xml": `<customer/>`,
		"readme.txt":   `not a template`,
		"upper.XML":    `<ignored/>`,
	})

	assert.Equal(t, []string{"customer", "order"}, store.List())
}

func TestStore_List_SkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order.xml"), []byte(`<order/>`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.xml"), 0o755))
	store := NewStore(config.TemplatesConfig{Dir: dir, Extension: ".xml"}, logger.NewTestLogger(t))

	assert.Equal(t, []string{"order"}, store.List())
}

func TestStore_List_MissingDirectory(t *testing.T) {
	store := NewStore(
		config.TemplatesConfig{Dir: filepath.Join(t.TempDir(), "does-not-exist"), Extension: ".xml"},
		logger.NewTestLogger(t),
	)

	assert.Empty(t, store.List())
}

func TestStore_List_EmptyDirectory(t *testing.T) {
	store := createTestStore(t, nil)

	assert.Empty(t, store.List())
}

// ==========================
// Load Tests
// ==========================

func TestStore_Load(t *testing.T) {
	store := createTestStore(t, map[string]string{
		"order.xml": `<order><id>{{ order_id }}</id></order>`,
	})

	text, err := store.Load("order")

	assert.NoError(t, err)
	assert.Equal(t, `<order><id>{{ order_id }}</id></order>`, text)
}

func TestStore_Load_NotFound(t *testing.T) {
	store := createTestStore(t, map[string]string{"order.xml": `<order/>`})

	_, err := store.Load("missing")

	assert.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeTemplateNotFound))
}

func TestStore_Load_RejectsTraversal(t *testing.T) {
	store := createTestStore(t, map[string]string{"order.xml": `<order/>`})

	names := []string{
		"",
		".",
		"..",
		"../order",
		"../../etc/passwd",
		"sub/order",
		`sub\order`,
	}
	for _, name := range names {
		_, err := store.Load(name)
		assert.Error(t, err, name)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidTemplateName), name)
	}
}
