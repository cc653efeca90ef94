package content

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
)

func setup(source content.Source) http.Handler {
	r := chi.NewRouter()
	New(source, zerolog.Nop()).RegisterRoutes(r)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestListCategories(t *testing.T) {
	h := setup(content.Static(content.NewMemoryStore(content.Seed())))

	rec := get(t, h, "/content/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []CategorySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	seed := content.Seed().Categories
	require.Len(t, got, len(seed))
	for i, c := range seed {
		assert.Equal(t, c.Name, got[i].Name)
		assert.Equal(t, c.Keywords, got[i].Keywords)
	}
}

func TestListEmergencyAndFAQ(t *testing.T) {
	h := setup(content.Static(content.NewMemoryStore(content.Seed())))

	rec := get(t, h, "/content/emergency")
	require.Equal(t, http.StatusOK, rec.Code)
	var emergency []content.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &emergency))
	assert.Equal(t, content.Seed().Emergency, emergency)

	rec = get(t, h, "/content/faq")
	require.Equal(t, http.StatusOK, rec.Code)
	var faq []content.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &faq))
	assert.Equal(t, content.Seed().FAQ, faq)
}

func TestContacts(t *testing.T) {
	h := setup(content.Static(content.NewMemoryStore(content.Seed())))

	rec := get(t, h, "/content/contacts")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []content.Department
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Equal(t, content.Seed().Departments, all)

	rec = get(t, h, "/content/contacts/"+url.PathEscape("약제부"))
	require.Equal(t, http.StatusOK, rec.Code)
	var one content.Department
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	assert.Equal(t, "내선 2200", one.Contact)

	rec = get(t, h, "/content/contacts/"+url.PathEscape("없는부서"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReload(t *testing.T) {
	static := setup(content.Static(content.NewMemoryStore(content.Seed())))
	rec := httptest.NewRecorder()
	static.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/content/reload", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	data, err := content.Marshal(content.Seed())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	w, err := content.NewWatcher(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	h := setup(w)

	require.NoError(t, os.WriteFile(path, []byte("categories: [\n"), 0o600))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/content/reload", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	require.NoError(t, os.WriteFile(path, data, 0o600))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/content/reload", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
