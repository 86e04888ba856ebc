package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "mineral-catalog/internal/domains/auth/model"
	"mineral-catalog/internal/domains/mineral/model"
	"mineral-catalog/internal/domains/mineral/repository"
	"mineral-catalog/internal/domains/mineral/service"
	"mineral-catalog/internal/shared/middleware"
)

// ========================================
// FIXTURES
// ========================================

const adminToken = "admin-token"

type staticSessions struct{}

func (staticSessions) Session(_ context.Context, token string) (*authModel.Session, error) {
	if token == adminToken {
		return &authModel.Session{Token: token, Username: "admin", IsAdmin: true}, nil
	}
	return nil, nil
}

type fakeRepo struct {
	stored  []model.Mineral
	saves   int
	resets  int
	deleted []int
}

func (f *fakeRepo) EnsureSchema(context.Context) error { return nil }

func (f *fakeRepo) LoadAll(context.Context) ([]model.Mineral, error) {
	return append([]model.Mineral(nil), f.stored...), nil
}

// SaveAll ignores an empty list like the Postgres repository does.
func (f *fakeRepo) SaveAll(_ context.Context, minerals []model.Mineral) error {
	if len(minerals) == 0 {
		return nil
	}
	f.saves++
	f.stored = append([]model.Mineral(nil), minerals...)
	return nil
}

func (f *fakeRepo) AddOne(_ context.Context, m model.Mineral) (int, error) {
	f.stored = append(f.stored, m)
	return len(f.stored), nil
}

func (f *fakeRepo) DeleteOne(_ context.Context, id int) (bool, error) {
	f.deleted = append(f.deleted, id)
	return id == 1, nil
}

func (f *fakeRepo) IsEmpty(context.Context) (bool, error) { return len(f.stored) == 0, nil }

func (f *fakeRepo) Stats(context.Context) (*model.StorageStats, error) {
	return &model.StorageStats{Minerals: len(f.stored)}, nil
}

func (f *fakeRepo) Localities(context.Context) ([]string, error) {
	return []string{"Brazil", "Ural"}, nil
}

func (f *fakeRepo) ValueCategories(context.Context) ([]string, error) { return nil, nil }

func (f *fakeRepo) Reset(context.Context) error {
	f.resets++
	f.stored = nil
	return nil
}

func seededCollection() service.CollectionService {
	c := service.NewCollectionService()
	c.Add(model.Fields{Name: "Quartz", Formula: "SiO2", Class: "Oxides", Color: "colorless", Hardness: "7", Location: "Ural, Brazil", ValueCategory: "Common", ImageURL: "images/quartz.png"})
	c.Add(model.Fields{Name: "Talc", Formula: "Mg3Si4O10(OH)2", Class: "Silicates", Color: "white", Hardness: "1", Location: "Austria"})
	c.Add(model.Fields{Name: "Beryl", Formula: "Be3Al2Si6O18", Class: "Silicates", Color: "green", Hardness: "7,5-8", Location: "Colombia", ValueCategory: "Gem"})
	return c
}

// setupRouter mounts the handler the way the API router does. A nil repo
// leaves the handler without storage.
func setupRouter(collection service.CollectionService, repo repository.Repository, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewMineralHandler(collection, service.NewExportService(), repo, opts)

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.Use(middleware.Session(staticSessions{}, "session"))

	r.GET("/", h.Home)
	r.GET("/mineral", h.Detail)
	r.GET("/stats", h.StatsFragment)
	r.GET("/minerals", h.List)
	r.GET("/api/minerals/:id", h.Get)
	r.GET("/api/stats", h.StatsJSON)
	r.GET("/search", h.Search)
	r.GET("/filter", h.Filter)
	r.GET("/sort", h.Sort)
	r.GET("/export", h.Export)

	admin := r.Group("")
	admin.Use(middleware.AdminMiddleware())
	admin.POST("/add", h.Add)
	admin.POST("/delete", h.Delete)
	admin.POST("/admin/import", h.Import)
	admin.POST("/admin/images", h.UploadImage)
	admin.POST("/admin/clear", h.Clear)
	admin.POST("/admin/save", h.Save)
	admin.POST("/admin/reload", h.Reload)
	admin.GET("/admin/storage/stats", h.StorageStats)
	admin.GET("/admin/storage/localities", h.StorageLocalities)
	admin.DELETE("/admin/storage/minerals/:id", h.DeleteStored)
	return r
}

var adminCookie = &http.Cookie{Name: "session", Value: adminToken}

func do(r http.Handler, method, path string, body *strings.Reader, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []model.MineralResp {
	t.Helper()
	var out []model.MineralResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func names(list []model.MineralResp) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, m.Name)
	}
	return out
}

// ========================================
// JSON API
// ========================================

func TestList_ReturnsEveryMineral(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/minerals", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Quartz", "Talc", "Beryl"}, names(decodeList(t, w)))
}

func TestList_EmptyCollectionIsArray(t *testing.T) {
	r := setupRouter(service.NewCollectionService(), nil, Options{})

	w := do(r, http.MethodGet, "/minerals", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGet(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/api/minerals/2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Talc"`)

	w = do(r, http.MethodGet, "/api/minerals/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "MINERAL_NOT_FOUND")

	w = do(r, http.MethodGet, "/api/minerals/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"by name", "/search?type=name&query=qua", []string{"Quartz"}},
		{"all fields", "/search?type=all&query=silicates", []string{"Talc", "Beryl"}},
		{"blank query", "/search?type=name&query=", []string{}},
		{"unknown type", "/search?type=formula&query=SiO2", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, nil, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, names(decodeList(t, w)))
		})
	}
}

func TestFilter(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"class is exact", "/filter?type=class&query=silicates", []string{"Talc", "Beryl"}},
		{"class substring misses", "/filter?type=class&query=silic", []string{}},
		{"color", "/filter?type=color&query=GREEN", []string{"Beryl"}},
		{"location", "/filter?type=location&query=brazil", []string{"Quartz"}},
		{"value category", "/filter?type=valueCategory&query=gem", []string{"Beryl"}},
		{"blank value category", "/filter?type=valueCategory&query=", []string{}},
		{"blank class", "/filter?type=class&query=%20", []string{}},
		{"unknown type", "/filter?type=luster&query=x", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, nil, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, names(decodeList(t, w)))
		})
	}
}

func TestSort(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/sort?field=name", nil, nil)
	assert.Equal(t, []string{"Beryl", "Quartz", "Talc"}, names(decodeList(t, w)))

	w = do(r, http.MethodGet, "/sort?field=hardness", nil, nil)
	assert.Equal(t, []string{"Talc", "Quartz", "Beryl"}, names(decodeList(t, w)))

	w = do(r, http.MethodGet, "/sort?field=color", nil, nil)
	assert.Equal(t, []string{"Quartz", "Talc", "Beryl"}, names(decodeList(t, w)))
}

func TestStatsJSON(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/api/stats", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data model.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.Total)
	assert.Equal(t, 2, model.CountFor(body.Data.ByClass, "Silicates"))
}

// ========================================
// EXPORT
// ========================================

func TestExport_DefaultsToHTML(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/export", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"minerals_")
	assert.Contains(t, w.Body.String(), "Quartz")
}

func TestExport_CSV(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/export?format=csv", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Name,Formula,Class"))
}

func TestExport_UnknownFormat(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/export?format=pdf", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_EXPORT_FORMAT")
}

// ========================================
// MUTATIONS
// ========================================

func TestAdd_RequiresAdmin(t *testing.T) {
	collection := seededCollection()
	r := setupRouter(collection, nil, Options{})

	form := url.Values{"name": {"Galena"}, "mineralClass": {"Sulfides"}}
	w := do(r, http.MethodPost, "/add", strings.NewReader(form.Encode()), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 3, collection.Size())
}

func TestAdd(t *testing.T) {
	collection := seededCollection()
	repo := &fakeRepo{}
	r := setupRouter(collection, repo, Options{PersistOnChange: true})

	form := url.Values{
		"name":         {" Galena "},
		"mineralClass": {"Sulfides"},
		"hardness":     {"2,5"},
		"imageUrl":     {"images/galena.png"},
	}
	w := do(r, http.MethodPost, "/add", strings.NewReader(form.Encode()), adminCookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mineral added", w.Body.String())

	m, ok := collection.GetByID(4)
	require.True(t, ok)
	assert.Equal(t, "Galena", m.Name)
	assert.Equal(t, "Sulfides", m.Class)
	assert.Equal(t, 1, repo.saves)
	assert.Len(t, repo.stored, 4)
}

func TestAdd_MissingRequiredFields(t *testing.T) {
	collection := seededCollection()
	r := setupRouter(collection, nil, Options{})

	form := url.Values{"name": {"Galena"}}
	w := do(r, http.MethodPost, "/add", strings.NewReader(form.Encode()), adminCookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "mineral class is required")
	assert.Equal(t, 3, collection.Size())
}

func TestDelete(t *testing.T) {
	collection := seededCollection()
	r := setupRouter(collection, nil, Options{})

	w := do(r, http.MethodPost, "/delete?id=2", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mineral removed", w.Body.String())
	assert.Equal(t, []int{1, 3}, collection.IDs())

	w = do(r, http.MethodPost, "/delete?id=2", nil, adminCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/delete?id=two", nil, adminCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete_PersistsRemovalOfLastMineral(t *testing.T) {
	collection := service.NewCollectionService()
	collection.Add(model.Fields{Name: "Quartz", Class: "Oxides"})
	repo := &fakeRepo{stored: collection.All()}
	r := setupRouter(collection, repo, Options{PersistOnChange: true})

	w := do(r, http.MethodPost, "/delete?id=1", nil, adminCookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, collection.IsEmpty())
	assert.Equal(t, 1, repo.resets)
	assert.Empty(t, repo.stored)

	empty, err := repo.IsEmpty(context.Background())
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestDelete_PersistsRemaining(t *testing.T) {
	collection := seededCollection()
	repo := &fakeRepo{stored: collection.All()}
	r := setupRouter(collection, repo, Options{PersistOnChange: true})

	w := do(r, http.MethodPost, "/delete?id=2", nil, adminCookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, repo.resets)
	assert.Equal(t, 1, repo.saves)
	require.Len(t, repo.stored, 2)
	assert.Equal(t, "Quartz", repo.stored[0].Name)
	assert.Equal(t, "Beryl", repo.stored[1].Name)
}

// ========================================
// ADMIN
// ========================================

func multipartUpload(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "minerals.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImport(t *testing.T) {
	collection := service.NewCollectionService()
	r := setupRouter(collection, nil, Options{})

	content := "header\n" +
		"Pyrite;FeS2;Sulfides;brass;black;metallic;6-6,5;5;none;uneven;hydrothermal;ore;;fool's gold;Spain;Common;images/pyrite.png\n" +
		"broken;row\n" +
		"Halite;NaCl;Halides;colorless;white;glassy;2,5;2,2;cubic;conchoidal;evaporite;salt;;;Poland;Common\n"
	body, contentType := multipartUpload(t, content)

	req := httptest.NewRequest(http.MethodPost, "/admin/import", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(adminCookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data model.ImportSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.TotalRows)
	assert.Equal(t, 2, resp.Data.ImportedRows)
	assert.Equal(t, 1, resp.Data.SkippedRows)
	assert.Equal(t, []int{1, 2}, resp.Data.CreatedIDs)

	halite, ok := collection.GetByID(2)
	require.True(t, ok)
	assert.Equal(t, "Halite", halite.Name)
	assert.Equal(t, "", halite.ImageURL)
}

func TestImport_MissingFile(t *testing.T) {
	r := setupRouter(service.NewCollectionService(), nil, Options{})

	w := do(r, http.MethodPost, "/admin/import", strings.NewReader(""), adminCookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeImages struct {
	name string
	size int
}

func (f *fakeImages) Save(name string, data []byte) (string, error) {
	f.name = name
	f.size = len(data)
	return "images/" + strings.ToLower(name) + ".jpg", nil
}

func TestUploadImage(t *testing.T) {
	images := &fakeImages{}
	r := setupRouter(seededCollection(), nil, Options{Images: images})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Galena"))
	fw, err := mw.CreateFormFile("image", "galena.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(adminCookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"imageUrl":"images/galena.jpg"`)
	assert.Equal(t, "Galena", images.name)
	assert.Equal(t, len("png-bytes"), images.size)
}

func TestUploadImage_Disabled(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodPost, "/admin/images", nil, adminCookie)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStorageEndpoints_WithoutDatabase(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/admin/save"},
		{http.MethodPost, "/admin/reload"},
		{http.MethodGet, "/admin/storage/stats"},
		{http.MethodGet, "/admin/storage/localities"},
		{http.MethodDelete, "/admin/storage/minerals/1"},
		{http.MethodPost, "/admin/clear?storage=true"},
	} {
		t.Run(tc.path, func(t *testing.T) {
			w := do(r, tc.method, tc.path, nil, adminCookie)
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Contains(t, w.Body.String(), "STORAGE_UNAVAILABLE")
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	collection := seededCollection()
	repo := &fakeRepo{}
	r := setupRouter(collection, repo, Options{})

	w := do(r, http.MethodPost, "/admin/save", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, repo.stored, 3)

	collection.RemoveByID(1)
	collection.Add(model.Fields{Name: "Galena", Class: "Sulfides"})

	w = do(r, http.MethodPost, "/admin/reload", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loaded":3`)

	all := collection.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Quartz", all[0].Name)
	assert.Equal(t, []int{1, 2, 3}, collection.IDs())
}

func TestClear(t *testing.T) {
	collection := seededCollection()
	repo := &fakeRepo{stored: collection.All()}
	r := setupRouter(collection, repo, Options{})

	w := do(r, http.MethodPost, "/admin/clear", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, collection.IsEmpty())
	assert.Equal(t, 0, repo.resets)
	assert.Len(t, repo.stored, 3)

	w = do(r, http.MethodPost, "/admin/clear?storage=true", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, repo.resets)
	assert.Empty(t, repo.stored)
}

func TestClear_PersistOnChangeResetsStorage(t *testing.T) {
	collection := seededCollection()
	repo := &fakeRepo{stored: collection.All()}
	r := setupRouter(collection, repo, Options{PersistOnChange: true})

	w := do(r, http.MethodPost, "/admin/clear", nil, adminCookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, collection.IsEmpty())
	assert.Equal(t, 1, repo.resets)
	assert.Empty(t, repo.stored)
}

func TestStorageStatsAndLocalities(t *testing.T) {
	repo := &fakeRepo{stored: seededCollection().All()}
	r := setupRouter(seededCollection(), repo, Options{})

	w := do(r, http.MethodGet, "/admin/storage/stats", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"minerals":3`)

	w = do(r, http.MethodGet, "/admin/storage/localities", nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestDeleteStored(t *testing.T) {
	repo := &fakeRepo{}
	r := setupRouter(seededCollection(), repo, Options{})

	w := do(r, http.MethodDelete, "/admin/storage/minerals/1", nil, adminCookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/admin/storage/minerals/7", nil, adminCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []int{1, 7}, repo.deleted)
}

// ========================================
// PAGES
// ========================================

func TestHome(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Quartz")
	assert.Contains(t, body, "Beryl")
	assert.Contains(t, body, `src="/images/quartz.png"`)
	assert.Contains(t, body, `src="/images/no-image.png"`)
	assert.Contains(t, body, `action="/login"`)
	assert.NotContains(t, body, "Add mineral")
}

func TestHome_CategoryAndAdmin(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/?category=gem", nil, adminCookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Beryl")
	assert.NotContains(t, body, "Talc")
	assert.Contains(t, body, "Add mineral")
	assert.NotContains(t, body, `action="/login"`)
}

func TestDetail(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/mineral?id=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ural, Brazil")

	w = do(r, http.MethodGet, "/mineral?id=42", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/mineral?id=x", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsFragment(t *testing.T) {
	r := setupRouter(seededCollection(), nil, Options{})

	w := do(r, http.MethodGet, "/stats", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `class="stats-grid"`)
	assert.Contains(t, body, "<h3>3</h3>")
	assert.Contains(t, body, "<h3>2</h3>")
}

func TestImageSrc(t *testing.T) {
	assert.Equal(t, "/images/no-image.png", imageSrc(""))
	assert.Equal(t, "/images/a.png", imageSrc("images/a.png"))
	assert.Equal(t, "/images/a.png", imageSrc("/images/a.png"))
	assert.Equal(t, "https://x.org/a.png", imageSrc("https://x.org/a.png"))
}
