package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mineral-catalog/internal/domains/mineral/model"
	"mineral-catalog/internal/domains/mineral/repository"
	"mineral-catalog/internal/domains/mineral/service"
	"mineral-catalog/internal/shared/response"
	"mineral-catalog/pkg/logger"
)

// Options tunes handler behavior from config.
type Options struct {
	// PersistOnChange saves the whole collection after every mutation.
	PersistOnChange bool
	MaxUploadBytes  int64
	// Images stores uploaded pictures; nil disables POST /admin/images.
	Images ImageSaver
}

// ImageSaver stores an uploaded picture and returns its image reference.
type ImageSaver interface {
	Save(name string, data []byte) (string, error)
}

// MineralHandler serves the catalog pages, the JSON API and the admin
// endpoints. repo is nil when no database is attached.
type MineralHandler struct {
	collection service.CollectionService
	exporter   service.ExportService
	repo       repository.Repository
	opts       Options
}

func NewMineralHandler(
	collection service.CollectionService,
	exporter service.ExportService,
	repo repository.Repository,
	opts Options,
) *MineralHandler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return &MineralHandler{
		collection: collection,
		exporter:   exporter,
		repo:       repo,
		opts:       opts,
	}
}

// ========================================
// JSON API
// ========================================

// List handles GET /minerals and GET /api/minerals.
func (h *MineralHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, model.MineralsToResp(h.collection.All()))
}

// Get handles GET /api/minerals/:id with the full record.
func (h *MineralHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	m, ok := h.collection.GetByID(id)
	if !ok {
		h.handleError(c, model.ErrMineralNotFound)
		return
	}

	response.Success(c, http.StatusOK, "", m)
}

// Search handles GET /search?type=name|all&query=.
func (h *MineralHandler) Search(c *gin.Context) {
	query := c.Query("query")

	var results []model.Mineral
	switch c.Query("type") {
	case "name":
		results = h.collection.SearchByName(query)
	case "all":
		results = h.collection.SearchAllFields(query)
	}

	c.JSON(http.StatusOK, model.MineralsToResp(results))
}

// Filter handles GET /filter?type=class|color|location|valueCategory&query=.
// A blank query or an unknown type yields an empty array.
func (h *MineralHandler) Filter(c *gin.Context) {
	query := c.Query("query")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusOK, []model.MineralResp{})
		return
	}

	var results []model.Mineral
	switch c.Query("type") {
	case "class":
		results = h.collection.FilterByClass(query)
	case "color":
		results = h.collection.FilterByColor(query)
	case "location":
		results = h.collection.FilterByLocation(query)
	case "valueCategory":
		results = h.collection.FilterByValueCategory(query)
	}

	c.JSON(http.StatusOK, model.MineralsToResp(results))
}

// Sort handles GET /sort?field=name|hardness. Any other field returns the
// collection in insertion order.
func (h *MineralHandler) Sort(c *gin.Context) {
	var results []model.Mineral
	switch c.Query("field") {
	case "name":
		results = h.collection.SortByName()
	case "hardness":
		results = h.collection.SortByHardness()
	default:
		results = h.collection.All()
	}

	c.JSON(http.StatusOK, model.MineralsToResp(results))
}

// StatsJSON handles GET /api/stats.
func (h *MineralHandler) StatsJSON(c *gin.Context) {
	response.Success(c, http.StatusOK, "", h.collection.Stats())
}

// ========================================
// MUTATIONS (admin)
// ========================================

// Add handles POST /add (form).
func (h *MineralHandler) Add(c *gin.Context) {
	var req model.CreateMineralReq
	if err := c.ShouldBind(&req); err != nil {
		h.handleError(c, model.NewInvalidMineral(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrInvalidMineral.Code, model.ErrInvalidMineral.Message, err)
		return
	}

	m := h.collection.Add(req.ToFields())
	logger.Info("Mineral added", map[string]interface{}{
		"id":   m.ID,
		"name": m.Name,
	})
	h.persist(c.Request.Context())

	c.String(http.StatusOK, "Mineral added")
}

// Delete handles POST /delete?id=N.
func (h *MineralHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Query("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if !h.collection.RemoveByID(id) {
		h.handleError(c, model.ErrMineralNotFound)
		return
	}

	logger.Info("Mineral removed", map[string]interface{}{"id": id})
	h.persist(c.Request.Context())

	c.String(http.StatusOK, "Mineral removed")
}

// persist mirrors the collection into storage when PersistOnChange is on.
// SaveAll ignores an empty list, so an emptied collection resets storage
// instead. Failures are logged; the in-memory change stands.
func (h *MineralHandler) persist(ctx context.Context) {
	if !h.opts.PersistOnChange || h.repo == nil {
		return
	}

	all := h.collection.All()
	if len(all) == 0 {
		if err := h.repo.Reset(ctx); err != nil {
			logger.Error("Persist on change failed", err)
		}
		return
	}

	if err := h.repo.SaveAll(ctx, all); err != nil {
		logger.Error("Persist on change failed", err)
	}
}

// ========================================
// HELPERS
// ========================================

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, model.NewInvalidMineralID(raw)
	}
	return id, nil
}

func (h *MineralHandler) handleError(c *gin.Context, err error) {
	status, message, code := model.MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error("Mineral request failed", err)
	}
	response.ErrorResponse(c, status, code, message)
}
