package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mineral-catalog/internal/domains/mineral/delimited"
	"mineral-catalog/internal/domains/mineral/model"
	"mineral-catalog/internal/shared/response"
	"mineral-catalog/pkg/logger"
)

// ========================================
// COLLECTION ADMIN
// ========================================

// Import handles POST /admin/import with a multipart "file" in the
// delimited format. Parsed minerals are appended with fresh ids.
func (h *MineralHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing upload field \"file\"")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "Cannot open uploaded file")
		return
	}
	defer f.Close()

	result, err := delimited.Read(f)
	if err != nil {
		response.ErrorStatus(c, http.StatusBadRequest, "Cannot read uploaded file", err.Error())
		return
	}

	added := h.collection.AddAll(result.Minerals)
	ids := make([]int, 0, len(added))
	for _, m := range added {
		ids = append(ids, m.ID)
	}

	logger.Info("Delimited file imported", map[string]interface{}{
		"file":     fh.Filename,
		"rows":     result.Rows,
		"imported": len(added),
		"skipped":  result.Skipped,
	})
	h.persist(c.Request.Context())

	response.Success(c, http.StatusOK, "Import finished", model.ImportSummary{
		TotalRows:    result.Rows,
		ImportedRows: len(added),
		SkippedRows:  result.Skipped,
		Errors:       result.Errors,
		CreatedIDs:   ids,
	})
}

// Clear handles POST /admin/clear. With ?storage=true the database is
// reset as well; otherwise storage follows only under PersistOnChange.
func (h *MineralHandler) Clear(c *gin.Context) {
	resetStorage, _ := strconv.ParseBool(c.Query("storage"))
	if resetStorage {
		if h.repo == nil {
			h.handleError(c, model.ErrStorageUnavailable)
			return
		}
		if err := h.repo.Reset(c.Request.Context()); err != nil {
			h.handleError(c, model.NewStorageError("reset", err))
			return
		}
	}

	h.collection.Clear()
	if !resetStorage {
		h.persist(c.Request.Context())
	}
	logger.Info("Collection cleared", map[string]interface{}{"storage": resetStorage})

	response.Success(c, http.StatusOK, "Collection cleared", gin.H{"size": 0})
}

// UploadImage handles POST /admin/images with a multipart "image" and the
// mineral "name" the file is named after. The returned reference goes into
// the imageUrl field of the add form.
func (h *MineralHandler) UploadImage(c *gin.Context) {
	if h.opts.Images == nil {
		response.ErrorStatus(c, http.StatusServiceUnavailable, "Image uploads are disabled", nil)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		response.BadRequest(c, "Missing form field \"name\"")
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Missing upload field \"image\"")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "Cannot open uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.BadRequest(c, "Cannot read uploaded file")
		return
	}

	ref, err := h.opts.Images.Save(name, data)
	if err != nil {
		response.ErrorStatus(c, http.StatusBadRequest, "Image rejected", err.Error())
		return
	}

	logger.Info("Image uploaded", map[string]interface{}{"name": name, "ref": ref})
	response.Success(c, http.StatusCreated, "Image stored", gin.H{"imageUrl": ref})
}

// ========================================
// STORAGE ADMIN (503 without a database)
// ========================================

// Save handles POST /admin/save: the collection replaces the stored state.
func (h *MineralHandler) Save(c *gin.Context) {
	if !h.requireStorage(c) {
		return
	}

	all := h.collection.All()
	if err := h.repo.SaveAll(c.Request.Context(), all); err != nil {
		h.handleError(c, model.NewStorageError("save", err))
		return
	}

	response.Success(c, http.StatusOK, "Collection saved", gin.H{"saved": len(all)})
}

// Reload handles POST /admin/reload: the collection is replaced by the
// stored state and receives fresh ids.
func (h *MineralHandler) Reload(c *gin.Context) {
	if !h.requireStorage(c) {
		return
	}

	loaded, err := h.repo.LoadAll(c.Request.Context())
	if err != nil {
		h.handleError(c, model.NewStorageError("load", err))
		return
	}

	h.collection.Clear()
	h.collection.AddAll(loaded)

	response.Success(c, http.StatusOK, "Collection reloaded", gin.H{"loaded": len(loaded)})
}

// StorageStats handles GET /admin/storage/stats.
func (h *MineralHandler) StorageStats(c *gin.Context) {
	if !h.requireStorage(c) {
		return
	}

	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, model.NewStorageError("stats", err))
		return
	}

	response.Success(c, http.StatusOK, "", stats)
}

// StorageLocalities handles GET /admin/storage/localities.
func (h *MineralHandler) StorageLocalities(c *gin.Context) {
	if !h.requireStorage(c) {
		return
	}

	names, err := h.repo.Localities(c.Request.Context())
	if err != nil {
		h.handleError(c, model.NewStorageError("localities", err))
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, names, &response.Meta{Total: len(names)})
}

// DeleteStored handles DELETE /admin/storage/minerals/:id. The id is the
// stored row id, not the collection id.
func (h *MineralHandler) DeleteStored(c *gin.Context) {
	if !h.requireStorage(c) {
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	deleted, err := h.repo.DeleteOne(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, model.NewStorageError("delete", err))
		return
	}
	if !deleted {
		h.handleError(c, model.ErrMineralNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Stored mineral deleted", gin.H{"id": id})
}

func (h *MineralHandler) requireStorage(c *gin.Context) bool {
	if h.repo == nil {
		h.handleError(c, model.ErrStorageUnavailable)
		return false
	}
	return true
}
