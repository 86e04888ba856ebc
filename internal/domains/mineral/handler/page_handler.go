package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mineral-catalog/internal/domains/mineral/model"
	"mineral-catalog/internal/shared/middleware"
)

type homePage struct {
	Title      string
	Stats      model.Stats
	Classes    int
	Categories []string
	Category   string
	Minerals   []model.Mineral
	Username   string
	LoggedIn   bool
	IsAdmin    bool
}

// Home handles GET /. ?category= narrows the cards to one value category;
// without it every mineral is shown.
func (h *MineralHandler) Home(c *gin.Context) {
	category := c.Query("category")

	page := homePage{
		Title:      "Mineral catalog",
		Stats:      h.collection.Stats(),
		Classes:    len(h.collection.Classes()),
		Categories: h.collection.ValueCategories(),
		Category:   category,
		Minerals:   h.collection.FilterByValueCategory(category),
	}
	if s := middleware.CurrentSession(c); s != nil {
		page.LoggedIn = true
		page.Username = s.Username
		page.IsAdmin = s.IsAdmin
	}

	c.HTML(http.StatusOK, "index.html", page)
}

// Detail handles GET /mineral?id=N.
func (h *MineralHandler) Detail(c *gin.Context) {
	id, err := parseID(c.Query("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid mineral id")
		return
	}

	m, ok := h.collection.GetByID(id)
	if !ok {
		c.String(http.StatusNotFound, "Mineral not found")
		return
	}

	c.HTML(http.StatusOK, "mineral.html", gin.H{
		"Mineral": m,
		"IsAdmin": middleware.IsAdmin(c),
	})
}

// StatsFragment handles GET /stats with an HTML snippet for the home page.
func (h *MineralHandler) StatsFragment(c *gin.Context) {
	c.HTML(http.StatusOK, "stats.html", gin.H{
		"Total":   h.collection.Size(),
		"Classes": len(h.collection.Classes()),
	})
}
