package rest

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/deep-coffee/internal/catalog"
	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/metrics"
	"github.com/yourusername/deep-coffee/internal/presentation"
	"github.com/yourusername/deep-coffee/internal/usecase"
)

// MenuPage GET /api/menu javobi
type MenuPage struct {
	Category   string                       `json:"category"`
	Categories []string                     `json:"categories"`
	Items      []entity.MenuItem            `json:"items"`
	Transforms []presentation.ItemTransform `json:"transforms,omitempty"`
}

type MenuHandler struct {
	menu       usecase.MenuUseCase
	itemHeight float64
	metrics    *metrics.Recorder
	log        *logrus.Logger
}

func NewMenuHandler(menu usecase.MenuUseCase, itemHeight float64, recorder *metrics.Recorder, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		menu:       menu,
		itemHeight: itemHeight,
		metrics:    recorder,
		log:        logger,
	}
}

// RegisterRoutes o'qish ochiq, yozish gate orqali
func (h *MenuHandler) RegisterRoutes(router gin.IRouter, gate gin.HandlerFunc) {
	router.GET("/categories", h.ListCategories)
	menu := router.Group("/menu")
	{
		menu.GET("", h.ListMenu)
		menu.GET("/:id", h.GetItem)
		menu.POST("", gate, h.CreateItem)
	}
}

func (h *MenuHandler) ListMenu(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	categories, err := h.menu.Categories(ctx)
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	items, err := h.menu.List(ctx, category)
	if err != nil {
		h.log.Errorf("Failed to list menu: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to list menu")
		return
	}

	page := MenuPage{Category: category, Categories: categories, Items: items}

	if raw, ok := c.GetQuery("offset"); ok {
		offset, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(offset) || math.IsInf(offset, 0) {
			ErrorResponse(c, http.StatusBadRequest, "Invalid offset")
			return
		}
		driver := presentation.NewDriver(h.itemHeight)
		driver.Scroll(offset)
		page.Transforms = driver.Transforms(len(items))
	}

	h.metrics.MenuView("http", category)
	SuccessResponse(c, http.StatusOK, "Menu retrieved", page)
}

func (h *MenuHandler) GetItem(c *gin.Context) {
	id := c.Param("id")

	item, err := h.menu.Detail(c.Request.Context(), id)
	if errors.Is(err, entity.ErrItemNotFound) {
		ErrorResponse(c, http.StatusNotFound, "Ürün bulunamadı")
		return
	}
	if err != nil {
		h.log.Errorf("Failed to get item %s: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to get item")
		return
	}

	SuccessResponse(c, http.StatusOK, "Item retrieved", item)
}

func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.menu.Categories(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	// "Tümü" birinchi chip, qiymati bo'sh
	SuccessResponse(c, http.StatusOK, "Categories retrieved", gin.H{
		"all":        catalog.AllCategories,
		"categories": categories,
	})
}

func (h *MenuHandler) CreateItem(c *gin.Context) {
	var candidate entity.CandidateItem
	if err := c.ShouldBindJSON(&candidate); err != nil {
		h.log.Warnf("Failed to bind JSON for create item: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.menu.Submit(c.Request.Context(), candidate)
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationResponse(c, http.StatusUnprocessableEntity, verr.Result.Errors)
		return
	case err != nil:
		h.log.Errorf("Failed to create item: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to create item")
		return
	}

	h.log.Infof("Menu item %s created", item.ID)
	SuccessResponse(c, http.StatusCreated, "Item created", item)
}
