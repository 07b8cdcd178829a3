package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Konaisya/build-service/internal/repository"
	"github.com/Konaisya/build-service/internal/service"
)

type createApartmentRequest struct {
	Name        string        `json:"name" binding:"required"`
	Description string        `json:"description"`
	IDCategory  int64         `json:"id_category" binding:"required"`
	IDHouse     int64         `json:"id_house" binding:"required"`
	Rooms       int           `json:"rooms"`
	Area        float64       `json:"area"`
	Count       int           `json:"count"`
	Parameters  []linkRequest `json:"parameters"`
}

type updateApartmentRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	IDCategory  *int64        `json:"id_category"`
	IDHouse     *int64        `json:"id_house"`
	Rooms       *int          `json:"rooms"`
	Area        *float64      `json:"area"`
	Count       *int          `json:"count"`
	Parameters  []linkRequest `json:"parameters"`
}

func (h *Handler) createApartment(c *gin.Context) {
	var req createApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	apartment, err := h.apartments.Create(c.Request.Context(), service.CreateApartmentInput{
		Name:        req.Name,
		Description: req.Description,
		IDCategory:  req.IDCategory,
		IDHouse:     req.IDHouse,
		Rooms:       req.Rooms,
		Area:        req.Area,
		Count:       req.Count,
		Parameters:  toLinkValues(req.Parameters),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apartment)
}

func (h *Handler) listApartments(c *gin.Context) {
	filter := repository.Fields{}
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		filter["name"] = name
	}
	for _, key := range []string{"id_category", "id_house", "rooms", "count"} {
		if value := c.Query(key); value != "" {
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
				return
			}
			filter[key] = parsed
		}
	}

	input := service.ListApartmentsInput{Filter: filter}
	if value := c.Query("id_parameter"); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id_parameter"})
			return
		}
		input.ParameterID = parsed
		input.ParameterValue = c.Query("parameter_value")
	}

	apartments, err := h.apartments.List(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, apartments)
}

func (h *Handler) getApartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	apartment, err := h.apartments.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, apartment)
}

func (h *Handler) updateApartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	apartment, err := h.apartments.Update(c.Request.Context(), id, service.UpdateApartmentInput{
		Name:        req.Name,
		Description: req.Description,
		IDCategory:  req.IDCategory,
		IDHouse:     req.IDHouse,
		Rooms:       req.Rooms,
		Area:        req.Area,
		Count:       req.Count,
		Parameters:  toLinkValues(req.Parameters),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, apartment)
}

func (h *Handler) deleteApartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.apartments.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) addApartmentImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uploads := make([]service.ImageUpload, 0, len(form.File["images"]))
	for _, file := range form.File["images"] {
		upload, err := readUpload(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		uploads = append(uploads, upload)
	}
	images, err := h.apartments.AddImages(c.Request.Context(), id, uploads)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, images)
}

func (h *Handler) deleteApartmentImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req deleteImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.apartments.DeleteImages(c.Request.Context(), id, req.IDs); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Category lookup endpoints.

func (h *Handler) listCategories(c *gin.Context) {
	filter := repository.Fields{}
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		filter["name"] = name
	}
	categories, err := h.apartments.Categories(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) getCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.apartments.Category(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) createCategory(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.apartments.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) updateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.apartments.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.apartments.DeleteCategory(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Parameter lookup endpoints.

func (h *Handler) listParameters(c *gin.Context) {
	filter := repository.Fields{}
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		filter["name"] = name
	}
	parameters, err := h.apartments.Parameters(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, parameters)
}

func (h *Handler) getParameter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	parameter, err := h.apartments.Parameter(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, parameter)
}

func (h *Handler) createParameter(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	parameter, err := h.apartments.CreateParameter(c.Request.Context(), req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, parameter)
}

func (h *Handler) updateParameter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	parameter, err := h.apartments.UpdateParameter(c.Request.Context(), id, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, parameter)
}

func (h *Handler) deleteParameter(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.apartments.DeleteParameter(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
