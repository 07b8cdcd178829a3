package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/repository"
	"github.com/Konaisya/build-service/internal/service"
)

type linkRequest struct {
	ID    int64  `json:"id" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func toLinkValues(links []linkRequest) []repository.LinkValue {
	values := make([]repository.LinkValue, 0, len(links))
	for _, link := range links {
		values = append(values, repository.LinkValue{LinkedID: link.ID, Value: link.Value})
	}
	return values
}

type createHouseRequest struct {
	Name        string        `json:"name" binding:"required"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	IsOrder     bool          `json:"is_order"`
	District    string        `json:"district"`
	Address     string        `json:"address"`
	Floors      int           `json:"floors"`
	Entrances   int           `json:"entrances"`
	BeginDate   string        `json:"begin_date"`
	EndDate     string        `json:"end_date"`
	StartPrice  *float64      `json:"start_price"`
	FinalPrice  *float64      `json:"final_price"`
	Attributes  []linkRequest `json:"attributes"`
}

func (r createHouseRequest) toInput() (service.CreateHouseInput, error) {
	beginDate, err := parseDate(r.BeginDate)
	if err != nil {
		return service.CreateHouseInput{}, err
	}
	endDate, err := parseDate(r.EndDate)
	if err != nil {
		return service.CreateHouseInput{}, err
	}
	return service.CreateHouseInput{
		Name:        r.Name,
		Description: r.Description,
		Status:      model.HouseStatus(r.Status),
		IsOrder:     r.IsOrder,
		District:    r.District,
		Address:     r.Address,
		Floors:      r.Floors,
		Entrances:   r.Entrances,
		BeginDate:   beginDate,
		EndDate:     endDate,
		StartPrice:  r.StartPrice,
		FinalPrice:  r.FinalPrice,
		Attributes:  toLinkValues(r.Attributes),
	}, nil
}

type updateHouseRequest struct {
	Name        *string       `json:"name"`
	Description *string       `json:"description"`
	Status      *string       `json:"status"`
	IsOrder     *bool         `json:"is_order"`
	District    *string       `json:"district"`
	Address     *string       `json:"address"`
	Floors      *int          `json:"floors"`
	Entrances   *int          `json:"entrances"`
	BeginDate   *string       `json:"begin_date"`
	EndDate     *string       `json:"end_date"`
	StartPrice  *float64      `json:"start_price"`
	FinalPrice  *float64      `json:"final_price"`
	Attributes  []linkRequest `json:"attributes"`
}

func (r updateHouseRequest) toInput() (service.UpdateHouseInput, error) {
	input := service.UpdateHouseInput{
		Name:        r.Name,
		Description: r.Description,
		IsOrder:     r.IsOrder,
		District:    r.District,
		Address:     r.Address,
		Floors:      r.Floors,
		Entrances:   r.Entrances,
		StartPrice:  r.StartPrice,
		FinalPrice:  r.FinalPrice,
		Attributes:  toLinkValues(r.Attributes),
	}
	if r.Status != nil {
		status := model.HouseStatus(*r.Status)
		input.Status = &status
	}
	if r.BeginDate != nil {
		beginDate, err := parseDate(*r.BeginDate)
		if err != nil {
			return service.UpdateHouseInput{}, err
		}
		input.BeginDate = beginDate
	}
	if r.EndDate != nil {
		endDate, err := parseDate(*r.EndDate)
		if err != nil {
			return service.UpdateHouseInput{}, err
		}
		input.EndDate = endDate
	}
	return input, nil
}

func (h *Handler) createHouse(c *gin.Context) {
	var req createHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	house, err := h.houses.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, house)
}

func (h *Handler) listHouses(c *gin.Context) {
	filter := repository.Fields{}
	for _, key := range []string{"name", "status", "district", "address"} {
		if value := strings.TrimSpace(c.Query(key)); value != "" {
			filter[key] = value
		}
	}
	for _, key := range []string{"floors", "entrances"} {
		if value := c.Query(key); value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
				return
			}
			filter[key] = parsed
		}
	}
	if value := c.Query("is_order"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid is_order"})
			return
		}
		filter["is_order"] = parsed
	}

	input := service.ListHousesInput{Filter: filter}
	if value := c.Query("id_attribute"); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id_attribute"})
			return
		}
		input.AttributeID = parsed
		input.AttributeValue = c.Query("attribute_value")
	}

	houses, err := h.houses.List(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, houses)
}

func (h *Handler) getHouse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	house, err := h.houses.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, house)
}

func (h *Handler) updateHouse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	house, err := h.houses.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, house)
}

func (h *Handler) deleteHouse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.houses.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) addHouseImages(c *gin.Context) {
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
	images, err := h.houses.AddImages(c.Request.Context(), id, uploads)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, images)
}

type deleteImagesRequest struct {
	IDs []int64 `json:"ids_images" binding:"required"`
}

func (h *Handler) deleteHouseImages(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req deleteImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.houses.DeleteImages(c.Request.Context(), id, req.IDs); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) replaceHouseMainImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("main_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "main_image file is required"})
		return
	}
	upload, err := readUpload(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	house, err := h.houses.ReplaceMainImage(c.Request.Context(), id, upload)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, house)
}

// Attribute lookup endpoints.

type lookupRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) listAttributes(c *gin.Context) {
	filter := repository.Fields{}
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		filter["name"] = name
	}
	attributes, err := h.houses.Attributes(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, attributes)
}

func (h *Handler) getAttribute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	attribute, err := h.houses.Attribute(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, attribute)
}

func (h *Handler) createAttribute(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	attribute, err := h.houses.CreateAttribute(c.Request.Context(), req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attribute)
}

func (h *Handler) updateAttribute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	attribute, err := h.houses.UpdateAttribute(c.Request.Context(), id, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, attribute)
}

func (h *Handler) deleteAttribute(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.houses.DeleteAttribute(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
