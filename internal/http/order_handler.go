package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Konaisya/build-service/internal/http/middleware"
	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/repository"
	"github.com/Konaisya/build-service/internal/service"
)

type createOrderRequest struct {
	ContractPrice float64             `json:"contract_price"`
	IDHouse       int64               `json:"id_house"`
	House         *createHouseRequest `json:"house"`
}

type updateOrderRequest struct {
	Status        *string  `json:"status"`
	ContractPrice *float64 `json:"contract_price"`
}

// createOrder takes the customer from the access token, never from the body.
func (h *Handler) createOrder(c *gin.Context) {
	claims, ok := middleware.MustClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.House == nil && req.IDHouse <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either house or id_house is required"})
		return
	}

	input := service.CreateOrderInput{
		IDUser:        userID,
		ContractPrice: req.ContractPrice,
		IDHouse:       req.IDHouse,
	}
	if req.House != nil {
		houseInput, err := req.House.toInput()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.House = &houseInput
	}

	order, err := h.orders.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func orderFilter(c *gin.Context) (repository.Fields, bool) {
	filter := repository.Fields{}
	if value := c.Query("status"); value != "" {
		filter["status"] = value
	}
	for _, key := range []string{"id_user", "id_house"} {
		if value := c.Query(key); value != "" {
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
				return nil, false
			}
			filter[key] = parsed
		}
	}
	return filter, true
}

func (h *Handler) listOrders(c *gin.Context) {
	filter, ok := orderFilter(c)
	if !ok {
		return
	}
	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// listMyOrders scopes the listing to the token subject.
func (h *Handler) listMyOrders(c *gin.Context) {
	claims, ok := middleware.MustClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	orders, err := h.orders.List(c.Request.Context(), repository.Fields{"id_user": userID})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) updateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input := service.UpdateOrderInput{ContractPrice: req.ContractPrice}
	if req.Status != nil {
		status := model.OrderStatus(*req.Status)
		input.Status = &status
	}
	order, err := h.orders.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) orderContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	doc, err := h.orders.Contract(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

func (h *Handler) exportOrders(c *gin.Context) {
	filter, ok := orderFilter(c)
	if !ok {
		return
	}
	doc, err := h.orders.Export(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", doc.Content)
}
