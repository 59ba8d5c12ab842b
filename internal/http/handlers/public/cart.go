package public

import (
	"errors"
	"strconv"

	"github.com/erco-market/internal/http/response"
	"github.com/erco-market/internal/service"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 加入购物车请求
type CartAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// CartQuantityRequest 设定数量请求，0 表示移除
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车汇总
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	summary, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, summary)
}

// AddCartItem 加入购物车，已有时数量累加
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if err := h.CartService.AddItem(uid, req.ProductID, quantity); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCartSummary(c, uid)
}

// UpdateCartItem 设定购物车项数量，归零移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseCartProductID(c)
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.SetQuantity(uid, productID, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCartSummary(c, uid)
}

// DeleteCartItem 移除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseCartProductID(c)
	if !ok {
		return
	}

	if err := h.CartService.RemoveItem(uid, productID); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCartSummary(c, uid)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
		return
	}
	h.respondCartSummary(c, uid)
}

// respondCartSummary 购物车写操作统一回传最新汇总
func (h *Handler) respondCartSummary(c *gin.Context, userID uint) {
	summary, err := h.CartService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, summary)
}

func parseCartProductID(c *gin.Context) (uint, bool) {
	raw := c.Param("product_id")
	productID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(productID), true
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCartQuantityInvalid):
		respondError(c, response.CodeBadRequest, "error.cart_quantity_invalid", nil)
	case errors.Is(err, service.ErrProductNotAvailable):
		respondError(c, response.CodeBadRequest, "error.product_not_available", nil)
	default:
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
	}
}
