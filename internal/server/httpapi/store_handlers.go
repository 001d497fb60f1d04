package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/labstack/echo/v4"
)

type productResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	CreatedAt   time.Time `json:"createdAt"`
}

type cartResponse struct {
	Message string            `json:"message,omitempty"`
	Cart    []models.CartItem `json:"cart"`
}

func (s *HTTPServer) handleListProducts(c echo.Context) error {
	list, err := s.products.List(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}

	result := make([]productResponse, 0, len(list))
	for _, p := range list {
		result = append(result, productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			PriceCents:  p.PriceCents,
			CreatedAt:   p.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, result)
}

func (s *HTTPServer) handleAddCartItem(c echo.Context) error {
	userID, ok := UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "access denied, no token provided"})
	}

	productID, err := strconv.ParseInt(c.QueryParam("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid productId"})
	}

	quantity := int64(1)
	if raw := c.QueryParam("quantity"); raw != "" {
		quantity, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid quantity"})
		}
	}

	cart, err := s.carts.AddItem(c.Request().Context(), userID, productID, quantity)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, cartResponse{Message: "product added to cart", Cart: cart})
}

func (s *HTTPServer) handleGetCart(c echo.Context) error {
	userID, ok := UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "access denied, no token provided"})
	}

	cart, err := s.carts.Items(c.Request().Context(), userID)
	if err != nil {
		return s.writeError(c, err)
	}

	if len(cart) == 0 {
		return c.JSON(http.StatusOK, cartResponse{Message: "your cart is empty", Cart: []models.CartItem{}})
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: cart})
}

func (s *HTTPServer) handleRemoveCartItem(c echo.Context) error {
	userID, ok := UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "access denied, no token provided"})
	}

	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid productId"})
	}

	cart, err := s.carts.RemoveItem(c.Request().Context(), userID, productID)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, cartResponse{Message: "product removed from cart", Cart: cart})
}
