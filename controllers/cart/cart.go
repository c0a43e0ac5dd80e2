package cartControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/cart"
	"github.com/masum-diu/nishaan/catalog"
	"github.com/masum-diu/nishaan/controllers"
	"github.com/masum-diu/nishaan/middleware"
	"github.com/masum-diu/nishaan/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const SessionHeader = "X-Cart-Session"

// Quantity bounds match cart.MaxLineQuantity. An omitted or zero quantity on
// add counts as 1.
type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"gte=0,lte=99"`
}

type QuantityInput struct {
	Quantity *int `json:"quantity" binding:"required,gte=0,lte=99"`
}

type cartView struct {
	Items       []cart.LineItem `json:"items"`
	ItemCount   int             `json:"item_count"`
	Zone        string          `json:"zone,omitempty"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
}

// SessionID picks the cart a request works on: the signed-in user's cart,
// else the guest id from the header or query string.
func SessionID(c *gin.Context) (string, bool) {
	if sess := middleware.SessionFrom(c); sess != nil {
		return cart.UserSession(sess.UserID), true
	}
	guest := strings.TrimSpace(c.GetHeader(SessionHeader))
	if guest == "" {
		guest = strings.TrimSpace(c.Query("guest_id"))
	}
	if guest == "" {
		return "", false
	}
	return cart.GuestSession(guest), true
}

// OpenStore resolves, locks and opens the request's cart, answering the
// client itself when there is no usable session. Callers defer release.
func OpenStore(c *gin.Context, sessions *cart.Sessions) (*cart.Store, func(), bool) {
	id, ok := SessionID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart session required (" + SessionHeader + " header or guest_id)"})
		return nil, nil, false
	}
	store, release, err := sessions.Open(c.Request.Context(), id)
	switch {
	case errors.Is(err, cart.ErrInvalidSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart session"})
		return nil, nil, false
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cart is busy, try again"})
		return nil, nil, false
	}
	return store, release, true
}

func render(c *gin.Context, status int, store *cart.Store, shipping cart.ShippingTable) {
	items := store.Items()
	zone := strings.TrimSpace(c.Query("zone"))
	if zone == "" {
		zone = string(shipping.LocalZone)
	}
	totals := cart.Compute(items, cart.Zone(zone), shipping)
	c.JSON(status, cartView{
		Items:       items,
		ItemCount:   totals.ItemCount,
		Zone:        zone,
		Subtotal:    totals.Subtotal,
		ShippingFee: totals.ShippingFee,
		Total:       totals.Total,
	})
}

// GET /cart
func GetCart(sessions *cart.Sessions, shipping cart.ShippingTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, release, ok := OpenStore(c, sessions)
		if !ok {
			return
		}
		defer release()
		render(c, http.StatusOK, store, shipping)
	}
}

// POST /cart/items
func AddCartItem(sessions *cart.Sessions, products repository.ProductRepository, shipping cart.ShippingTable, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		store, release, ok := OpenStore(c, sessions)
		if !ok {
			return
		}
		defer release()

		product, err := products.GetByID(c.Request.Context(), input.ProductID)
		if err != nil {
			if repository.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
				return
			}
			controllers.RespondError(c, logger, err, "Failed to validate product")
			return
		}

		idx := -1
		for i := range product.Variants {
			if product.Variants[i].ID == input.VariantID {
				idx = i
				break
			}
		}
		if idx < 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant does not exist"})
			return
		}
		variant := product.Variants[idx]
		if !variant.Available() {
			c.JSON(http.StatusConflict, gin.H{"error": "Variant is out of stock"})
			return
		}

		image := catalog.Summarize(product.Variants).MainImage
		if len(variant.Images) > 0 {
			image = variant.Images[0].URL
		}
		if err := store.Add(c.Request.Context(), cart.Snapshot(*product, variant, image), input.Quantity); err != nil {
			controllers.RespondError(c, logger, err, "Failed to save cart")
			return
		}
		render(c, http.StatusOK, store, shipping)
	}
}

func lineKey(c *gin.Context) (cart.Key, bool) {
	productID, ok := controllers.ParseID(c, "product_id")
	if !ok {
		return cart.Key{}, false
	}
	variantID, ok := controllers.ParseID(c, "variant_id")
	if !ok {
		return cart.Key{}, false
	}
	return cart.Key{ProductID: productID, VariantID: variantID}, true
}

// PUT /cart/items/:product_id/:variant_id
func UpdateCartItem(sessions *cart.Sessions, shipping cart.ShippingTable, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := lineKey(c)
		if !ok {
			return
		}
		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		store, release, ok := OpenStore(c, sessions)
		if !ok {
			return
		}
		defer release()
		if err := store.UpdateQuantity(c.Request.Context(), key, *input.Quantity); err != nil {
			controllers.RespondError(c, logger, err, "Failed to save cart")
			return
		}
		render(c, http.StatusOK, store, shipping)
	}
}

// DELETE /cart/items/:product_id/:variant_id
func DeleteCartItem(sessions *cart.Sessions, shipping cart.ShippingTable, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := lineKey(c)
		if !ok {
			return
		}
		store, release, ok := OpenStore(c, sessions)
		if !ok {
			return
		}
		defer release()
		if err := store.Remove(c.Request.Context(), key); err != nil {
			controllers.RespondError(c, logger, err, "Failed to save cart")
			return
		}
		render(c, http.StatusOK, store, shipping)
	}
}

// DELETE /cart
func ClearCart(sessions *cart.Sessions, shipping cart.ShippingTable, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, release, ok := OpenStore(c, sessions)
		if !ok {
			return
		}
		defer release()
		if err := store.Clear(c.Request.Context()); err != nil {
			controllers.RespondError(c, logger, err, "Failed to save cart")
			return
		}
		render(c, http.StatusOK, store, shipping)
	}
}
