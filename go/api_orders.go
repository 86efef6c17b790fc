package backofficeserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/http/mapper"
	orderdomain "github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	orderports "github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
)

// IdempotencyKeyHeader lets clients retry POST /api/orders without placing the order twice.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI serves orders and their items. Placement goes through the workflow orchestrator
// when one is configured.
type OrderAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
	owner     int64
}

func NewOrderAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator, owner int64) OrderAPI {
	return OrderAPI{service: service, workflows: workflows, owner: owner}
}

// Get /api/orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context(), api.owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /api/orders/recent
// A missing or invalid limit falls back to the service default.
func (api *OrderAPI) RecentOrders(c *gin.Context) {
	// Parse errors leave limit at 0, which the service reads as "use the default".
	limit, _ := strconv.Atoi(c.Query("limit"))
	orders, err := api.service.RecentOrders(c.Request.Context(), api.owner, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromOrderDetailsList(orders))
}

// Get /api/orders/:id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	details, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromOrderDetails(details))
}

// Post /api/orders
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordermapper.OrderInput
	if !bindJSON(c, &payload) {
		return
	}
	order, items := ordermapper.ToDomainOrder(payload)
	input := orderports.PlaceOrderInput{
		OwnerID:        api.owner,
		Order:          order,
		Items:          items,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	}
	placed, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromOrderDetails(placed))
}

func (api *OrderAPI) placeOrder(ctx context.Context, input orderports.PlaceOrderInput) (*orderdomain.OrderDetails, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Patch /api/orders/:id
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload ordermapper.OrderUpdate
	if !bindJSON(c, &payload) {
		return
	}
	updated, err := api.service.UpdateOrder(c.Request.Context(), id, ordermapper.ToOrderPatch(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(updated))
}

// Get /api/orders/:id/items
func (api *OrderAPI) ListOrderItems(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	items, err := api.service.ListOrderItems(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrderItems(items))
}

// Post /api/orders/:id/items
func (api *OrderAPI) AddOrderItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload ordermapper.OrderItemInput
	if !bindJSON(c, &payload) {
		return
	}
	item, err := api.service.AddOrderItem(c.Request.Context(), id, ordermapper.ToDomainOrderItem(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrderItem(item))
}

// Post /api/orders/:id/refund-quote
func (api *OrderAPI) QuoteRefund(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload ordermapper.RefundQuoteInput
	if !bindJSON(c, &payload) {
		return
	}
	amount, err := api.service.QuoteRefund(c.Request.Context(), id, payload.ItemIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	itemIDs := payload.ItemIDs
	if itemIDs == nil {
		itemIDs = []int64{}
	}
	c.JSON(http.StatusOK, ordermapper.RefundQuote{OrderID: id, ItemIDs: itemIDs, Amount: amount})
}

// Get /api/returns
func (api *OrderAPI) ListReturns(c *gin.Context) {
	returns, err := api.service.ListReturns(c.Request.Context(), api.owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromReturnDetailsList(returns))
}

// Get /api/returns/:id
func (api *OrderAPI) GetReturn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	details, err := api.service.GetReturn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromReturnDetails(details))
}

// Post /api/returns
func (api *OrderAPI) CreateReturn(c *gin.Context) {
	var payload ordermapper.ReturnInput
	if !bindJSON(c, &payload) {
		return
	}
	created, err := api.service.CreateReturn(c.Request.Context(), ordermapper.ToDomainReturn(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromReturnDetails(created))
}

// Patch /api/returns/:id
func (api *OrderAPI) UpdateReturn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload ordermapper.ReturnUpdate
	if !bindJSON(c, &payload) {
		return
	}
	updated, err := api.service.UpdateReturn(c.Request.Context(), id, ordermapper.ToReturnPatch(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainReturn(updated))
}
