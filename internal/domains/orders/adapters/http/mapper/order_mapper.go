package mapper

import (
	"time"

	orderdomain "github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/shop-backoffice/internal/shared/patch"
)

// Order is the HTTP representation of an order.
type Order struct {
	ID              int64       `json:"id"`
	CustomerID      *int64      `json:"customerId"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   *string     `json:"customerPhone"`
	ShippingAddress string      `json:"shippingAddress"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	EscrowStatus    string      `json:"escrowStatus"`
	TrackingNumber  *string     `json:"trackingNumber"`
	ShippingCarrier *string     `json:"shippingCarrier"`
	CreatedAt       time.Time   `json:"createdAt"`
	UserID          int64       `json:"userId"`
	Items           []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"orderId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

type OrderItemInput struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// OrderInput captures create payloads. Status labels default to pending when omitted.
type OrderInput struct {
	CustomerID      *int64           `json:"customerId"`
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerPhone   *string          `json:"customerPhone"`
	ShippingAddress string           `json:"shippingAddress"`
	Total           float64          `json:"total"`
	Status          string           `json:"status"`
	PaymentStatus   string           `json:"paymentStatus"`
	EscrowStatus    string           `json:"escrowStatus"`
	TrackingNumber  *string          `json:"trackingNumber"`
	ShippingCarrier *string          `json:"shippingCarrier"`
	Items           []OrderItemInput `json:"items"`
}

type OrderUpdate struct {
	CustomerName    *string                `json:"customerName"`
	CustomerEmail   *string                `json:"customerEmail"`
	CustomerPhone   patch.Nullable[string] `json:"customerPhone"`
	ShippingAddress *string                `json:"shippingAddress"`
	Total           *float64               `json:"total"`
	Status          *string                `json:"status"`
	PaymentStatus   *string                `json:"paymentStatus"`
	EscrowStatus    *string                `json:"escrowStatus"`
	TrackingNumber  patch.Nullable[string] `json:"trackingNumber"`
	ShippingCarrier patch.Nullable[string] `json:"shippingCarrier"`
}

// Return is the HTTP representation of a return, with its order when still present.
type Return struct {
	ID             int64     `json:"id"`
	OrderID        int64     `json:"orderId"`
	Reason         string    `json:"reason"`
	Status         string    `json:"status"`
	RefundAmount   *float64  `json:"refundAmount"`
	RequestedItems []int64   `json:"requestedItems"`
	CreatedAt      time.Time `json:"createdAt"`
	Order          *Order    `json:"order,omitempty"`
}

type ReturnInput struct {
	OrderID        int64    `json:"orderId"`
	Reason         string   `json:"reason"`
	Status         string   `json:"status"`
	RefundAmount   *float64 `json:"refundAmount"`
	RequestedItems []int64  `json:"requestedItems"`
}

type ReturnUpdate struct {
	Reason         *string                 `json:"reason"`
	Status         *string                 `json:"status"`
	RefundAmount   patch.Nullable[float64] `json:"refundAmount"`
	RequestedItems *[]int64                `json:"requestedItems"`
}

// RefundQuoteInput selects the order items to be refunded.
type RefundQuoteInput struct {
	ItemIDs []int64 `json:"itemIds"`
}

type RefundQuote struct {
	OrderID int64   `json:"orderId"`
	ItemIDs []int64 `json:"itemIds"`
	Amount  float64 `json:"amount"`
}

func ToDomainOrder(in OrderInput) (orderdomain.Order, []orderdomain.OrderItem) {
	order := orderdomain.Order{
		CustomerID:      in.CustomerID,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		ShippingAddress: in.ShippingAddress,
		Total:           in.Total,
		Status:          orderdomain.Status(in.Status),
		PaymentStatus:   orderdomain.PaymentStatus(in.PaymentStatus),
		EscrowStatus:    orderdomain.EscrowStatus(in.EscrowStatus),
		TrackingNumber:  in.TrackingNumber,
		ShippingCarrier: in.ShippingCarrier,
	}
	items := make([]orderdomain.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, ToDomainOrderItem(item))
	}
	return order, items
}

func ToDomainOrderItem(in OrderItemInput) orderdomain.OrderItem {
	return orderdomain.OrderItem{
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Total:       in.Total,
	}
}

func ToOrderPatch(in OrderUpdate) orderdomain.OrderPatch {
	out := orderdomain.OrderPatch{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		ShippingAddress: in.ShippingAddress,
		Total:           in.Total,
		TrackingNumber:  in.TrackingNumber,
		ShippingCarrier: in.ShippingCarrier,
	}
	if in.Status != nil {
		v := orderdomain.Status(*in.Status)
		out.Status = &v
	}
	if in.PaymentStatus != nil {
		v := orderdomain.PaymentStatus(*in.PaymentStatus)
		out.PaymentStatus = &v
	}
	if in.EscrowStatus != nil {
		v := orderdomain.EscrowStatus(*in.EscrowStatus)
		out.EscrowStatus = &v
	}
	return out
}

func FromDomainOrder(o *orderdomain.Order) Order {
	if o == nil {
		return Order{}
	}
	return Order{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		Total:           o.Total,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		EscrowStatus:    string(o.EscrowStatus),
		TrackingNumber:  o.TrackingNumber,
		ShippingCarrier: o.ShippingCarrier,
		CreatedAt:       o.CreatedAt,
		UserID:          o.OwnerID,
	}
}

func FromDomainOrders(orders []*orderdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}

// FromOrderDetails renders an order with its items.
func FromOrderDetails(d *orderdomain.OrderDetails) Order {
	if d == nil {
		return Order{}
	}
	out := FromDomainOrder(d.Order)
	out.Items = FromDomainOrderItems(d.Items)
	return out
}

func FromOrderDetailsList(list []*orderdomain.OrderDetails) []Order {
	out := make([]Order, 0, len(list))
	for _, d := range list {
		out = append(out, FromOrderDetails(d))
	}
	return out
}

func FromDomainOrderItem(i *orderdomain.OrderItem) OrderItem {
	if i == nil {
		return OrderItem{}
	}
	return OrderItem{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Price:       i.Price,
		Quantity:    i.Quantity,
		Total:       i.Total,
	}
}

func FromDomainOrderItems(items []*orderdomain.OrderItem) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, i := range items {
		out = append(out, FromDomainOrderItem(i))
	}
	return out
}

func ToDomainReturn(in ReturnInput) orderdomain.Return {
	return orderdomain.Return{
		OrderID:        in.OrderID,
		Reason:         in.Reason,
		Status:         orderdomain.ReturnStatus(in.Status),
		RefundAmount:   in.RefundAmount,
		RequestedItems: in.RequestedItems,
	}
}

func ToReturnPatch(in ReturnUpdate) orderdomain.ReturnPatch {
	out := orderdomain.ReturnPatch{
		Reason:         in.Reason,
		RefundAmount:   in.RefundAmount,
		RequestedItems: in.RequestedItems,
	}
	if in.Status != nil {
		v := orderdomain.ReturnStatus(*in.Status)
		out.Status = &v
	}
	return out
}

func FromDomainReturn(r *orderdomain.Return) Return {
	if r == nil {
		return Return{}
	}
	items := r.RequestedItems
	if items == nil {
		items = []int64{}
	}
	return Return{
		ID:             r.ID,
		OrderID:        r.OrderID,
		Reason:         r.Reason,
		Status:         string(r.Status),
		RefundAmount:   r.RefundAmount,
		RequestedItems: items,
		CreatedAt:      r.CreatedAt,
	}
}

func FromReturnDetails(d *orderdomain.ReturnDetails) Return {
	if d == nil {
		return Return{}
	}
	out := FromDomainReturn(d.Return)
	if d.Order != nil {
		order := FromDomainOrder(d.Order)
		out.Order = &order
	}
	return out
}

func FromReturnDetailsList(list []*orderdomain.ReturnDetails) []Return {
	out := make([]Return, 0, len(list))
	for _, d := range list {
		out = append(out, FromReturnDetails(d))
	}
	return out
}
