package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
)

type normalizedPlaceOrder struct {
	OwnerID         int64            `json:"ownerId"`
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
	Items           []normalizedItem `json:"items"`
}

type normalizedItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

// FingerprintPlaceOrder builds a deterministic hash of the order payload (excluding the idempotency key).
// Callers pass the normalized order so that defaults and whitespace do not change the hash.
func FingerprintPlaceOrder(ownerID int64, order domain.Order, items []domain.OrderItem) (string, error) {
	normalized := normalizedPlaceOrder{
		OwnerID:         ownerID,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		Total:           order.Total,
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		EscrowStatus:    string(order.EscrowStatus),
		TrackingNumber:  order.TrackingNumber,
		ShippingCarrier: order.ShippingCarrier,
		Items:           make([]normalizedItem, 0, len(items)),
	}
	for _, item := range items {
		normalized.Items = append(normalized.Items, normalizedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Total:       item.Total,
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
