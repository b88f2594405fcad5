package models

import "time"

// Event types exchanged with the chat transport over Kafka.
const (
	EventTypeChannelPost      = "CHANNEL_POST"
	EventTypeProductIngested  = "PRODUCT_INGESTED"
	EventTypeOrderCreated     = "ORDER_CREATED"
	EventTypePaymentConfirmed = "PAYMENT_CONFIRMED"
	EventTypeAdminNotify      = "ADMIN_NOTIFY"
)

// Admin notification kinds.
const (
	NotifyKindNewOrder      = "new_order"
	NotifyKindFeedback      = "feedback"
	NotifyKindChannelImport = "channel_import"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ChannelPostEvent carries one raw post from the channel feed. The same
// post may also arrive as a manual forward over HTTP; upsert idempotence
// in the catalog store deduplicates the two paths.
type ChannelPostEvent struct {
	BaseEvent
	ChatID      int64  `json:"chat_id"`
	MessageID   int64  `json:"message_id"`
	Text        string `json:"text"`
	PhotoFileID string `json:"photo_file_id,omitempty"`
}

// ProductIngestedEvent published after a post has been normalized and
// upserted into the catalog.
type ProductIngestedEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	Created   bool   `json:"created"`
	Category  string `json:"category"`
	Brand     string `json:"brand"`
	Price     int64  `json:"price"`
}

// OrderCreatedEvent published when a cart has been converted to an order.
type OrderCreatedEvent struct {
	BaseEvent
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	TotalPrice int64           `json:"total_price"`
	Items      []OrderItemData `json:"items"`
}

// PaymentConfirmedEvent consumed from the payment collaborator; the
// payer's cart is converted to an order on receipt.
type PaymentConfirmedEvent struct {
	BaseEvent
	UserID       int64  `json:"user_id"`
	Amount       int64  `json:"amount"`
	ProviderTxID string `json:"provider_tx_id,omitempty"`
}

// AdminNotifyEvent delivered to the configured administrator identity
// through the chat transport.
type AdminNotifyEvent struct {
	BaseEvent
	AdminChatID int64  `json:"admin_chat_id"`
	Kind        string `json:"kind"`
	Text        string `json:"text"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
	UnitPrice int64 `json:"unit_price"`
}
