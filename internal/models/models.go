package models

import "time"

// Sentinel defaults substituted when a field cannot be extracted from
// the source post.
const (
	DefaultCategory = "General"
	DefaultBrand    = "NoBrand"
	DefaultTitle    = "Item"
)

// Product represents a catalog entry derived from a channel post.
// Price is stored in minor currency units (kopecks).
type Product struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Price        int64     `db:"price" json:"price"`
	PhotoFileID  *string   `db:"photo_file_id" json:"photo_file_id,omitempty"`
	Description  *string   `db:"descr" json:"descr,omitempty"`
	Category     string    `db:"category" json:"category"`
	Brand        string    `db:"brand" json:"brand"`
	Sizes        *string   `db:"sizes" json:"sizes,omitempty"`
	SourceChatID *int64    `db:"source_chat_id" json:"source_chat_id,omitempty"`
	SourceMsgID  *int64    `db:"source_msg_id" json:"source_msg_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// HasSource reports whether the product carries a full source identity.
// Only products with both halves present participate in deduplication.
func (p *Product) HasSource() bool {
	return p.SourceChatID != nil && p.SourceMsgID != nil
}

// RawPost is an unparsed post as delivered by the chat transport,
// either forwarded by a user or auto-ingested from a channel feed.
type RawPost struct {
	Text         string `json:"text"`
	PhotoFileID  string `json:"photo_file_id,omitempty"`
	SourceChatID *int64 `json:"source_chat_id,omitempty"`
	SourceMsgID  *int64 `json:"source_msg_id,omitempty"`
}

// CartLine is one row of a user's cart joined against the catalog.
// UnitPrice reflects the current catalog price until checkout freezes it.
type CartLine struct {
	ProductID int64  `db:"product_id" json:"product_id"`
	Title     string `db:"title" json:"title"`
	UnitPrice int64  `db:"price" json:"unit_price"`
	Qty       int    `db:"qty" json:"qty"`
}

// WardrobeLine is one saved wishlist item joined against the catalog.
type WardrobeLine struct {
	ProductID int64  `db:"product_id" json:"product_id"`
	Title     string `db:"title" json:"title"`
	Price     int64  `db:"price" json:"price"`
}

// Order represents a placed order with a frozen total.
type Order struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	TotalPrice int64     `db:"total_price" json:"total_price"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// OrderItem is one order line with the unit price captured at checkout.
type OrderItem struct {
	OrderID   int64 `db:"order_id" json:"order_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Qty       int   `db:"qty" json:"qty"`
	Price     int64 `db:"price" json:"price"`
}

// Order statuses. Only NEW is produced here; terminal states belong to
// the fulfilment flow outside this service.
const (
	OrderStatusNew = "NEW"
)

// ProductFilter narrows a catalog listing. Nil/empty fields are ignored;
// present fields are AND-combined.
type ProductFilter struct {
	Category  string
	Brand     string
	PriceMin  *int64
	PriceMax  *int64
	SizeQuery string
}
