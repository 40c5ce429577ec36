package domain

import "time"

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Balance      float64   `db:"balance"`
	Points       int       `db:"points"`
	ReferrerID   *int      `db:"referrer_id"`
	CreatedAt    time.Time `db:"created_at"`
}

type Product struct {
	ID       int     `db:"id"`
	Name     string  `db:"name"`
	Image    string  `db:"image"`
	Price    float64 `db:"price"`
	Stock    int     `db:"stock"`
	Sales    int     `db:"sales"`
	Sellable bool    `db:"sellable"`
}

type ProductSKU struct {
	ID         int     `db:"id"`
	ProductID  int     `db:"product_id"`
	SpecValues string  `db:"spec_values"`
	Price      float64 `db:"price"`
	Stock      int     `db:"stock"`
}

type CartItem struct {
	ID        int  `db:"id"`
	UserID    int  `db:"user_id"`
	ProductID int  `db:"product_id"`
	SKUID     *int `db:"sku_id"`
	Quantity  int  `db:"quantity"`
	Selected  bool `db:"selected"`
}

// Coupon is a discount voucher issued to a single user. The discount an
// order gets always comes from this row, never from client input.
type Coupon struct {
	ID        int        `db:"id"`
	UserID    int        `db:"user_id"`
	Title     string     `db:"title"`
	Discount  float64    `db:"discount"`
	MinAmount float64    `db:"min_amount"`
	Status    string     `db:"status"`
	ExpiresAt *time.Time `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// Address is the shipping address snapshot frozen into the order at creation
// time. Later changes to the user's address book do not touch it.
type Address struct {
	ReceiverName    string `db:"receiver_name"`
	ReceiverPhone   string `db:"receiver_phone"`
	ReceiverAddress string `db:"receiver_address"`
}

type Order struct {
	ID             int        `db:"id"`
	OrderNo        string     `db:"order_no"`
	UserID         int        `db:"user_id"`
	Status         string     `db:"status"`
	TotalAmount    float64    `db:"total_amount"`
	PayAmount      float64    `db:"pay_amount"`
	DiscountAmount float64    `db:"discount_amount"`
	PointsUsed     int        `db:"points_used"`
	BalanceUsed    float64    `db:"balance_used"`
	CouponID       *int       `db:"coupon_id"`
	Address        Address    `db:""`
	Remark         string     `db:"remark"`
	CreatedAt      time.Time  `db:"created_at"`
	PaidAt         *time.Time `db:"paid_at"`
	ShippedAt      *time.Time `db:"shipped_at"`
	CompletedAt    *time.Time `db:"completed_at"`
}

// OrderItem is an immutable snapshot of the product at order time; the price
// stays frozen even if the catalog price changes later.
type OrderItem struct {
	ID         int     `db:"id"`
	OrderID    int     `db:"order_id"`
	ProductID  int     `db:"product_id"`
	SKUID      *int    `db:"sku_id"`
	Name       string  `db:"name"`
	Image      string  `db:"image"`
	SpecValues string  `db:"spec_values"`
	Price      float64 `db:"price"`
	Quantity   int     `db:"quantity"`
}

type Logistics struct {
	ID         int       `db:"id"`
	OrderID    int       `db:"order_id"`
	Company    string    `db:"company"`
	TrackingNo string    `db:"tracking_no"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

type Payment struct {
	ID            int        `db:"id"`
	PaymentNo     string     `db:"payment_no"`
	OrderID       int        `db:"order_id"`
	UserID        int        `db:"user_id"`
	Amount        float64    `db:"amount"`
	Method        string     `db:"method"`
	Status        string     `db:"status"`
	TransactionID string     `db:"transaction_id"`
	PaidAt        *time.Time `db:"paid_at"`
	CreatedAt     time.Time  `db:"created_at"`
}

type Refund struct {
	ID            int        `db:"id"`
	RefundNo      string     `db:"refund_no"`
	PaymentID     int        `db:"payment_id"`
	OrderID       int        `db:"order_id"`
	UserID        int        `db:"user_id"`
	Amount        float64    `db:"amount"`
	Reason        string     `db:"reason"`
	Status        string     `db:"status"`
	TransactionID string     `db:"transaction_id"`
	RefundedAt    *time.Time `db:"refunded_at"`
	CreatedAt     time.Time  `db:"created_at"`
}

type Commission struct {
	ID          int        `db:"id"`
	UserID      int        `db:"user_id"`
	OrderID     int        `db:"order_id"`
	OrderNo     string     `db:"order_no"`
	ProductID   int        `db:"product_id"`
	ProductName string     `db:"product_name"`
	OrderAmount float64    `db:"order_amount"`
	Rate        float64    `db:"rate"`
	Amount      float64    `db:"amount"`
	Status      string     `db:"status"`
	SettledAt   *time.Time `db:"settled_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

type Withdrawal struct {
	ID           int        `db:"id"`
	UserID       int        `db:"user_id"`
	Amount       float64    `db:"amount"`
	Status       string     `db:"status"`
	RejectReason string     `db:"reject_reason"`
	ProcessedAt  *time.Time `db:"processed_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

// BalanceRecord is the immutable ledger row paired with every balance
// mutation: the delta and the running balance right after it was applied.
type BalanceRecord struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Amount    float64   `db:"amount"`
	Balance   float64   `db:"balance"`
	Type      string    `db:"record_type"`
	Remark    string    `db:"remark"`
	CreatedAt time.Time `db:"created_at"`
}

type PointsRecord struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Points    int       `db:"points"`
	Balance   int       `db:"balance"`
	Type      string    `db:"record_type"`
	Remark    string    `db:"remark"`
	CreatedAt time.Time `db:"created_at"`
}
