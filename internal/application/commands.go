package application

// CheckoutCommand checks out the calling user's cart
type CheckoutCommand struct {
	UserID string
}

// AddCartItemCommand adds or replaces a cart line
type AddCartItemCommand struct {
	UserID   string
	BookID   string
	Quantity int
}

// RemoveCartItemCommand removes a cart line
type RemoveCartItemCommand struct {
	UserID string
	BookID string
}

// CreateBookCommand creates a catalog entry
type CreateBookCommand struct {
	Title  string
	Author string
	ISBN   string
	Price  float64
}

// UpdateBookCommand updates mutable catalog fields
type UpdateBookCommand struct {
	BookID string
	Title  string
	Author string
	Price  float64
}

// CreateLocationCommand registers a stock-holding location
type CreateLocationCommand struct {
	Code string
	Name string
	Type string
}

// SetLocationActiveCommand activates or deactivates a location
type SetLocationActiveCommand struct {
	LocationID string
	Active     bool
}

// CreatePurchaseRequestCommand opens a restock request. When Submit is
// true the request skips DRAFT and lands directly in the approval
// queue.
type CreatePurchaseRequestCommand struct {
	BookID        string
	WarehouseID   string
	Quantity      int
	EstimatedCost *float64
	RequestedBy   string
	Submit        bool
}

// SubmitPurchaseRequestCommand moves a draft into the approval queue
type SubmitPurchaseRequestCommand struct {
	RequestID string
	UserID    string
}

// ReviewPurchaseRequestCommand approves or rejects a pending request
type ReviewPurchaseRequestCommand struct {
	RequestID  string
	Action     string
	ReviewedBy string
	Note       string
}

// CompletePurchaseRequestCommand records physical receipt of an
// approved request and credits the warehouse
type CompletePurchaseRequestCommand struct {
	RequestID string
	UserID    string
}

// ExecuteTransferCommand moves stock between two locations
type ExecuteTransferCommand struct {
	BookID         string
	FromLocationID string
	ToLocationID   string
	Quantity       int
	Note           string
	ExecutedBy     string
}

// SetThresholdCommand sets the low-stock threshold for a counter
type SetThresholdCommand struct {
	BookID     string
	LocationID string
	Threshold  int
}
