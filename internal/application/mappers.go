package application

import "github.com/bookstore-platform/fulfillment-service/internal/domain"

// ToBookDTO converts a domain Book to BookDTO
func ToBookDTO(book *domain.Book) *BookDTO {
	if book == nil {
		return nil
	}
	return &BookDTO{
		BookID:    book.BookID,
		Title:     book.Title,
		Author:    book.Author,
		ISBN:      book.ISBN,
		Price:     book.Price,
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}

// ToLocationDTO converts a domain Location to LocationDTO
func ToLocationDTO(location *domain.Location) *LocationDTO {
	if location == nil {
		return nil
	}
	return &LocationDTO{
		LocationID: location.LocationID,
		Code:       location.Code,
		Name:       location.Name,
		Type:       string(location.Type),
		IsActive:   location.IsActive,
		CreatedAt:  location.CreatedAt,
		UpdatedAt:  location.UpdatedAt,
	}
}

// ToCartDTO converts a domain Cart to CartDTO
func ToCartDTO(cart *domain.Cart) *CartDTO {
	if cart == nil {
		return nil
	}
	items := make([]CartItemDTO, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemDTO{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return &CartDTO{
		UserID: cart.UserID,
		Items:  items,
	}
}

// ToOrderDTO converts a domain Order to OrderDTO
func ToOrderDTO(order *domain.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			BookID:    item.BookID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		})
	}
	return &OrderDTO{
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		Items:       items,
		Total:       order.Total,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		CompletedAt: order.CompletedAt,
	}
}

// ToPurchaseRequestDTO converts a domain PurchaseRequest to its DTO
func ToPurchaseRequestDTO(request *domain.PurchaseRequest) *PurchaseRequestDTO {
	if request == nil {
		return nil
	}
	return &PurchaseRequestDTO{
		RequestID:     request.RequestID,
		BookID:        request.BookID,
		WarehouseID:   request.WarehouseID,
		Quantity:      request.Quantity,
		EstimatedCost: request.EstimatedCost,
		Status:        string(request.Status),
		RequestedBy:   request.RequestedBy,
		ReviewedBy:    request.ReviewedBy,
		ReviewNote:    request.ReviewNote,
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
		CompletedAt:   request.CompletedAt,
	}
}

// ToTransferDTO converts a domain Transfer to TransferDTO
func ToTransferDTO(transfer *domain.Transfer) *TransferDTO {
	if transfer == nil {
		return nil
	}
	return &TransferDTO{
		TransferID:     transfer.TransferID,
		BookID:         transfer.BookID,
		FromLocationID: transfer.FromLocationID,
		ToLocationID:   transfer.ToLocationID,
		Quantity:       transfer.Quantity,
		Note:           transfer.Note,
		ExecutedBy:     transfer.ExecutedBy,
		CreatedAt:      transfer.CreatedAt,
	}
}

// ToStockLevelDTO converts a domain StockLevel to StockLevelDTO
func ToStockLevelDTO(level *domain.StockLevel) *StockLevelDTO {
	if level == nil {
		return nil
	}
	return &StockLevelDTO{
		BookID:            level.BookID,
		LocationID:        level.LocationID,
		Stock:             level.Stock,
		LowStockThreshold: level.LowStockThreshold,
		Status:            string(level.Status()),
		UpdatedAt:         level.UpdatedAt,
	}
}

// ToStockAlertDTO converts a domain StockAlert to StockAlertDTO
func ToStockAlertDTO(alert *domain.StockAlert) *StockAlertDTO {
	if alert == nil {
		return nil
	}
	return &StockAlertDTO{
		BookID:            alert.BookID,
		LocationID:        alert.LocationID,
		Stock:             alert.Stock,
		LowStockThreshold: alert.LowStockThreshold,
		Status:            string(alert.Status),
	}
}
