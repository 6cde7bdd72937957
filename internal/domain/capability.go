package domain

// Capability is a typed permission token. The HTTP boundary resolves
// the acting identity's capability set before any engine operation is
// invoked; the engine itself trusts the identity it receives and never
// looks permissions up.
type Capability string

const (
	CapCheckout                Capability = "checkout"
	CapManageCart              Capability = "cart:manage"
	CapManageCatalog           Capability = "catalog:manage"
	CapManageLocations         Capability = "locations:manage"
	CapCreatePurchaseRequest   Capability = "purchase_request:create"
	CapReviewPurchaseRequest   Capability = "purchase_request:review"
	CapCompletePurchaseRequest Capability = "purchase_request:complete"
	CapExecuteTransfer         Capability = "transfer:execute"
	CapAdjustThresholds        Capability = "stock:thresholds"
)

// Operation names every engine entry point that is capability-gated.
type Operation string

const (
	OpCheckout                Operation = "checkout"
	OpManageCart              Operation = "cart.manage"
	OpCreateBook              Operation = "catalog.create"
	OpUpdateBook              Operation = "catalog.update"
	OpDeleteBook              Operation = "catalog.delete"
	OpManageLocations         Operation = "locations.manage"
	OpCreatePurchaseRequest   Operation = "purchase_request.create"
	OpReviewPurchaseRequest   Operation = "purchase_request.review"
	OpCompletePurchaseRequest Operation = "purchase_request.complete"
	OpExecuteTransfer         Operation = "transfer.execute"
	OpSetThreshold            Operation = "stock.set_threshold"
)

// OperationCapabilities is the declarative operation -> capability
// table consulted at the boundary, replacing inline role checks.
var OperationCapabilities = map[Operation]Capability{
	OpCheckout:                CapCheckout,
	OpManageCart:              CapManageCart,
	OpCreateBook:              CapManageCatalog,
	OpUpdateBook:              CapManageCatalog,
	OpDeleteBook:              CapManageCatalog,
	OpManageLocations:         CapManageLocations,
	OpCreatePurchaseRequest:   CapCreatePurchaseRequest,
	OpReviewPurchaseRequest:   CapReviewPurchaseRequest,
	OpCompletePurchaseRequest: CapCompletePurchaseRequest,
	OpExecuteTransfer:         CapExecuteTransfer,
	OpSetThreshold:            CapAdjustThresholds,
}

// Actor is the resolved identity handed to the boundary by the
// authentication middleware.
type Actor struct {
	UserID       string
	Capabilities map[Capability]struct{}
}

// NewActor builds an actor from a resolved capability list.
func NewActor(userID string, capabilities []Capability) *Actor {
	caps := make(map[Capability]struct{}, len(capabilities))
	for _, c := range capabilities {
		caps[c] = struct{}{}
	}
	return &Actor{UserID: userID, Capabilities: caps}
}

// Can reports whether the actor holds the capability an operation
// requires.
func (a *Actor) Can(op Operation) bool {
	required, ok := OperationCapabilities[op]
	if !ok {
		return false
	}
	_, held := a.Capabilities[required]
	return held
}
