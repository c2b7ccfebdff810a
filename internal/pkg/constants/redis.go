package constants

// Redis key formats
const (
	KeyShipperLocation = "tracking:location:%s"    // Format: tracking:location:{order_id}
	KeyDestination     = "tracking:destination:%s" // Format: tracking:destination:{order_id}
)
