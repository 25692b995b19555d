package service

// QRCodeService renders share/scan codes for orders.
type QRCodeService interface {
	// GenerateOrderQR generates a PNG QR code encoding an order's maps link.
	GenerateOrderQR(content string) ([]byte, error)
}
