// internal/discovery/usb/database.go
package usb

import (
	"github.com/google/gousb"
)

// EpsonVendorID is the USB vendor ID of Seiko Epson
const EpsonVendorID gousb.ID = 0x04B8

// ProductInfo describes a known printer model
type ProductInfo struct {
	Model      string
	Pins       int
	Confidence float64
}

// VendorInfo groups the known models of one vendor
type VendorInfo struct {
	Name     string
	products map[gousb.ID]*ProductInfo
}

// GetProductInfo returns the model behind productID, or nil
func (vi *VendorInfo) GetProductInfo(productID gousb.ID) *ProductInfo {
	return vi.products[productID]
}

// DeviceDatabase maps USB IDs to printer models and print head pin counts
type DeviceDatabase struct {
	vendors map[gousb.ID]*VendorInfo
}

// NewDeviceDatabase returns a database seeded with the Epson dot-matrix
// printers the service has been run against
func NewDeviceDatabase() *DeviceDatabase {
	db := &DeviceDatabase{vendors: make(map[gousb.ID]*VendorInfo)}

	db.AddVendor(EpsonVendorID, "Seiko Epson Corporation")
	db.AddProduct(EpsonVendorID, 0x0005, &ProductInfo{Model: "LX-300+II", Pins: 9, Confidence: 0.95})

	return db
}

// IsKnownVendor reports whether vendorID has an entry
func (db *DeviceDatabase) IsKnownVendor(vendorID gousb.ID) bool {
	return db.vendors[vendorID] != nil
}

// GetVendorInfo returns the vendor entry, or nil
func (db *DeviceDatabase) GetVendorInfo(vendorID gousb.ID) *VendorInfo {
	return db.vendors[vendorID]
}

// AddVendor registers a vendor. An existing entry is left untouched.
func (db *DeviceDatabase) AddVendor(vendorID gousb.ID, name string) {
	if db.IsKnownVendor(vendorID) {
		return
	}
	db.vendors[vendorID] = &VendorInfo{
		Name:     name,
		products: make(map[gousb.ID]*ProductInfo),
	}
}

// AddProduct registers a model under a known vendor; unknown vendors are ignored
func (db *DeviceDatabase) AddProduct(vendorID, productID gousb.ID, info *ProductInfo) {
	if vendor := db.vendors[vendorID]; vendor != nil {
		vendor.products[productID] = info
	}
}
