package usb

import (
	"testing"

	"github.com/google/gousb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"escp-service/internal/config"
)

func printerConfigs() map[int]gousb.ConfigDesc {
	return map[int]gousb.ConfigDesc{
		1: {
			Number: 1,
			Interfaces: []gousb.InterfaceDesc{{
				Number: 0,
				AltSettings: []gousb.InterfaceSetting{
					{Number: 0, Alternate: 0, Class: gousb.ClassVendorSpec},
					{Number: 0, Alternate: 1, Class: gousb.ClassPrinter},
				},
			}},
		},
	}
}

func TestScanner_Classify(t *testing.T) {
	s := NewScanner(zap.NewNop())

	tests := []struct {
		name       string
		desc       *gousb.DeviceDesc
		ok         bool
		model      string
		pins       int
		confidence float64
	}{
		{
			name:       "known product",
			desc:       &gousb.DeviceDesc{Bus: 1, Address: 4, Vendor: 0x04B8, Product: 0x0005},
			ok:         true,
			model:      "LX-300+II",
			pins:       9,
			confidence: 0.95,
		},
		{
			name:       "known vendor with printer interface",
			desc:       &gousb.DeviceDesc{Bus: 1, Address: 5, Vendor: 0x04B8, Product: 0x0202, Configs: printerConfigs()},
			ok:         true,
			model:      "Unknown-0202",
			confidence: 0.6,
		},
		{
			name: "known vendor without printer interface",
			desc: &gousb.DeviceDesc{Vendor: 0x04B8, Product: 0x0101},
		},
		{
			name:       "printer class device",
			desc:       &gousb.DeviceDesc{Vendor: 0x1234, Product: 0x5678, Class: gousb.ClassPrinter},
			ok:         true,
			confidence: 0.4,
		},
		{
			name: "unrelated device",
			desc: &gousb.DeviceDesc{Vendor: 0x046d, Product: 0xc077, Class: gousb.ClassHID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate, ok := s.Classify(tt.desc)
			require.Equal(t, tt.ok, ok)
			if !ok {
				assert.Nil(t, candidate)
				return
			}
			assert.Equal(t, config.TransportUSB, candidate.Transport)
			assert.Equal(t, tt.model, candidate.Model)
			assert.Equal(t, tt.pins, candidate.Pins)
			assert.InDelta(t, tt.confidence, candidate.Confidence, 1e-9)
		})
	}
}

func TestScanner_ClassifyIDs(t *testing.T) {
	s := NewScanner(zap.NewNop())

	candidate, ok := s.Classify(&gousb.DeviceDesc{Bus: 2, Address: 7, Vendor: 0x04B8, Product: 0x0005})
	require.True(t, ok)
	assert.Equal(t, "Seiko Epson Corporation", candidate.Vendor)
	assert.Equal(t, "0x04b8", candidate.VendorID)
	assert.Equal(t, "0x0005", candidate.ProductID)
	assert.Equal(t, "USB-Bus2-Addr7", candidate.Location)

	entry := candidate.TransportConfig()
	assert.Equal(t, "0x04b8", entry.VendorID)
	assert.Equal(t, "0x0005", entry.ProductID)
}

func TestDeviceDatabase(t *testing.T) {
	db := NewDeviceDatabase()
	assert.True(t, db.IsKnownVendor(0x04B8))
	assert.False(t, db.IsKnownVendor(0x0519))

	db.AddVendor(0x0519, "Star Micronics")
	db.AddProduct(0x0519, 0x0003, &ProductInfo{Model: "NX-500", Pins: 9, Confidence: 0.9})
	db.AddProduct(0x9999, 0x0001, &ProductInfo{Model: "ignored"})

	require.True(t, db.IsKnownVendor(0x0519))
	product := db.GetVendorInfo(0x0519).GetProductInfo(0x0003)
	require.NotNil(t, product)
	assert.Equal(t, 9, product.Pins)
	assert.False(t, db.IsKnownVendor(0x9999))

	// adding an existing vendor keeps its products
	db.AddVendor(0x04B8, "Epson")
	assert.Equal(t, "Seiko Epson Corporation", db.GetVendorInfo(0x04B8).Name)
	assert.NotNil(t, db.GetVendorInfo(0x04B8).GetProductInfo(0x0005))
}
