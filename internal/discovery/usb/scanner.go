// internal/discovery/usb/scanner.go
package usb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/gousb"
	"go.uber.org/zap"

	"escp-service/internal/config"
	"escp-service/internal/discovery"
)

// Scanner finds USB printers by vendor database and printer interface class
type Scanner struct {
	logger       *zap.Logger
	knownDevices *DeviceDatabase
}

// NewScanner creates a new USB scanner
func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{
		logger:       logger.With(zap.String("scanner", "usb")),
		knownDevices: NewDeviceDatabase(),
	}
}

// Type returns scanner type identifier
func (s *Scanner) Type() string {
	return config.TransportUSB
}

// Scan enumerates USB descriptors. No device is opened, so scanning does
// not need write access to the bus.
func (s *Scanner) Scan(ctx context.Context) ([]*discovery.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	usbCtx := gousb.NewContext()
	defer func() {
		if err := usbCtx.Close(); err != nil {
			s.logger.Warn("Failed to close USB context", zap.Error(err))
		}
	}()

	var found []*discovery.Candidate
	devices, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if candidate, ok := s.Classify(desc); ok {
			found = append(found, candidate)
		}
		return false
	})
	for _, d := range devices {
		d.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate USB devices: %w", err)
	}

	s.logger.Info("USB scan completed",
		zap.Int("devices_found", len(found)),
		zap.Duration("scan_duration", time.Since(startTime)),
	)
	return found, nil
}

// Classify decides whether a descriptor looks like a printer
func (s *Scanner) Classify(desc *gousb.DeviceDesc) (*discovery.Candidate, bool) {
	printerClass := hasPrinterInterface(desc)

	candidate := &discovery.Candidate{
		Transport: config.TransportUSB,
		VendorID:  "0x" + desc.Vendor.String(),
		ProductID: "0x" + desc.Product.String(),
		Location:  fmt.Sprintf("USB-Bus%d-Addr%d", desc.Bus, desc.Address),
	}

	if vendor := s.knownDevices.GetVendorInfo(desc.Vendor); vendor != nil {
		candidate.Vendor = vendor.Name
		if product := vendor.GetProductInfo(desc.Product); product != nil {
			candidate.Model = product.Model
			candidate.Pins = product.Pins
			candidate.Confidence = product.Confidence
			return candidate, true
		}
		if printerClass {
			candidate.Model = fmt.Sprintf("Unknown-%s", desc.Product)
			candidate.Confidence = 0.6
			return candidate, true
		}
		return nil, false
	}

	if printerClass {
		candidate.Description = "USB printer class device"
		candidate.Confidence = 0.4
		return candidate, true
	}

	return nil, false
}

// hasPrinterInterface reports whether the device or any of its interfaces
// carries the USB printer class
func hasPrinterInterface(desc *gousb.DeviceDesc) bool {
	if desc.Class == gousb.ClassPrinter {
		return true
	}
	for _, cfg := range desc.Configs {
		for _, intf := range cfg.Interfaces {
			for _, alt := range intf.AltSettings {
				if alt.Class == gousb.ClassPrinter {
					return true
				}
			}
		}
	}
	return false
}
