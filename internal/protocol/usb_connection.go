// internal/protocol/usb_connection.go
package protocol

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/gousb"
	"go.uber.org/zap"
)

// USBConnection sends jobs to a USB printer's first bulk OUT endpoint
type USBConnection struct {
	config   *USBConfig
	ctx      *gousb.Context
	device   *gousb.Device
	intf     *gousb.Interface
	release  func()
	outEndpt *gousb.OutEndpoint
	logger   *zap.Logger
	mutex    sync.Mutex
	stats    statsRecorder
}

// NewUSBConnection creates a new USB connection
func NewUSBConnection(config *USBConfig, logger *zap.Logger) *USBConnection {
	return &USBConnection{
		config: config,
		logger: logger.With(
			zap.String("protocol", "usb"),
			zap.String("transport", config.Name),
			zap.String("vendor_id", config.VendorID),
			zap.String("product_id", config.ProductID),
		),
	}
}

// Name returns the configured transport name
func (uc *USBConnection) Name() string {
	return uc.config.Name
}

// Stats returns a snapshot of the connection statistics
func (uc *USBConnection) Stats() Stats {
	return uc.stats.snapshot()
}

// Open opens the USB device and claims its default interface
func (uc *USBConnection) Open(ctx context.Context) error {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	if uc.outEndpt != nil {
		return nil
	}

	// Parse vendor and product IDs
	vendorID, err := parseHexID(uc.config.VendorID)
	if err != nil {
		return fmt.Errorf("invalid vendor ID: %w", err)
	}

	productID, err := parseHexID(uc.config.ProductID)
	if err != nil {
		return fmt.Errorf("invalid product ID: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	uc.logger.Info("Opening USB connection")

	usbCtx := gousb.NewContext()

	device, err := uc.findAndOpenDevice(usbCtx, vendorID, productID)
	if err != nil {
		usbCtx.Close()
		return fmt.Errorf("failed to find USB device: %w", err)
	}

	// Printers are often bound to usblp; let libusb detach it
	if err := device.SetAutoDetach(true); err != nil {
		uc.logger.Warn("Failed to enable kernel driver auto-detach", zap.Error(err))
	}

	intf, done, err := device.DefaultInterface()
	if err != nil {
		device.Close()
		usbCtx.Close()
		return fmt.Errorf("failed to claim interface: %w", err)
	}

	outEndpt, err := firstOutEndpoint(intf)
	if err != nil {
		done()
		device.Close()
		usbCtx.Close()
		return err
	}

	uc.ctx = usbCtx
	uc.device = device
	uc.intf = intf
	uc.release = done
	uc.outEndpt = outEndpt
	uc.stats.connected(true)

	uc.logger.Info("USB connection opened successfully",
		zap.Int("endpoint", outEndpt.Desc.Number),
	)
	return nil
}

// Close releases the interface and closes the device
func (uc *USBConnection) Close() error {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	if uc.outEndpt == nil {
		return nil
	}

	var closeErr error
	if uc.release != nil {
		uc.release()
		uc.release = nil
	}
	if uc.device != nil {
		closeErr = uc.device.Close()
		uc.device = nil
	}
	if uc.ctx != nil {
		if err := uc.ctx.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
		uc.ctx = nil
	}

	uc.intf = nil
	uc.outEndpt = nil
	uc.stats.connected(false)

	if closeErr != nil {
		uc.logger.Error("Failed to close USB connection", zap.Error(closeErr))
		return fmt.Errorf("failed to close USB device: %w", closeErr)
	}

	uc.logger.Info("USB connection closed successfully")
	return nil
}

// Send writes data to the OUT endpoint
func (uc *USBConnection) Send(ctx context.Context, data []byte) error {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	if uc.outEndpt == nil {
		return fmt.Errorf("USB connection not open")
	}

	if uc.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.config.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	n, err := uc.outEndpt.WriteContext(ctx, data)
	if err != nil {
		uc.stats.failed()
		uc.logger.Error("USB write failed", zap.Error(err))
		return fmt.Errorf("failed to write to USB device: %w", err)
	}

	if n != len(data) {
		uc.stats.failed()
		return fmt.Errorf("incomplete write: wrote %d of %d bytes", n, len(data))
	}

	uc.stats.sent(n, time.Since(startTime))
	uc.logger.Debug("USB write completed", zap.Int("bytes", n))
	return nil
}

// parseHexID parses hex ID string (0x1234 or 1234)
func parseHexID(hexStr string) (gousb.ID, error) {
	hexStr = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(hexStr)), "0x")

	id, err := strconv.ParseUint(hexStr, 16, 16)
	if err != nil {
		return 0, err
	}

	return gousb.ID(id), nil
}

// firstOutEndpoint opens the lowest numbered OUT endpoint of the interface
func firstOutEndpoint(intf *gousb.Interface) (*gousb.OutEndpoint, error) {
	number := -1
	for _, desc := range intf.Setting.Endpoints {
		if desc.Direction != gousb.EndpointDirectionOut {
			continue
		}
		if number == -1 || desc.Number < number {
			number = desc.Number
		}
	}
	if number == -1 {
		return nil, errors.New("no OUT endpoint on default interface")
	}

	outEndpt, err := intf.OutEndpoint(number)
	if err != nil {
		return nil, fmt.Errorf("failed to get out endpoint: %w", err)
	}
	return outEndpt, nil
}

// findAndOpenDevice finds and opens the USB device
func (uc *USBConnection) findAndOpenDevice(usbCtx *gousb.Context, vendorID, productID gousb.ID) (*gousb.Device, error) {
	devices, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == vendorID && desc.Product == productID
	})

	if err != nil && len(devices) == 0 {
		return nil, fmt.Errorf("failed to enumerate USB devices: %w", err)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("USB device not found (VID: %04X, PID: %04X)", vendorID, productID)
	}

	if len(devices) > 1 {
		// Close extra devices
		for i := 1; i < len(devices); i++ {
			devices[i].Close()
		}
		uc.logger.Warn("Multiple matching USB devices found, using first one")
	}

	return devices[0], nil
}
