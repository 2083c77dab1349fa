// internal/protocol/factory.go
package protocol

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"escp-service/internal/config"
)

// validBaudRates lists the rates Epson serial interfaces accept
var validBaudRates = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200}

// NewTransport creates a transport from its configuration entry. Debug
// transports mirror their hex dump to debugOut when it is not nil.
func NewTransport(cfg config.TransportConfig, debugOut io.Writer, logger *zap.Logger) (Transport, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("transport %s: %w", cfg.Name, err)
	}

	switch cfg.Type {
	case config.TransportSerial:
		serialConfig := serialConfigFrom(cfg)
		logger.Info("Creating serial transport",
			zap.String("port", serialConfig.Port),
			zap.Int("baud_rate", serialConfig.BaudRate),
		)
		return NewSerialConnection(serialConfig, logger), nil

	case config.TransportUSB:
		usbConfig := usbConfigFrom(cfg)
		logger.Info("Creating USB transport",
			zap.String("vendor_id", usbConfig.VendorID),
			zap.String("product_id", usbConfig.ProductID),
		)
		return NewUSBConnection(usbConfig, logger), nil

	case config.TransportTCP:
		tcpConfig := tcpConfigFrom(cfg)
		logger.Info("Creating TCP transport",
			zap.String("host", tcpConfig.Host),
			zap.Int("port", tcpConfig.Port),
		)
		return NewTCPConnection(tcpConfig, logger), nil

	case config.TransportDebug:
		return NewDebugConnection(cfg.Name, debugOut, logger), nil

	default:
		return nil, fmt.Errorf("unsupported transport type: %s", cfg.Type)
	}
}

// NewTransports creates every configured transport
func NewTransports(cfgs []config.TransportConfig, debugOut io.Writer, logger *zap.Logger) ([]Transport, error) {
	transports := make([]Transport, 0, len(cfgs))
	for _, cfg := range cfgs {
		t, err := NewTransport(cfg, debugOut, logger)
		if err != nil {
			return nil, err
		}
		transports = append(transports, t)
	}
	return transports, nil
}

// ValidateConfig validates a transport entry for its type
func ValidateConfig(cfg config.TransportConfig) error {
	switch cfg.Type {
	case config.TransportSerial:
		return validateSerialConfig(cfg)
	case config.TransportUSB:
		return validateUSBConfig(cfg)
	case config.TransportTCP:
		return validateTCPConfig(cfg)
	case config.TransportDebug:
		return nil
	default:
		return fmt.Errorf("unsupported transport type: %s", cfg.Type)
	}
}

// validateSerialConfig validates serial configuration
func validateSerialConfig(cfg config.TransportConfig) error {
	if cfg.Port == "" {
		return fmt.Errorf("serial port is required")
	}

	valid := false
	for _, rate := range validBaudRates {
		if cfg.BaudRate == rate {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid baud rate: %d", cfg.BaudRate)
	}

	if _, err := serialMode(serialConfigFrom(cfg)); err != nil {
		return err
	}

	return nil
}

// validateUSBConfig validates USB configuration
func validateUSBConfig(cfg config.TransportConfig) error {
	if _, err := parseHexID(cfg.VendorID); err != nil {
		return fmt.Errorf("invalid vendor_id %q: %w", cfg.VendorID, err)
	}

	if _, err := parseHexID(cfg.ProductID); err != nil {
		return fmt.Errorf("invalid product_id %q: %w", cfg.ProductID, err)
	}

	return nil
}

// validateTCPConfig validates TCP configuration
func validateTCPConfig(cfg config.TransportConfig) error {
	if cfg.Host == "" {
		return fmt.Errorf("TCP host is required")
	}

	if cfg.TCPPort < 1 || cfg.TCPPort > 65535 {
		return fmt.Errorf("invalid port number: %d", cfg.TCPPort)
	}

	return nil
}
