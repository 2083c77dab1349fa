// internal/protocol/connection.go
package protocol

import (
	"time"

	"escp-service/internal/config"
)

// SerialConfig represents serial connection configuration
type SerialConfig struct {
	Name     string        `json:"name"`
	Port     string        `json:"port"`
	BaudRate int           `json:"baud_rate"`
	DataBits int           `json:"data_bits"`
	StopBits int           `json:"stop_bits"`
	Parity   string        `json:"parity"`
	Timeout  time.Duration `json:"timeout"`
}

// USBConfig represents USB connection configuration
type USBConfig struct {
	Name      string        `json:"name"`
	VendorID  string        `json:"vendor_id"`
	ProductID string        `json:"product_id"`
	Timeout   time.Duration `json:"timeout"`
}

// TCPConfig represents raw TCP (port 9100) connection configuration
type TCPConfig struct {
	Name    string        `json:"name"`
	Host    string        `json:"host"`
	Port    int           `json:"port"`
	Timeout time.Duration `json:"timeout"`
}

func serialConfigFrom(cfg config.TransportConfig) *SerialConfig {
	return &SerialConfig{
		Name:     cfg.Name,
		Port:     cfg.Port,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.Timeout,
	}
}

func usbConfigFrom(cfg config.TransportConfig) *USBConfig {
	return &USBConfig{
		Name:      cfg.Name,
		VendorID:  cfg.VendorID,
		ProductID: cfg.ProductID,
		Timeout:   cfg.Timeout,
	}
}

func tcpConfigFrom(cfg config.TransportConfig) *TCPConfig {
	return &TCPConfig{
		Name:    cfg.Name,
		Host:    cfg.Host,
		Port:    cfg.TCPPort,
		Timeout: cfg.Timeout,
	}
}
