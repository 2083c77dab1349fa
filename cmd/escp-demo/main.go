// cmd/escp-demo/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"escp-service/internal/config"
	"escp-service/internal/protocol"
	"escp-service/internal/repository"
	"escp-service/internal/service"
	"escp-service/internal/testpage"
	"escp-service/internal/utils"
)

const usageText = `Print a demo page
%[1]s [flags] connector pins [args]
    connector: usb, serial, tcp or debug
    pins: 9, 24, 48
    usb args: id_vendor id_product (hexadecimal)
    serial args: port
    tcp args: host
Example for Epson LX-300+II:
    %[1]s usb 9 0x04b8 0x0005

Flags:
`

var errUsage = errors.New("invalid arguments")

// demoArgs is the parsed command line
type demoArgs struct {
	transport config.TransportConfig
	pins      int
	samples   []string
	noDump    bool
}

func parseArgs(name string, args []string, stderr io.Writer) (*demoArgs, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, usageText, name)
		fs.PrintDefaults()
	}

	sample := fs.String("sample", "all", "sample to print: page, astronomer or all")
	baud := fs.Int("baud", 9600, "serial baud rate")
	tcpPort := fs.Int("port", 9100, "tcp port")
	timeout := fs.Duration("timeout", 10*time.Second, "per-transport send timeout")
	noDump := fs.Bool("no-dump", false, "do not hex dump the job to stdout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) < 2 {
		fs.Usage()
		return nil, errUsage
	}

	pins, err := strconv.Atoi(rest[1])
	if err != nil || (pins != 9 && pins != 24 && pins != 48) {
		fs.Usage()
		return nil, errUsage
	}

	t := config.TransportConfig{
		Name:    rest[0],
		Type:    rest[0],
		Timeout: *timeout,
	}
	switch rest[0] {
	case config.TransportUSB:
		if len(rest) != 4 {
			fs.Usage()
			return nil, errUsage
		}
		t.VendorID, t.ProductID = rest[2], rest[3]
	case config.TransportSerial:
		if len(rest) != 3 {
			fs.Usage()
			return nil, errUsage
		}
		t.Port = rest[2]
		t.BaudRate = *baud
		t.DataBits = 8
		t.StopBits = 1
		t.Parity = "none"
	case config.TransportTCP:
		if len(rest) != 3 {
			fs.Usage()
			return nil, errUsage
		}
		t.Host = rest[2]
		t.TCPPort = *tcpPort
	case config.TransportDebug:
		if len(rest) != 2 {
			fs.Usage()
			return nil, errUsage
		}
	default:
		fs.Usage()
		return nil, errUsage
	}

	samples := testpage.Kinds
	if *sample != "all" {
		samples = []string{*sample}
	}

	return &demoArgs{
		transport: t,
		pins:      pins,
		samples:   samples,
		noDump:    *noDump,
	}, nil
}

func main() {
	args, err := parseArgs(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger, err := utils.NewLogger(&config.LoggingConfig{
		Level:  "info",
		Format: "console",
		Output: "stderr",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer utils.CloseLogger(logger)

	if err := run(args, os.Stdout, logger); err != nil {
		logger.Error("Demo failed", zap.Error(err))
		os.Exit(1)
	}
}

// run prints every requested sample to the chosen transport and, unless
// disabled, to a debug transport writing to out
func run(args *demoArgs, out io.Writer, logger *zap.Logger) error {
	cfgs := []config.TransportConfig{args.transport}
	if !args.noDump && args.transport.Type != config.TransportDebug {
		cfgs = append(cfgs, config.TransportConfig{Name: "debug", Type: config.TransportDebug})
	}

	transports, err := protocol.NewTransports(cfgs, out, logger)
	if err != nil {
		return err
	}

	printService := service.NewPrintService(
		config.PrinterConfig{Pins: args.pins, CodePage: "cp437"},
		transports,
		repository.NewJobRepository(len(args.samples), logger),
		nil,
		logger,
	)
	defer printService.Close()

	ctx := context.Background()
	for _, kind := range args.samples {
		data, err := testpage.Build(kind, args.pins)
		if err != nil {
			return err
		}
		job, err := printService.Print(ctx, args.pins, data)
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		logger.Info("Sample printed",
			zap.String("sample", kind),
			zap.String("job_id", job.ID.String()),
			zap.Int("bytes", job.Bytes),
		)
	}
	return nil
}
