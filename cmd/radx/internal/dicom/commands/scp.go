package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/dcmkit/radx/cmd/radx/internal/config"
	"github.com/dcmkit/radx/cmd/radx/internal/dicom/ui"
	"github.com/dcmkit/radx/dicom"
	"github.com/dcmkit/radx/dimse/scp"
)

// SCPCmd runs a DICOM SCP server supporting C-ECHO, C-STORE and C-FIND.
// Received instances are written to the storage directory and registered in
// an in-memory query index so they are immediately findable.
type SCPCmd struct {
	ListenAddr string `name:"listen" default:"0.0.0.0:11112" help:"Address to listen on"`
	AETitle    string `name:"ae-title" default:"RADX-SCP" help:"AE Title of this SCP"`
	StorageDir string `name:"storage-dir" default:"./storage" help:"Directory for received instances"`
	MaxPDUSize uint32 `name:"max-pdu" default:"16384" help:"Maximum PDU size in bytes"`
}

// Run executes the SCP server command, blocking until interrupted.
func (c *SCPCmd) Run(cfg *config.GlobalConfig) error {
	ui.PrintBanner()

	logger := log.Default()

	if err := createOutputDirectory(c.StorageDir); err != nil {
		return err
	}

	index := scp.NewMemoryIndex()

	storeHandler := scp.StoreHandlerFunc(func(ctx context.Context, req *scp.StoreRequest) *scp.StoreResponse {
		path := filepath.Join(c.StorageDir, req.SOPInstanceUID+".dcm")

		if err := dicom.WriteFile(path, req.DataSet); err != nil {
			logger.Error("Failed to store instance", "sop_instance_uid", req.SOPInstanceUID, "error", err)
			return &scp.StoreResponse{Status: 0xA700} // out of resources
		}

		if err := index.AddDataSet(req.DataSet); err != nil {
			logger.Warn("Stored instance could not be indexed", "path", path, "error", err)
		}

		logger.Info("Stored instance",
			"sop_class_uid", req.SOPClassUID,
			"sop_instance_uid", req.SOPInstanceUID,
			"path", path,
		)
		return &scp.StoreResponse{Status: 0x0000}
	})

	server, err := scp.NewServer(scp.Config{
		AETitle:      c.AETitle,
		ListenAddr:   c.ListenAddr,
		MaxPDULength: c.MaxPDUSize,
		SupportedContexts: map[string][]string{
			"1.2.840.10008.1.1":             {"1.2.840.10008.1.2", "1.2.840.10008.1.2.1"}, // Verification
			"1.2.840.10008.5.1.4.1.1.2":     {"1.2.840.10008.1.2", "1.2.840.10008.1.2.1"}, // CT Image Storage
			"1.2.840.10008.5.1.4.1.1.4":     {"1.2.840.10008.1.2", "1.2.840.10008.1.2.1"}, // MR Image Storage
			"1.2.840.10008.5.1.4.1.1.7":     {"1.2.840.10008.1.2", "1.2.840.10008.1.2.1"}, // Secondary Capture
			"1.2.840.10008.5.1.4.1.2.1.1":   {"1.2.840.10008.1.2"},                        // Patient Root Q/R FIND
			"1.2.840.10008.5.1.4.1.2.2.1":   {"1.2.840.10008.1.2"},                        // Study Root Q/R FIND
		},
		EchoHandler:  scp.NewDefaultEchoHandler(),
		StoreHandler: storeHandler,
		FindHandler:  scp.NewIndexFindHandler(index),
	})
	if err != nil {
		return fmt.Errorf("failed to create SCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := server.Listen(ctx); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.ListenAddr, err)
	}

	logger.Info("SCP server listening",
		"addr", c.ListenAddr,
		"ae_title", c.AETitle,
		"storage_dir", c.StorageDir,
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down")
	return server.Shutdown(context.Background())
}
