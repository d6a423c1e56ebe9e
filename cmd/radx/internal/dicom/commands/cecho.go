package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dcmkit/radx/cmd/radx/internal/config"
	"github.com/dcmkit/radx/cmd/radx/internal/dicom/ui"
	"github.com/dcmkit/radx/dimse/dul"
	"github.com/dcmkit/radx/dimse/scu"
)

// CEchoCmd implements the DICOM C-ECHO (verification) command.
type CEchoCmd struct {
	Host      string        `name:"host" required:"" help:"DICOM server hostname or IP address"`
	Port      int           `name:"port" default:"11112" help:"DICOM server port"`
	CalledAE  string        `name:"called-ae" default:"ANY-SCP" help:"Called AE Title (server)"`
	CallingAE string        `name:"calling-ae" default:"RADX" help:"Calling AE Title (client)"`
	Timeout   time.Duration `name:"timeout" default:"30s" help:"Operation timeout"`
	Count     int           `name:"count" default:"1" help:"Number of echo requests to send"`
}

// Run executes the C-ECHO command.
func (c *CEchoCmd) Run(cfg *config.GlobalConfig) error {
	ui.PrintBanner()

	logger := log.Default()
	remoteAddr := fmt.Sprintf("%s:%d", c.Host, c.Port)

	client := scu.NewClient(scu.Config{
		CallingAETitle: c.CallingAE,
		CalledAETitle:  c.CalledAE,
		RemoteAddr:     remoteAddr,
		PresentationContexts: []dul.PresentationContextRQ{
			{
				ID:             1,
				AbstractSyntax: "1.2.840.10008.1.1", // Verification SOP Class
				TransferSyntaxes: []string{
					"1.2.840.10008.1.2", // Implicit VR Little Endian
				},
			},
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	logger.Info("Connecting to DICOM server", "address", remoteAddr, "called_ae", c.CalledAE)
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() {
		if err := client.Close(ctx); err != nil {
			logger.Warn("Failed to close connection", "error", err)
		}
	}()

	for i := 0; i < c.Count; i++ {
		start := time.Now()
		if err := client.Echo(ctx); err != nil {
			return fmt.Errorf("C-ECHO failed: %w", err)
		}
		logger.Info("C-ECHO succeeded", "seq", i+1, "rtt", time.Since(start).Round(time.Microsecond))
	}

	fmt.Println(ui.SuccessStyle.Render("✓ Verification succeeded"))
	return nil
}
