// Command tindrivers talks to the control surfaces listed in the config file.
//
// Usage:
//
//	tindrivers <command> [flags]
//
// Commands:
//
//	ports    List MIDI input and output ports
//	reset    Turn every LED of the configured devices off
//	monitor  Log input events until interrupted
//	send     Send one raw MIDI message to a configured device
//	add      Add a device to the config file
//	edit     Change a configured device
//	remove   Remove a device from the config file
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PixPMusic/tindrivers/internal/config"
	"github.com/PixPMusic/tindrivers/internal/devices"
	"github.com/PixPMusic/tindrivers/internal/logging"
	"github.com/PixPMusic/tindrivers/internal/midi"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

const usage = `tindrivers - control surface drivers

Usage:
  tindrivers <command> [flags]

Commands:
  ports    List MIDI input and output ports
  reset    Turn every LED of the configured devices off
  monitor  Log input events until interrupted
  send     Send one raw MIDI message to a configured device
  add      Add a device to the config file
  edit     Change a configured device
  remove   Remove a device from the config file

Use "tindrivers <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	// Initialize MIDI manager
	midiManager := midi.NewManager()
	defer midiManager.Close()

	var err error
	switch cmd {
	case "ports":
		err = runPorts(midiManager)
	case "reset":
		err = runReset(args)
	case "monitor":
		err = runMonitor(args)
	case "send":
		err = runSend(args)
	case "add":
		err = runAdd(args)
	case "edit":
		err = runEdit(args)
	case "remove":
		err = runRemove(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		midiManager.Close()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		midiManager.Close()
		os.Exit(1)
	}
}

func runPorts(m *midi.Manager) error {
	ins, err := m.ListInPorts()
	if err != nil {
		return err
	}
	outs, err := m.ListOutPorts()
	if err != nil {
		return err
	}

	fmt.Println("Input ports:")
	for _, name := range ins {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("Output ports:")
	for _, name := range outs {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

// openConfig reads the config at path, or at the default location when path
// is empty.
func openConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadConfig is openConfig for commands that drive devices; it also builds
// the configured logger.
func loadConfig(path string) (*config.Config, *slog.Logger, error) {
	cfg, err := openConfig(path)
	if err != nil {
		return nil, nil, err
	}
	if len(cfg.Devices) == 0 {
		return nil, nil, fmt.Errorf("no devices configured in %s", cfg.Path())
	}
	return cfg, logging.New(cfg.Logging).Logger, nil
}

func runReset(args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default: user config dir)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	// connecting clears every device; closing clears them again and lets go
	surfaces, err := devices.ConnectAll(cfg.Devices, midi.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := devices.CloseAll(surfaces); err != nil {
		return err
	}
	logger.Info("devices reset", "count", len(surfaces))
	return nil
}

func runMonitor(args []string) error {
	fs := flag.NewFlagSet("monitor", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default: user config dir)")
	interval := fs.Duration("interval", 10*time.Millisecond, "Poll interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	surfaces, err := devices.ConnectAll(cfg.Devices, midi.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("monitoring", "devices", len(surfaces))

	pollErr := midi.Poll(ctx, *interval, func() error {
		for _, s := range surfaces {
			for _, ev := range s.Events() {
				logger.Info("input",
					"device", s.Name(),
					"event", ev.Kind.String(),
					"position", ev.Position,
					"address", ev.Address,
					"value", ev.Value,
				)
			}
		}
		return nil
	})

	logger.Info("exiting...")
	if err := devices.CloseAll(surfaces); err != nil {
		return err
	}
	return pollErr
}

func runSend(args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default: user config dir)")
	device := fs.String("device", "", "Device name or ID (default: first configured device)")
	var msg devices.Message
	fs.StringVar(&msg.Type, "type", devices.MessageControlChange, "Message type: note_on, note_off, cc, pc, sysex")
	fs.IntVar(&msg.Channel, "channel", 1, "MIDI channel (1-16)")
	fs.IntVar(&msg.Number, "number", 0, "Note, controller or program number")
	fs.IntVar(&msg.Value, "value", 0, "Velocity or controller value")
	fs.StringVar(&msg.SysEx, "sysex", "", `SysEx frame as hex, e.g. "F0 00 20 29 02 0D 0E 01 F7"`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	frame, err := msg.Bytes()
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	devCfg, err := cfg.Lookup(*device)
	if err != nil {
		return err
	}

	s, err := devices.Connect(*devCfg, midi.WithLogger(logger))
	if err != nil {
		return err
	}
	sendErr := s.Send(frame)
	if sendErr == nil {
		logger.Info("sent", "device", s.Name(), "type", msg.Type, "frame", fmt.Sprintf("% X", frame))
	}
	return errors.Join(sendErr, s.Close())
}

// templateFlag converts the -template flag value to a template slot.
func templateFlag(v int) (uint8, error) {
	if v < 0 || v > math.MaxUint8 {
		return 0, fmt.Errorf("template %d out of range", v)
	}
	return uint8(v), nil
}

func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default: user config dir)")
	deviceType := fs.String("type", "", fmt.Sprintf("Device type: %s or %s", config.DeviceTypeLaunchpad, config.DeviceTypeLaunchControl))
	name := fs.String("name", "", "Device name")
	port := fs.String("port", "", "Port name substring (default: the device's own)")
	template := fs.Int("template", 0, "LED template 0-15 (launch control only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := openConfig(*configPath)
	if err != nil {
		return err
	}

	dev := config.NewDeviceConfig(config.DeviceType(*deviceType))
	if *name != "" {
		dev.Name = *name
	}
	dev.Port = *port
	if dev.Template, err = templateFlag(*template); err != nil {
		return err
	}

	if err := cfg.AddDevice(dev); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Added %s (%s) to %s\n", dev.Name, dev.ID, cfg.Path())
	return nil
}

func runEdit(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default: user config dir)")
	device := fs.String("device", "", "Device name or ID")
	name := fs.String("name", "", "New device name")
	port := fs.String("port", "", "New port name substring (empty: the device's own)")
	template := fs.Int("template", 0, "New LED template 0-15 (launch control only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *device == "" {
		return errors.New("-device is required")
	}

	cfg, err := openConfig(*configPath)
	if err != nil {
		return err
	}
	found, err := cfg.Lookup(*device)
	if err != nil {
		return err
	}

	// only flags given on the command line change the device
	dev := *found
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			dev.Name = *name
		case "port":
			dev.Port = *port
		case "template":
			dev.Template, flagErr = templateFlag(*template)
		}
	})
	if flagErr != nil {
		return flagErr
	}

	if err := cfg.UpdateDevice(dev); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Updated %s (%s)\n", dev.Name, dev.ID)
	return nil
}

func runRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default: user config dir)")
	device := fs.String("device", "", "Device name or ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *device == "" {
		return errors.New("-device is required")
	}

	cfg, err := openConfig(*configPath)
	if err != nil {
		return err
	}
	dev, err := cfg.Lookup(*device)
	if err != nil {
		return err
	}
	name, id := dev.Name, dev.ID

	cfg.RemoveDevice(id)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Removed %s (%s)\n", name, id)
	return nil
}
