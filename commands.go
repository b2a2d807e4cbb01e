package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"go-chordpad/config"
	"go-chordpad/debug"
	"go-chordpad/grid"
	"go-chordpad/midi"
)

const portTimeout = 3 * time.Second

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input and output ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ins, outs, ok := midi.ListPorts(portTimeout)
		if !ok {
			return errors.New("MIDI driver did not answer (on macOS: sudo killall coreaudiod midiserver)")
		}

		fmt.Println("=== MIDI Input Ports ===")
		for i, p := range ins {
			fmt.Printf("  %d: %s\n", i, p)
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range outs {
			fmt.Printf("  %d: %s\n", i, p)
		}
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Turn off every LED on the grid controller",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Debug {
			if err := debug.Enable(); err != nil {
				return fmt.Errorf("debug log: %w", err)
			}
			defer debug.Disable()
		}

		dm := midi.NewDeviceManager(cfg.Device.Match, false)
		dm.Rescan()
		lp := dm.GetLaunchpad()
		if lp == nil {
			return fmt.Errorf("no controller matching %q", cfg.Device.Match)
		}
		defer lp.Close()

		pads := grid.BuildPads(grid.DefaultBaseNote)
		if err := lp.Send(midi.EncodeClearAll(&pads)); err != nil {
			return err
		}
		if err := lp.Send(midi.EncodeStatus(midi.StatusOff)); err != nil {
			return err
		}
		fmt.Printf("cleared %s\n", lp.ID())
		return nil
	},
}

var writeConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration chordpad would start with, as YAML.

With --write the configuration is saved to the config file, creating it
with defaults if it does not exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if writeConfig {
			if configPath != "" {
				err = cfg.SaveFile(configPath)
			} else {
				err = cfg.Save()
			}
			if err != nil {
				return fmt.Errorf("save config: %w", err)
			}
		}

		path := configPath
		if path == "" {
			path, _ = config.ConfigPath()
		}
		fmt.Fprintf(os.Stdout, "# %s\n", path)
		return yaml.NewEncoder(os.Stdout).Encode(cfg)
	},
}

func init() {
	configCmd.Flags().BoolVar(&writeConfig, "write", false, "save to the config file")
}
