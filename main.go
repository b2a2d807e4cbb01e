package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-chordpad/config"
	"go-chordpad/controller"
	"go-chordpad/debug"
	"go-chordpad/midi"
	"go-chordpad/synth"
	"go-chordpad/theme"
	"go-chordpad/tui"
)

var (
	// Global flags
	configPath  string
	debugLog    bool
	noAudio     bool
	deviceMatch string
	keyboards   bool
	palettePath string
)

var rootCmd = &cobra.Command{
	Use:   "chordpad",
	Short: "Chord pad for the Launchpad X",
	Long: `chordpad - turn a Launchpad X into a chord and scale pad.

The grid is laid out in fourths (+1 semitone per column, +5 per row).
Pads light by their role in the selected chord and scale; playing them
sounds the built-in synth and names the chord you hold.

Top row: OCT▲ OCT▼ ◄ ► (octave and capo).
Plug the controller in any time; it is picked up automatically.

Configuration is read from ~/.config/go-chordpad/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPad,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/go-chordpad/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write a debug log to "+debug.Path())
	rootCmd.PersistentFlags().StringVar(&deviceMatch, "match", "", "port name substring of the grid controller")

	rootCmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable the built-in synth")
	rootCmd.Flags().BoolVar(&keyboards, "keyboards", false, "also play notes from other MIDI inputs")
	rootCmd.Flags().StringVar(&palettePath, "palette", "", "GIMP .gpl palette for the screen")

	rootCmd.AddCommand(portsCmd, clearCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = debugLog
	}
	if flags.Changed("match") {
		cfg.Device.Match = deviceMatch
	}
	if flags.Changed("keyboards") {
		cfg.Device.Keyboards = keyboards
	}
	if flags.Changed("palette") {
		cfg.Palette = palettePath
	}
	if noAudio {
		cfg.Audio.Enabled = false
	}
	return cfg, nil
}

func loadTheme(cfg *config.Config) (*theme.Theme, error) {
	if cfg.Palette == "" {
		p, err := theme.Builtin(theme.DefaultPaletteName)
		if err != nil {
			return nil, err
		}
		return theme.New(p), nil
	}
	p, err := theme.LoadGPL(cfg.Palette)
	if err != nil {
		return nil, err
	}
	return theme.New(p), nil
}

func runPad(cmd *cobra.Command, args []string) error {
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

	th, err := loadTheme(cfg)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}

	// Audio is optional; without it the grid still lights and detects
	var sound controller.Sound
	if cfg.Audio.Enabled {
		engine := synth.NewEngine(cfg.Audio.SampleRate)
		out, err := synth.NewOutput(engine)
		if err != nil {
			debug.Log("audio", "%v", err)
			fmt.Fprintf(os.Stderr, "audio disabled: %v\n", err)
		} else {
			defer out.Close()
			sound = engine
		}
	}

	ctrl := controller.New(cfg.State(), sound, nil)

	// Create MIDI device manager (handles hot-plug)
	deviceMgr := midi.NewDeviceManager(cfg.Device.Match, cfg.Device.Keyboards)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		deviceMgr.Run(ctx)
	}()

	m := tui.NewModel(ctrl, deviceMgr, th)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()

	// Closing the devices clears their LEDs; wait for it before exiting
	ctrl.StopMetronome()
	cancel()
	<-done
	return err
}
