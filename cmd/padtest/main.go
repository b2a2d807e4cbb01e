// Command padtest exercises a Launchpad X without the UI: port listing,
// Programmer mode, LED layouts and raw input.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go-chordpad/grid"
	"go-chordpad/midi"
	"go-chordpad/theory"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "detect":
		detectLaunchpad()
	case "roles":
		testRoles()
	case "sweep":
		testSweep()
	case "input":
		testInput()
	case "clear":
		clearLEDs()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Launchpad Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list    - List all MIDI ports")
	fmt.Println("  detect  - Find Launchpad X")
	fmt.Println("  roles   - Light C major chord/scale roles")
	fmt.Println("  sweep   - Light one pad at a time")
	fmt.Println("  input   - Print pad and button input")
	fmt.Println("  clear   - Turn all LEDs off")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, outs, ok := midi.ListPorts(3 * time.Second)
	if !ok {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p)
	}
}

func openLaunchpad() midi.Controller {
	dm := midi.NewDeviceManager("launchpad", false)
	dm.Rescan()
	lp := dm.GetLaunchpad()
	if lp == nil {
		fmt.Println("No Launchpad found")
	}
	return lp
}

func detectLaunchpad() {
	fmt.Println("Looking for Launchpad X...")

	ins, outs, ok := midi.ListPorts(3 * time.Second)
	if !ok {
		fmt.Println("port scan timed out")
		return
	}
	found := false
	for i, p := range ins {
		name := strings.ToLower(p)
		if strings.Contains(name, "launchpad") && !strings.Contains(name, "daw") {
			fmt.Printf("Found input: %d: %s\n", i, p)
			found = true
		}
	}
	for i, p := range outs {
		name := strings.ToLower(p)
		if strings.Contains(name, "launchpad") && !strings.Contains(name, "daw") {
			fmt.Printf("Found output: %d: %s\n", i, p)
		}
	}

	if found {
		fmt.Println("\nLaunchpad X detected!")
	} else {
		fmt.Println("\nLaunchpad X not found")
	}
}

func testRoles() {
	lp := openLaunchpad()
	if lp == nil {
		return
	}
	defer lp.Close()

	pads := grid.BuildPads(grid.DefaultBaseNote)
	chord, _ := theory.ChordPitchClasses(0, "maj", 0, false)
	scale, _ := theory.ScalePitchClasses(0, "major")
	view := grid.View{Root: 0, ShowChord: true, Chord: chord.All, ShowScale: true, Scale: scale}
	roles := grid.Roles(&pads, view)

	fmt.Println("Lighting C major (root, chord, scale)...")
	if err := lp.Send(midi.EncodeGrid(&pads, midi.GridColors(&pads, roles, nil))); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	lp.Send(midi.EncodeStatus(midi.StatusConnected))

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()
}

func testSweep() {
	lp := openLaunchpad()
	if lp == nil {
		return
	}
	defer lp.Close()

	fmt.Println("Sweeping pads bottom-left to top-right...")
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			note := grid.DeviceNote(row, col)
			lp.Send(midi.EncodePad(note, midi.ColorChord))
			time.Sleep(30 * time.Millisecond)
			lp.Send(midi.EncodePad(note, midi.ColorOff))
		}
	}
	fmt.Println("Done!")
}

func testInput() {
	lp := openLaunchpad()
	if lp == nil {
		return
	}
	defer lp.Close()

	fmt.Println("Press pads and buttons. Ctrl+C to exit.")
	for ev := range lp.Events() {
		switch ev.Kind {
		case midi.EventCC:
			t := grid.RouteCC(ev.Number)
			fmt.Printf("[%s] %s -> %s %d\n", time.Now().Format("15:04:05"), ev, t.Kind, t.Index)
		default:
			t := grid.RouteNote(ev.Number)
			fmt.Printf("[%s] %s -> %s row=%d col=%d\n", time.Now().Format("15:04:05"), ev, t.Kind, t.Row, t.Col)
		}
	}
}

func clearLEDs() {
	lp := openLaunchpad()
	if lp == nil {
		return
	}
	// Close sends clear-all and turns the status LED off
	lp.Close()
	fmt.Println("Cleared")
}
