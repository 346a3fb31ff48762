package commands

import (
	"fmt"
	"strings"

	"earth-explorer/internal/controls"
)

// Overlays is the overlay state the console can flip.
type Overlays interface {
	ToggleFPS() bool
	ToggleMem() bool
}

// Explorer is what the explorer commands act on.
type Explorer struct {
	Panel    *controls.Panel
	Overlays Overlays
	Status   func() string
}

// RegisterExplorer adds the viewer commands: autorotate, reset, zoom, info, fps, status, help.
func RegisterExplorer(r *Registry, e Explorer) {
	r.Register("autorotate", "autorotate on|off|toggle", nil, func(args []string) (string, error) {
		mode := "toggle"
		if len(args) > 0 {
			mode = args[0]
		}
		var err error
		switch mode {
		case "on":
			err = e.Panel.SetAutoRotate(true)
		case "off":
			err = e.Panel.SetAutoRotate(false)
		case "toggle":
			err = e.Panel.ToggleAutoRotate()
		default:
			return "", fmt.Errorf("autorotate: want on, off or toggle, got %q", mode)
		}
		if err != nil {
			return "", err
		}
		return "autorotate " + onOff(e.Panel.AutoRotate()), nil
	})

	r.Register("reset", "reset", nil, func([]string) (string, error) {
		if err := e.Panel.Reset(); err != nil {
			return "", err
		}
		return "view reset", nil
	})

	zoomFlags := NewFlagSet("zoom")
	steps := zoomFlags.IntP("steps", "n", 1, "number of zoom steps")
	r.Register("zoom", "zoom [-n steps] in|out", zoomFlags, func(args []string) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("zoom: want in or out")
		}
		var step func() error
		switch args[0] {
		case "in":
			step = e.Panel.ZoomIn
		case "out":
			step = e.Panel.ZoomOut
		default:
			return "", fmt.Errorf("zoom: want in or out, got %q", args[0])
		}
		for i := 0; i < *steps; i++ {
			if err := step(); err != nil {
				return "", err
			}
		}
		return fmt.Sprintf("zoom %s x%d", args[0], *steps), nil
	})

	r.Register("info", "info", nil, func([]string) (string, error) {
		e.Panel.ToggleInfo()
		return "info " + onOff(e.Panel.ShowInfo()), nil
	})

	fpsFlags := NewFlagSet("fps")
	mem := fpsFlags.Bool("mem", false, "toggle the memory readout instead")
	r.Register("fps", "fps [--mem]", fpsFlags, func([]string) (string, error) {
		if e.Overlays == nil {
			return "", fmt.Errorf("fps: no overlay")
		}
		if *mem {
			return "memalloc " + onOff(e.Overlays.ToggleMem()), nil
		}
		return "fps " + onOff(e.Overlays.ToggleFPS()), nil
	})

	r.Register("status", "status", nil, func([]string) (string, error) {
		if e.Status == nil {
			return "", nil
		}
		return e.Status(), nil
	})

	r.Register("help", "help", nil, func([]string) (string, error) {
		return strings.ReplaceAll(r.Help(), "\n", "; "), nil
	})
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
