package main

import (
	"context"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/pflag"

	"earth-explorer/internal/app"
	"earth-explorer/internal/commands"
	"earth-explorer/internal/config"
	"earth-explorer/internal/console"
	"earth-explorer/internal/controls"
	"earth-explorer/internal/env"
	"earth-explorer/internal/fonts"
	"earth-explorer/internal/graphics"
	"earth-explorer/internal/hud"
	"earth-explorer/internal/input"
	"earth-explorer/internal/loader"
	"earth-explorer/internal/logger"
	"earth-explorer/internal/overlay"
	"earth-explorer/internal/render"
)

func main() {
	configPath := pflag.StringP("config", "c", config.DefaultPath, "config file (YAML)")
	texture := pflag.StringP("texture", "t", "", "Earth texture URL or path (overrides config)")
	logPath := pflag.String("log", "", "log file (overrides config)")
	envPath := pflag.String("env", ".env", "dotenv file with EXPLORER_* overrides")
	writeConfig := pflag.Bool("write-config", false, "write the effective config to --config and exit")
	pflag.Parse()

	cfg, cfgErr := config.Load(*configPath)
	vars, envErr := env.Load(*envPath)
	if envErr == nil {
		envErr = cfg.ApplyEnv(env.Lookup(vars))
	}
	if *texture != "" {
		cfg.Textures.Earth = *texture
	}
	if *logPath != "" {
		cfg.LogPath = *logPath
	}
	if *writeConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	log := logger.New(cfg.LogPath)
	if cfgErr != nil {
		log.Errorf("%v; using defaults", cfgErr)
	}
	if envErr != nil {
		log.Warnf("env: %v", envErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Errorf("config: %v; using defaults", err)
		earth := cfg.Textures.Earth
		cfg = config.Default()
		if earth != "" {
			cfg.Textures.Earth = earth
		}
	}

	ov := &overlay.State{
		ShowFPS:      cfg.Overlays.ShowFPS,
		ShowMemAlloc: cfg.Overlays.ShowMemAlloc,
		ShowHint:     cfg.Overlays.ShowHint,
	}
	panel := controls.NewPanel(cfg.Scene.Camera.AutoRotate, log)
	panel.SetShowInfo(cfg.Overlays.ShowInfo)

	ld := loader.New(loader.Options{
		Timeout:        cfg.Textures.Timeout,
		MaxTextureSize: cfg.Textures.MaxSize,
	})
	a := app.New(app.Options{Scene: cfg.Scene, EarthTexture: cfg.Textures.Earth}, ld, panel, log)

	reg := commands.NewRegistry()
	commands.RegisterExplorer(reg, commands.Explorer{Panel: panel, Overlays: ov, Status: a.Status})
	con := console.New(log, reg)
	ctrl := &input.Controller{
		Panel:     panel,
		OnFPS:     func() { ov.ToggleFPS() },
		OnConsole: con.Toggle,
	}
	renderer := graphics.NewRenderer(log)
	h := hud.New(ov)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := a.Mount(ctx); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	var (
		font       rl.Font
		fontLoaded bool
		scene      render.Frame
		visible    bool
	)
	update := func(delta float32) {
		ctrl.Apply(graphics.Source{}, a.Rig(), con.IsOpen())
		con.Update()
		scene, visible = a.Frame(delta)
	}
	draw := func() {
		if !fontLoaded {
			fontLoaded = true
			if path, ok := fonts.Find(fonts.BaseDirs(), cfg.Overlays.Font); ok {
				font = rl.LoadFont(path)
				h.SetFont(font)
				con.SetFont(font)
			}
		}
		if visible {
			renderer.Draw(scene)
			h.DrawScene(panel.ShowInfo())
		} else {
			h.DrawLoading(a.Progress())
		}
		con.Draw()
	}
	onClose := func() {
		a.Unmount()
		renderer.Close()
		if font.Texture.ID != 0 {
			rl.UnloadFont(font)
		}
		log.Logf("explorer: closed")
	}

	graphics.Run(graphics.Window{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		TargetFPS: cfg.Window.TargetFPS,
		MSAA:      cfg.Window.MSAA,
		OnClose:   onClose,
	}, update, draw)
}
