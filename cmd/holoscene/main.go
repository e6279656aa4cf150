package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"holoscene/internal/config"
	"holoscene/internal/convert"
	"holoscene/internal/engine2D"
	"holoscene/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "Path to a holoscene.yaml config file")
	envName := flag.String("env", "", "Environment descriptor: a .json/.yaml path or a name under environments/")
	contentPath := flag.String("content", "", "Content list (.json or .yaml) to show in the environment")
	packPath := flag.String("pack", "", "Environment pack to read -env from")
	theme := flag.String("theme", "", "Visual theme: matrix, neon, plasma or crystalline")
	power := flag.Float64("power", -1, "Initial power level in [0,1]")
	seed := flag.Int64("seed", 0, "Random seed for ambient particles (0 = time based)")
	scaling := flag.String("scaling", "fit", "Scene scaling mode: fit or fill")
	recordPath := flag.String("record", "", "Record composed frames to this snapshot file")
	replayPath := flag.String("replay", "", "Print a summary of a recorded snapshot file and exit")
	x11Pointer := flag.Bool("x11-pointer", false, "Drive the view from the global X11 pointer (wallpaper mode)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging and the F8 overlay")
	flag.Parse()
	defer utils.Sync()

	utils.DebugMode = *debugFlag
	if *debugFlag {
		utils.SetLevel(utils.LevelDebug)
		utils.ShowDebugUI = true
	}

	if *replayPath != "" {
		if err := replay(os.Stdout, *replayPath); err != nil {
			utils.Error("Replay failed: %v", err)
			os.Exit(1)
		}
		return
	}

	opts := config.Default()
	if path := utils.FindConfigFile(*configPath); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			utils.Error("%v", err)
			os.Exit(1)
		}
		opts = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theme":
			opts.Theme = *theme
		case "power":
			opts.InitialPower = *power
		case "seed":
			opts.Seed = *seed
		case "env":
			opts.Environment = *envName
		case "log-level":
			opts.LogLevel = *logLevel
		}
	})
	if err := opts.Validate(); err != nil {
		utils.Error("Invalid options: %v", err)
		os.Exit(1)
	}
	if !*debugFlag && opts.LogLevel != "" {
		if lvl, err := utils.ParseLevel(opts.LogLevel); err == nil {
			utils.SetLevel(lvl)
		}
	}

	env, err := loadEnvironment(opts.Environment, *packPath)
	if err != nil {
		utils.Error("Failed to load environment: %v", err)
		os.Exit(1)
	}
	objects, err := loadContent(*contentPath)
	if err != nil {
		utils.Error("Failed to load content: %v", err)
		os.Exit(1)
	}
	utils.Info("Environment %s (%s): %d environment objects, %d content objects", env.ID, env.Type, len(env.Objects), len(objects))

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Window.Width), int32(opts.Window.Height), opts.Window.Title)
	defer rl.CloseWindow()

	window, err := NewWindow(opts, env, objects, WindowOptions{
		Scaling:    engine2D.ScalingMode(*scaling),
		RecordPath: *recordPath,
		X11Pointer: *x11Pointer,
	})
	if err != nil {
		utils.Error("Failed to start viewer: %v", err)
		os.Exit(1)
	}

	utils.Info("Starting frame loop...")
	window.Run()
	if err := window.Close(); err != nil {
		utils.Error("Teardown: %v", err)
		os.Exit(1)
	}
}

func replay(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	frames, err := convert.ReadSnapshots(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, frame := range frames {
		fmt.Fprintf(w, "frame %6d  objects %3d  particles %3d  power %.2f (%s)  view %.1f/%.1f  diagnostics %d\n",
			frame.Number, len(frame.Objects), len(frame.Particles), frame.Power, frame.PowerState,
			frame.View.Yaw, frame.View.Pitch, len(frame.Diagnostics))
	}
	fmt.Fprintf(w, "%d frames\n", len(frames))
	return nil
}
