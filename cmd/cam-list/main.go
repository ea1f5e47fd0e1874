package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/aperture/internal/camera"
	"github.com/banshee-data/aperture/internal/controls"
	"github.com/banshee-data/aperture/internal/logging"
	"github.com/banshee-data/aperture/internal/pipeline/virtual"
	"github.com/banshee-data/aperture/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to a camera catalog JSON file (default: built-in catalog)")
	logLevel := flag.String("log-level", "warn", "Log severity: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("cam-list %s\n", version.String())
		return
	}

	level, ok := logging.ParseSeverity(*logLevel)
	if !ok {
		log.Fatalf("bad -log-level %q", *logLevel)
	}
	logging.SetLevel("*", level)

	var cfg *virtual.Config
	if *configPath != "" {
		var err error
		cfg, err = virtual.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load catalog: %v", err)
		}
	}

	pipe, err := virtual.New(cfg)
	if err != nil {
		log.Fatalf("create pipeline: %v", err)
	}
	mgr := camera.NewManager(pipe)
	if err := mgr.Start(); err != nil {
		log.Fatalf("start camera manager: %v", err)
	}
	defer mgr.Stop()

	cams := mgr.Cameras()
	if len(cams) == 0 {
		fmt.Println("no cameras available")
		os.Exit(1)
	}

	for i, cam := range cams {
		fmt.Printf("%d: %s\n", i, cam.ID())
		printProperties(cam)
		printFormats(cam)
	}
}

func printProperties(cam *camera.Camera) {
	props := cam.Properties()
	for id, v := range props.All() {
		fmt.Printf("    %s: %s\n", controls.PropertyName(id), v)
	}
}

func printFormats(cam *camera.Camera) {
	cfg, err := cam.GenerateConfiguration(camera.RoleViewfinder)
	if err != nil {
		return
	}
	formats := cfg.At(0).Formats()
	if formats == nil {
		return
	}
	fmt.Println("    formats:")
	for _, pf := range formats.PixelFormats() {
		fmt.Printf("      %s:", pf)
		for _, size := range formats.Sizes(pf) {
			fmt.Printf(" %s", size)
		}
		fmt.Println()
	}
}
