/*
	MineDraft, renderer for block game maps
	Copyright (C) 2022 Maxim Zhuchkov

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Contact me via mail: q3.max.2011@yandex.ru or Discord: MaX#6717
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/google/uuid"
	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render/renderers"
)

var (
	BuildTime  = "00000000.000000"
	CommitHash = "0000000"
	GoVersion  = "0.0"
	GitTag     = "0.0"
)

const usageText = `Usage: %s [options] renderspec...

A renderspec is filename[:options[:overlay...]]. Options are comma
separated: rotation (n/north, ne/northeast, ... nw/northwest, cardinal,
ordinal), light (day, night, twilight, light0 to light255),
dimdepth/litdepth, topdown/oblique, and the special renderer contour.
Several values of one option make a renderer each; the filename then
needs %%r, %%l, %%d or %%a.

Examples:
  %[1]s -n 1 map.png
  %[1]s -p ./World2 -c 8x8 'map-%%l.png:day,night,twilight'
  %[1]s -p ./World2 'view-%%r.png:north,east,oblique'
  %[1]s -p https://example.com/world.zip 'relief.png:day:contour'

Options:
`

func versionString() string {
	return fmt.Sprintf("MineDraft %s (%s) built %s with %s", GitTag, CommitHash, BuildTime, GoVersion)
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		debugFlag   bool
		verbose     bool
		showVersion bool
		saveCfg     bool
		geometry    string
		number      int
		worldPath   string
	)
	flag.BoolVar(&debugFlag, "debug", false, "dump renderer recipes")
	flag.StringVar(&geometry, "c", "", "only render chunks of geometry `WxH[+Z+X]`")
	flag.StringVar(&geometry, "chunks", "", "same as -c")
	flag.IntVar(&number, "n", 0, "render ~/.minecraft/saves/World`N`")
	flag.IntVar(&number, "number", 0, "same as -n")
	flag.StringVar(&worldPath, "p", "", "world `path`, or any source go-getter understands")
	flag.StringVar(&worldPath, "path", "", "same as -p")
	flag.BoolVar(&verbose, "v", false, "log every rendered chunk")
	flag.BoolVar(&verbose, "verbose", false, "same as -v")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&saveCfg, "saveconfig", false, "write the effective configuration and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usageText, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if buildinfo, ok := debug.ReadBuildInfo(); ok {
		GoVersion = buildinfo.GoVersion
		if GitTag == "0.0" && buildinfo.Main.Version != "" {
			GitTag = buildinfo.Main.Version
		}
	}
	if showVersion {
		fmt.Println(versionString())
		return 0
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if err := loadConfig(); err != nil {
		log.Fatal("Error loading config file: " + err.Error())
	}
	if saveCfg {
		if err := saveConfig(); err != nil {
			log.Fatal(err)
		}
		return 0
	}
	slogger, logCloser := setupLogging(cfg, verbose)
	defer logCloser.Close()
	log.Println(versionString())

	factory, err := renderers.NewFactoryFromConf(cfg.SubTree("render"), log.Default())
	if err != nil {
		log.Println("Error loading colours: " + err.Error())
		return 1
	}
	colours = factory.Colours

	rends, err := buildRenderers(factory, flag.Args(), debugFlag)
	if err != nil {
		log.Println(err)
		flag.Usage()
		return 1
	}

	var chunks []primitives.ChunkPos
	if geometry != "" {
		chunks, err = primitives.ParseGeometry(geometry)
		if err != nil {
			log.Println(err)
			return 1
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	storage, err := configuredStorage()
	if err != nil {
		log.Println("Error reading storage config: " + err.Error())
		return 1
	}
	if number > 0 || worldPath != "" {
		dir, err := resolveWorld(ctx, number, worldPath, cfg.GetDSString("./worldcache", "cache_dir"))
		if err != nil {
			log.Println(err)
			return 1
		}
		storage.Type, storage.Address = "filesystem", dir
	} else if storage.Address == "" {
		log.Println(ErrNoWorld)
		flag.Usage()
		return 1
	}

	state := newRunState(uuid.New().String(), NewBroadcaster())
	log.Printf("Run %s", state.id)
	stopBroadcaster := startBackgroundRoutine("progress", state.b.Start)
	defer stopBroadcaster()
	if addr := cfg.GetDSString("", "web", "listen"); addr != "" {
		stopWeb := startBackgroundRoutine("web", runWeb(addr, state))
		defer stopWeb()
	}

	err = runRender(ctx, runOptions{
		rends:   rends,
		chunks:  chunks,
		storage: storage,
		verbose: verbose,
		logger:  slogger,
		state:   state,
	})
	if err != nil {
		log.Printf("Render failed: %v", err)
		return 1
	}
	return 0
}
