// levelcheck loads every level through the activity director without
// opening a window and reports how long each one takes to build.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/activities/activity"
	"github.com/milk9111/activities/ecs"
	"github.com/milk9111/activities/levels"
	"github.com/milk9111/activities/prefabs"
	"github.com/milk9111/activities/screens"
)

func main() {
	maxFrames := flag.Int("frames", 600, "give up on a level after this many frames")
	verbose := flag.Bool("v", false, "log director events")
	flag.Parse()

	names := flag.Args()
	if len(names) == 0 {
		var err error
		names, err = levels.Names()
		if err != nil {
			log.Fatalf("list levels: %v", err)
		}
	}

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatalf("load game spec: %v", err)
	}

	failed := 0
	for _, name := range names {
		frames, tiles, err := checkLevel(spec, name, *maxFrames, *verbose)
		if err != nil {
			fmt.Printf("FAIL %-12s %v\n", name, err)
			failed++
			continue
		}
		fmt.Printf("ok   %-12s %4d tiles in %3d frames\n", name, tiles, frames)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func checkLevel(spec *prefabs.GameSpec, name string, maxFrames int, verbose bool) (int, int, error) {
	var opts []activity.Option
	if verbose {
		opts = append(opts, activity.WithLogger(log.Default()))
	}

	w := ecs.NewWorld()
	d, err := activity.NewDirector(w, opts...)
	if err != nil {
		return 0, 0, err
	}
	router, err := screens.NewRouter(d, spec)
	if err != nil {
		return 0, 0, err
	}
	if err := router.Go("level:"+name, "loading"); err != nil {
		return 0, 0, err
	}

	frames := 0
	for d.InProgress() {
		if frames >= maxFrames {
			return frames, 0, fmt.Errorf("still loading after %d frames", frames)
		}
		if err := d.Update(); err != nil {
			return frames, 0, err
		}
		w.Update()
		frames++
	}

	lvl, ok := d.CurrentActivity().(*screens.Level)
	if !ok || !lvl.Loaded() {
		return frames, 0, fmt.Errorf("level did not finish loading")
	}
	return frames, lvl.Tiles(), nil
}
