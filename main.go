package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/lumipallolabs/duview/internal/cli"
)

func main() {
	// Enable CPU profiling if DUVIEW_CPUPROFILE env var is set
	if cpuProfile := os.Getenv("DUVIEW_CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", cpuProfile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		pprof.StopCPUProfile()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
