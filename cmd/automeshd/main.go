// Command automeshd is the process entry point for the hybrid-automaton
// execution engine: it loads a description tree from disk, reconstructs
// the automaton via the registry, and drives it on a fixed-rate tick
// loop until it halts or the process receives a termination signal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/shaply/automesh/automaton"
	"github.com/shaply/automesh/blackboard"
	"github.com/shaply/automesh/httpapi"
	"github.com/shaply/automesh/recorder"
	"github.com/shaply/automesh/registry"
	"github.com/shaply/automesh/shared"
	"github.com/shaply/automesh/system"
	"github.com/shaply/automesh/tree"

	"github.com/joho/godotenv"
)

// main loads configuration, reconstructs the automaton, and runs it.
//
// Startup sequence:
//  1. Load .env (if present) and read DEBUG/engine configuration.
//  2. Register every built-in controller and control-set factory.
//  3. Load the description tree from AUTOMATON_TREE_PATH and deserialize
//     it against the system this process drives.
//  4. Construct the blackboard (BLACKBOARD_NETWORK enables its websocket
//     endpoint) and optionally start the recorder (MONGODB_URI) and the
//     HTTP monitoring surface (HTTP_PORT), which mounts the blackboard's
//     network endpoint alongside the automaton routes.
//  5. Tick the automaton on a fixed interval (TICK_INTERVAL_MS, default
//     100ms) until Halted or the process is asked to shut down.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(".env"); err != nil {
		shared.DebugPrint("no .env file loaded: %v", err)
	}
	shared.InitConfig()

	reg := registry.New()
	if err := registry.RegisterBuiltins(reg); err != nil {
		panic(fmt.Sprintf("registering builtins: %v", err))
	}

	treePath := os.Getenv("AUTOMATON_TREE_PATH")
	if treePath == "" {
		panic("AUTOMATON_TREE_PATH environment variable is not set")
	}
	raw, err := os.ReadFile(treePath)
	if err != nil {
		panic(fmt.Sprintf("reading %s: %v", treePath, err))
	}
	node, err := tree.Unmarshal(raw)
	if err != nil {
		panic(fmt.Sprintf("unmarshaling %s: %v", treePath, err))
	}

	dof, err := strconv.Atoi(os.Getenv("SYSTEM_DOF"))
	if err != nil {
		panic(fmt.Sprintf("parsing SYSTEM_DOF: %v", err))
	}
	sys := system.NewFakeSystem(dof)

	policy := automaton.Strict
	if os.Getenv("FAILURE_POLICY") == "tolerant" {
		policy = automaton.Tolerant
	}

	engine, err := automaton.Deserialize(node, sys, reg, policy)
	if err != nil {
		panic(fmt.Sprintf("deserializing automaton: %v", err))
	}

	var wg sync.WaitGroup

	bb := blackboard.New(os.Getenv("BLACKBOARD_NETWORK") == "true")

	var rec *recorder.Recorder
	if os.Getenv("MONGODB_URI") != "" {
		rec = recorder.New()
		if err := rec.Start(ctx); err != nil {
			shared.DebugError(err)
			rec = nil
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-ctx.Done()
				if err := rec.Stop(); err != nil {
					shared.DebugError(err)
				}
			}()
		}
	}

	if os.Getenv("HTTP_PORT") != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := httpapi.Start(ctx, engine, bb); err != nil {
				shared.DebugError(err)
				cancel()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		runTickLoop(ctx, engine, rec)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		shared.DebugPrint("context cancelled, shutting down")
	case <-sigs:
		shared.DebugPrint("received termination signal, shutting down")
	}

	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		shared.DebugPrint("shut down gracefully")
	case <-time.After(60 * time.Second):
		shared.DebugPrint("timeout waiting for shutdown, forcing exit")
	}
}

// runTickLoop drives engine.Tick on a fixed wall-clock interval, stamping
// each call with elapsed seconds since the loop started. It stops when
// ctx is cancelled or the automaton reaches Halted.
func runTickLoop(ctx context.Context, engine *automaton.HybridAutomaton, rec *recorder.Recorder) {
	interval := 100 * time.Millisecond
	if raw := os.Getenv("TICK_INTERVAL_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			interval = time.Duration(ms) * time.Millisecond
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	lastMode := ""
	if m := engine.CurrentMode(); m != nil {
		lastMode = m.Name()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t := now.Sub(start).Seconds()
			if _, err := engine.Tick(t); err != nil {
				shared.DebugError(err)
			}

			if m := engine.CurrentMode(); m != nil && m.Name() != lastMode {
				if rec != nil {
					if err := rec.RecordTransition(ctx, engine.Name(), lastMode, m.Name(), t); err != nil {
						shared.DebugError(err)
					}
				}
				lastMode = m.Name()
			}

			if engine.State() == automaton.Halted {
				if rec != nil {
					snapshot := tree.New("HybridAutomaton")
					engine.Serialize(snapshot)
					if err := rec.SaveSnapshot(ctx, engine.Name(), snapshot); err != nil {
						shared.DebugError(err)
					}
				}
				return
			}
		}
	}
}
