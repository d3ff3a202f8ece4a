package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/golang/glog"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxconnect"
	hxconnectecho "github.com/pthm/hxconnect/adapters/echo"
	"github.com/pthm/hxconnect/lib/state"
)

const version = "0.1.0"

const usage = `hxconnect - store bindings for templ components

Usage:
    hxconnect demo [--steps=<steps>] [--key=<key>] [--sensitive]
    hxconnect serve [--addr=<addr>] [--key=<key>] [--sensitive]
    hxconnect inspect <token> --key=<key> [--sensitive]
    hxconnect -h | --help
    hxconnect --version

Options:
    -h --help          Show this screen.
    --version          Show version.
    --steps=<steps>    Number of INC actions the demo dispatches [default: 3].
    --addr=<addr>      Listen address [default: :8080].
    --key=<key>        Snapshot key. Keys shorter than 32 bytes are stretched.
    --sensitive        Encrypt snapshots instead of only signing them.`

func main() {
	defer glog.Flush()

	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if demo_, _ := opts.Bool("demo"); demo_ {
		err = runDemo(opts)
	} else if serve_, _ := opts.Bool("serve"); serve_ {
		err = runServe(opts)
	} else if inspect_, _ := opts.Bool("inspect"); inspect_ {
		err = runInspect(opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// runDemo mounts the counter panel, dispatches a few actions and prints
// every distinct render.
func runDemo(opts docopt.Opts) error {
	stepsStr, _ := opts.String("--steps")
	steps, err := strconv.Atoi(stepsStr)
	if err != nil {
		return fmt.Errorf("invalid --steps %q: %w", stepsStr, err)
	}

	ctx := context.Background()
	s := newCounterStore()
	root, err := mountCounter(ctx, s)
	if err != nil {
		return err
	}
	defer root.Unmount()

	renders := root.Renders()
	show := func(label string) error {
		if root.Renders() == renders && label != "mount" {
			fmt.Printf("%-8s (no render)\n", label)
			return nil
		}
		renders = root.Renders()
		html, err := hxconnect.RenderString(ctx, root.Element())
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %s\n", label, html)
		return nil
	}

	if err := show("mount"); err != nil {
		return err
	}
	actions := []state.Action{{Type: "NOOP"}}
	for range steps {
		actions = append(actions, state.Action{Type: "INC"})
	}
	actions = append(actions, state.Action{Type: "TOGGLE"})

	for _, a := range actions {
		s.Dispatch(a)
		if err := root.Err(); err != nil {
			return err
		}
		if err := show(a.Type); err != nil {
			return err
		}
	}

	if key, ok := opts["--key"].(string); ok {
		sensitive, _ := opts.Bool("--sensitive")
		enc, err := hxconnect.NewEncoder([]byte(key))
		if err != nil {
			return err
		}
		token, err := s.Snapshot(enc, sensitive)
		if err != nil {
			return err
		}
		fmt.Printf("snapshot %s\n", token)
	}
	return nil
}

// runServe serves the counter panel at "/".
func runServe(opts docopt.Opts) error {
	addr, _ := opts.String("--addr")
	sensitive, _ := opts.Bool("--sensitive")

	root, err := mountCounter(context.Background(), newCounterStore())
	if err != nil {
		return err
	}
	defer root.Unmount()

	var mountOpts []hxconnectecho.Option
	mountOpts = append(mountOpts, hxconnectecho.WithPath("/"))
	if key, ok := opts["--key"].(string); ok {
		mountOpts = append(mountOpts, hxconnectecho.WithKey([]byte(key)))
	}
	if sensitive {
		mountOpts = append(mountOpts, hxconnectecho.WithSensitive())
	}

	e := echo.New()
	e.HideBanner = true
	hxconnectecho.Mount(e, root, mountOpts...)

	glog.Infof("[serve]listening on %s\n", addr)
	return e.Start(addr)
}

// runInspect decodes a snapshot token and prints it as JSON.
func runInspect(opts docopt.Opts) error {
	token, _ := opts.String("<token>")
	key, _ := opts.String("--key")
	sensitive, _ := opts.Bool("--sensitive")

	enc, err := hxconnect.NewEncoder([]byte(key))
	if err != nil {
		return err
	}
	payload, err := enc.DecodeMap(token, sensitive)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
