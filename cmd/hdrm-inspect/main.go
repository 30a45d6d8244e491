// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hdrm-inspect/main.go
// Summary: A terminal UI that renders the scene-graph tree, current state,
// BlurFlags, and live Range values as a color-coded live view; the
// operator-facing inspection tool, repointed at the render manager's state
// instead of a terminal pane grid.
// Usage: hdrm-inspect -addr 127.0.0.1:7777 connects to a running debugws
// endpoint; hdrm-inspect -demo drives an in-process RenderManager through a
// synthetic state cycle instead, for exercising the view with no compositor
// attached.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/go-json-experiment/json"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/android-808/hildon-desktop/config"
	"github.com/android-808/hildon-desktop/debugws"
	"github.com/android-808/hildon-desktop/engine"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7777", "debugws server address to connect to")
	demo := flag.Bool("demo", false, "drive an in-process render manager through a synthetic cycle instead of connecting")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdrm-inspect: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "hdrm-inspect: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	restoreTTY := setRawMode()
	defer restoreTTY()

	view := newView()
	quit := make(chan struct{})

	go func() {
		for {
			ev := screen.PollEvent()
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEsc || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					close(quit)
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	if *demo {
		go runDemo(view)
	} else {
		go runClient(*addr, view)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			view.render(screen)
		}
	}
}

// setRawMode puts the controlling terminal into raw mode around the tcell
// screen and returns a restore func safe to call even if raw mode was never
// entered.
func setRawMode() func() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return func() {}
	}
	state, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		tty.Close()
		return func() {}
	}
	return func() {
		term.Restore(int(tty.Fd()), state)
		tty.Close()
	}
}

// view buffers frames from either transport into a small channel the
// render tick drains; only the latest snapshot ever matters, so no mutex
// is involved.
type view struct {
	frames chan debugws.Frame
	latest debugws.Frame
}

func newView() *view {
	return &view{frames: make(chan debugws.Frame, 16)}
}

func (v *view) push(f debugws.Frame) {
	select {
	case v.frames <- f:
	default:
	}
}

func (v *view) render(screen tcell.Screen) {
	for {
		select {
		case f := <-v.frames:
			v.latest = f
			continue
		default:
		}
		break
	}

	screen.Clear()
	x, y := 1, 1
	draw := func(s string, style tcell.Style) {
		for _, r := range s {
			screen.SetContent(x, y, r, nil, style)
			x++
		}
		x, y = 1, y+1
	}

	bold := tcell.StyleDefault.Bold(true)
	draw("hdrm-inspect — q/esc to quit", bold)
	y++
	x = 1

	if v.latest.State != nil {
		draw(fmt.Sprintf("state: %s (was %s)", v.latest.State.State, v.latest.State.Previous), tcell.StyleDefault)
	}
	if v.latest.Rotation != nil {
		draw(fmt.Sprintf("rotation: %d°", v.latest.Rotation.Degrees), tcell.StyleDefault)
	}
	y++
	x = 1

	if v.latest.Blur != nil {
		b := v.latest.Blur
		drawBar(screen, &x, &y, "home_radius    ", b.HomeRadius/16)
		drawBar(screen, &x, &y, "home_saturation", b.HomeSaturation)
		drawBar(screen, &x, &y, "home_brightness", b.HomeBrightness)
		drawBar(screen, &x, &y, "home_zoom      ", b.HomeZoom)
		drawBar(screen, &x, &y, "task_nav_opac  ", b.TaskNavOpacity)
		drawBar(screen, &x, &y, "task_nav_zoom  ", b.TaskNavZoom)
		drawBar(screen, &x, &y, "applets_opac   ", b.AppletsOpacity)
		drawBar(screen, &x, &y, "applets_zoom   ", b.AppletsZoom)
		playing := "idle"
		if b.Playing {
			playing = "playing"
		}
		draw("timeline: "+playing, tcell.StyleDefault)
	}
	y++
	x = 1

	if len(v.latest.Viewport) > 0 {
		draw(fmt.Sprintf("input viewport: %d rect(s)", len(v.latest.Viewport)), tcell.StyleDefault)
		for _, r := range v.latest.Viewport {
			draw(fmt.Sprintf("  (%d,%d) %dx%d", r.X, r.Y, r.W, r.H), tcell.StyleDefault)
		}
	}

	screen.Show()
}

const barWidth = 30

// drawBar renders a labelled horizontal bar whose fill color is blended
// between a cool and a warm hue by the [0,1] value.
func drawBar(screen tcell.Screen, x, y *int, label string, val float32) {
	if val < 0 {
		val = 0
	}
	if val > 1 {
		val = 1
	}
	cold, _ := colorful.Hex("#3b82f6")
	warm, _ := colorful.Hex("#f97316")
	c := cold.BlendHsv(warm, float64(val))
	filled := int(val * float32(barWidth))

	startX := *x
	for _, r := range label + " [" {
		screen.SetContent(*x, *y, r, nil, tcell.StyleDefault)
		*x++
	}
	for i := 0; i < barWidth; i++ {
		ch := ' '
		style := tcell.StyleDefault
		if i < filled {
			ch = '#'
			style = style.Foreground(tcell.NewRGBColor(int32(c.R*255), int32(c.G*255), int32(c.B*255)))
		}
		screen.SetContent(*x, *y, ch, nil, style)
		*x++
	}
	for _, r := range fmt.Sprintf("] %.2f", val) {
		screen.SetContent(*x, *y, r, nil, tcell.StyleDefault)
		*x++
	}
	*x = startX
	*y++
}

// runClient dials a debugws endpoint and decodes its newline-delimited JSON
// frames, pushing each into the view. It never sends anything back; this
// is a read-only inspection surface.
func runClient(addr string, v *view) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, _, err := ws.Dial(ctx, "ws://"+addr+"/")
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdrm-inspect: dial %s: %v (try -demo)\n", addr, err)
		return
	}
	defer conn.Close()

	for {
		data, err := wsutil.ReadServerText(conn)
		if err != nil {
			return
		}
		var f debugws.Frame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		v.push(f)
	}
}

// runDemo builds an in-process RenderManager (no X11 connection, no
// debugws server) and cycles it through a handful of states so the view can
// be exercised standalone.
func runDemo(v *view) {
	store := config.NewStoreFromConfig(nil)
	rm := engine.New(nil, store, time.Now)
	rm.SetScreenSize(800, 480)

	cycle := []engine.State{
		engine.StateHome, engine.StateApp, engine.StateTaskNav,
		engine.StateLauncher, engine.StateHomeEdit, engine.StateHome,
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	i := 0
	for range ticker.C {
		rm.Tick(time.Now())
		if i%20 == 0 {
			rm.SetState(cycle[(i/20)%len(cycle)])
		}
		i++

		blur := rm.BlurSnapshot()
		v.push(debugws.Frame{
			Kind:     "demo",
			Time:     time.Now(),
			State:    &debugws.StatePayload{State: rm.State().String(), Previous: rm.PreviousState().String()},
			Blur:     &blur,
			Viewport: rm.CurrentViewport(),
		})
	}
}
