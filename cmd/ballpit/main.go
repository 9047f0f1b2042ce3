package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/kinetic/internal/logging"
	"github.com/plus3/kinetic/scenario"
	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/sim/bridge"
	"github.com/plus3/kinetic/sim/canvas/ebitencanvas"
	"github.com/plus3/kinetic/sim/debugui"
	debugui_ebiten "github.com/plus3/kinetic/sim/debugui/ebiten"
	"github.com/plus3/kinetic/vec"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

var background = color.RGBA{R: 0x1e, G: 0x1e, B: 0x2a, A: 0xff}

// clickImpulse is the velocity change applied to a clicked body.
var clickImpulse = vec.New(0, -400)

func main() {
	scenarioPath := flag.String("scenario", "", "Scenario file. Empty uses the built-in ball pit.")
	inspector := flag.Bool("inspector", true, "Show the ImGui inspector (toggle with F1).")
	logLevel := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	logger, err := logging.New(*logLevel, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	s := scenario.Default()
	if *scenarioPath != "" {
		if s, err = scenario.LoadFile(*scenarioPath); err != nil {
			logger.Fatal("load scenario", zap.Error(err))
		}
	}

	game, err := newGame(s, logger, *inspector)
	if err != nil {
		logger.Fatal("build scenario", zap.Error(err))
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}

type Game struct {
	scenario *scenario.Scenario
	world    *sim.World
	events   donburi.World
	canvas   *ebitencanvas.Canvas
	pointer  *ebitencanvas.Pointer
	overlay  *debugui_ebiten.Overlay
	logger   *zap.Logger

	hits   map[string]int
	paused bool
}

func newGame(s *scenario.Scenario, logger *zap.Logger, inspector bool) (*Game, error) {
	width, height := int(s.Width), int(s.Height)
	g := &Game{
		scenario: s,
		events:   donburi.NewWorld(),
		canvas:   ebitencanvas.New(width, height),
		pointer:  ebitencanvas.NewPointer(),
		logger:   logger,
		hits:     make(map[string]int),
	}
	g.world = s.NewWorld(
		sim.WithLogger(logger),
		sim.WithEventSink(bridge.NewSink(g.events)),
	)
	bridge.CollisionEventType.Subscribe(g.events, g.onCollision)

	if inspector {
		g.overlay = debugui_ebiten.NewOverlay(g.world, "ballpit - "+s.Name, width, height)
		g.overlay.Inspector().Items = append(g.overlay.Inspector().Items, debugui.Item{Render: g.renderHits})
		g.pointer.Blocked = g.overlay.WantsPointer
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle("ballpit - " + s.Name)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	_, err := s.Build(g.world, scenario.BuildOptions{
		Pointer: g.pointer,
		OnClick: func(e *sim.Entity) {
			if mover := e.Movement(); mover != nil {
				mover.Impulse(clickImpulse)
			}
		},
	})
	return g, err
}

func (g *Game) onCollision(w donburi.World, event bridge.Collision) {
	g.hits[event.EntityName]++
	g.hits[event.OtherName]++
}

func (g *Game) renderHits() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 500), imgui.CondOnce, imgui.NewVec2(0, 0))
	if imgui.BeginV("Hits", nil, 0) {
		for e := range g.world.Entities() {
			if n := g.hits[e.Name]; n > 0 {
				imgui.Text(fmt.Sprintf("%s: %d", e.Name, n))
			}
		}
	}
	imgui.End()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) && g.overlay != nil {
		g.overlay.Visible = !g.overlay.Visible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}

	g.pointer.Update()
	if !g.paused {
		if err := g.world.Once(1 / float64(ebiten.TPS())); err != nil {
			return err
		}
		bridge.CollisionEventType.ProcessEvents(g.events)
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Target(screen)
	g.canvas.Clear(background)
	g.world.Draw(g.canvas)

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	width, height := int(g.scenario.Width), int(g.scenario.Height)
	if g.overlay != nil {
		g.overlay.Layout(width, height)
	}
	return width, height
}
