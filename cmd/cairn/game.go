package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/akmonengine/cairn"
	"github.com/akmonengine/cairn/actor"
	"github.com/akmonengine/cairn/config"
	"github.com/akmonengine/cairn/interaction"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 480
	screenHeight = 720
	trayHeight   = 110
	groundY      = 700
	frameDt      = 1.0 / 60.0
	// frames a status message stays on screen
	messageFrames = 120
)

var (
	colorSky      = colornames.Lightsteelblue
	colorTray     = colornames.Burlywood
	colorSlot     = colornames.Tan
	colorGround   = colornames.Saddlebrown
	colorHeld     = colornames.Gold
	colorFalling  = colornames.Darkorange
	colorTipping  = colornames.Crimson
	colorSettled  = colornames.Slategray
	colorPreview  = colornames.Dimgray
	colorDepleted = color.RGBA{120, 120, 120, 120}
)

type Options struct {
	Difficulty string
	ConfigDir  string
	Level      int
	Seed       int64
	Logger     *log.Logger
}

type Game struct {
	world      *cairn.World
	controller *interaction.Controller
	catalog    *config.Catalog
	watcher    *config.Watcher

	configDir  string
	difficulty string
	level      int
	logger     *log.Logger

	// primary touch driving the drag, valid while touching
	touchID  ebiten.TouchID
	touching bool
	touchIDs []ebiten.TouchID

	message      string
	messageTimer int
}

func NewGame(opts Options) (*Game, error) {
	catalog, err := config.LoadCatalog(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	specs, err := catalog.Tray(opts.Level)
	if err != nil {
		return nil, err
	}
	difficulty, err := config.LoadDifficulty(opts.ConfigDir, opts.Difficulty)
	if err != nil {
		return nil, err
	}

	cfg := cairn.DefaultConfig()
	difficulty.Apply(&cfg)

	world := cairn.NewWorld(groundY, cfg, opts.Seed)
	world.Logger = opts.Logger

	tray := interaction.NewTray(actor.AABB{
		Min: mgl64.Vec2{0, 0},
		Max: mgl64.Vec2{screenWidth, trayHeight},
	}, specs)

	g := &Game{
		world:      world,
		controller: interaction.NewController(world, tray),
		catalog:    catalog,
		configDir:  opts.ConfigDir,
		difficulty: difficulty.Name,
		level:      opts.Level,
		logger:     opts.Logger,
	}
	g.subscribe()

	return g, nil
}

// Watch reloads the YAML files of dir when they change on disk
func (g *Game) Watch(dir string) error {
	w, err := config.NewWatcher(dir)
	if err != nil {
		return err
	}
	g.watcher = w

	return nil
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}

	return g.watcher.Close()
}

func (g *Game) subscribe() {
	g.world.Events.Subscribe(cairn.ON_DEMOTE, func(event cairn.Event) {
		g.debugf("rock %d lost its support", event.(cairn.DemoteEvent).Body.ID)
	})
	g.world.Events.Subscribe(cairn.ON_SETTLE, func(event cairn.Event) {
		g.debugf("rock %d settled", event.(cairn.SettleEvent).Body.ID)
	})
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.handleKeys()
	g.handlePointer()

	g.world.Step(frameDt)

	if g.messageTimer > 0 {
		g.messageTimer--
	}

	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.controller.Rotate(90)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.controller.Rotate(-90)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.nextLevel()
	}

	for key, name := range map[ebiten.Key]string{
		ebiten.Key1: "easy",
		ebiten.Key2: "medium",
		ebiten.Key3: "hard",
	} {
		if inpututil.IsKeyJustPressed(key) {
			g.setDifficulty(name)
		}
	}
}

func (g *Game) handlePointer() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		pos := mgl64.Vec2{float64(x), float64(y)}
		if !g.touching {
			g.touching = true
			g.touchID = id
		}
		g.controller.PointerDown(pos, len(g.touchIDs))
	}

	if g.touching {
		if inpututil.IsTouchJustReleased(g.touchID) {
			x, y := inpututil.TouchPositionInPreviousTick(g.touchID)
			g.controller.PointerUp(mgl64.Vec2{float64(x), float64(y)})
			g.touching = false
			return
		}
		x, y := ebiten.TouchPosition(g.touchID)
		g.controller.PointerMove(mgl64.Vec2{float64(x), float64(y)})
		return
	}

	x, y := ebiten.CursorPosition()
	pos := mgl64.Vec2{float64(x), float64(y)}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.controller.PointerDown(pos, 1)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.controller.PointerUp(pos)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.controller.PointerMove(pos)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}

	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Config watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch name {
	case config.DifficultyFile:
		g.setDifficulty(g.difficulty)
	case config.CatalogFile:
		catalog, err := config.LoadCatalog(g.configDir)
		if err != nil {
			g.notify(fmt.Sprintf("catalog: %v", err))
			return
		}
		g.catalog = catalog
		g.notify("catalog reloaded, press R to restart")
	}
}

func (g *Game) setDifficulty(name string) {
	d, err := config.LoadDifficulty(g.configDir, name)
	if err != nil {
		g.notify(err.Error())
		return
	}

	d.Apply(&g.world.Config)
	g.difficulty = d.Name
	g.world.Recheck()
	g.notify("difficulty: " + d.Name)
}

func (g *Game) nextLevel() {
	next := g.level + 1
	if _, err := g.catalog.Level(next); err != nil {
		next = 1
	}
	g.level = next
	g.reset()
}

func (g *Game) reset() {
	specs, err := g.catalog.Tray(g.level)
	if err != nil {
		g.notify(err.Error())
		return
	}

	g.controller.Reset()
	g.controller.Tray = interaction.NewTray(g.controller.Tray.Region, specs)
	g.touching = false

	if level, err := g.catalog.Level(g.level); err == nil {
		g.notify(fmt.Sprintf("level %d: %s", level.ID, level.Name))
	}
}

func (g *Game) notify(msg string) {
	g.message = msg
	g.messageTimer = messageFrames
	g.debugf("%s", msg)
}

func (g *Game) debugf(format string, args ...any) {
	if g.logger != nil {
		g.logger.Printf(format, args...)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorSky)

	g.drawTray(screen)
	vector.DrawFilledRect(screen, 0, groundY, screenWidth, screenHeight-groundY, colorGround, false)

	for _, body := range g.world.Bodies {
		drawPolygon(screen, body.RenderPolygon(), bodyColor(body), 2)
	}

	g.drawHUD(screen)
}

func (g *Game) drawTray(screen *ebiten.Image) {
	region := g.controller.Tray.Region
	vector.DrawFilledRect(screen, float32(region.Min.X()), float32(region.Min.Y()),
		float32(region.Width()), float32(region.Height()), colorTray, false)

	for _, source := range g.controller.Tray.Sources {
		slot := source.Slot
		vector.DrawFilledRect(screen, float32(slot.Min.X()+interaction.SlotHitSlop), float32(slot.Min.Y()+8),
			float32(interaction.SlotWidth), float32(slot.Height()-16), colorSlot, false)

		center := slot.Center()
		points := source.Polygon.Points()
		for i := range points {
			points[i] = points[i].Add(center)
		}

		clr := color.Color(colorPreview)
		if source.Count == 0 {
			clr = colorDepleted
		}
		drawPolygon(screen, points, clr, 1)

		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("x%d", source.Count),
			int(slot.Min.X()+interaction.SlotHitSlop)+2, int(slot.Max.Y())-24)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	snap := g.controller.Snapshot()
	hud := fmt.Sprintf("%s | placed %d  settled %d  ground %d | height %.0f | tray %d",
		g.difficulty, snap.Placed, snap.Static, snap.OnGround, snap.StackHeight, snap.InTray)
	ebitenutil.DebugPrintAt(screen, hud, 4, trayHeight+4)
	ebitenutil.DebugPrintAt(screen, "space/E Q rotate  R reset  L level  1/2/3 difficulty", 4, trayHeight+20)

	if g.messageTimer > 0 {
		ebitenutil.DebugPrintAt(screen, g.message, 4, trayHeight+36)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func bodyColor(body *actor.Body) color.Color {
	switch {
	case body.IsHeld:
		return colorHeld
	case body.IsTipping:
		return colorTipping
	case body.IsStatic:
		return colorSettled
	default:
		return colorFalling
	}
}

func drawPolygon(screen *ebiten.Image, points []mgl64.Vec2, clr color.Color, width float32) {
	for i, a := range points {
		b := points[(i+1)%len(points)]
		vector.StrokeLine(screen, float32(a.X()), float32(a.Y()), float32(b.X()), float32(b.Y()), width, clr, true)
	}
}
