package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guilhermepo2/JumpyJump/common"
	"github.com/guilhermepo2/JumpyJump/fx"
	"github.com/guilhermepo2/JumpyJump/input"
	"github.com/guilhermepo2/JumpyJump/levels"
	"github.com/guilhermepo2/JumpyJump/player"
	"github.com/guilhermepo2/JumpyJump/timer"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

const dt = common.FixedStep

// buildLevel turns an ASCII map into a level. '#' solid, '-' one-way,
// '^' spike, 'P' player, 'G' goomba walking left, 'g' goomba walking right,
// '?' question box, 'o' coin.
func buildLevel(t *testing.T, rows []string) *levels.Level {
	t.Helper()
	w, h := len(rows[0]), len(rows)
	lvl := &levels.Level{
		Name:      t.Name(),
		Width:     w,
		Height:    h,
		Layers:    [][]int{make([]int, w*h), make([]int, w*h), make([]int, w*h)},
		LayerMeta: []levels.LayerMeta{{Physics: true}, {OneWay: true}, {Hazard: true}},
	}
	for y, row := range rows {
		if len(row) != w {
			t.Fatalf("row %d has width %d, want %d", y, len(row), w)
		}
		for x, ch := range row {
			idx := y*w + x
			switch ch {
			case '#':
				lvl.Layers[0][idx] = 1
			case '-':
				lvl.Layers[1][idx] = 1
			case '^':
				lvl.Layers[2][idx] = 1
			case 'P':
				lvl.Entities = append(lvl.Entities, levels.Entity{Type: levels.EntityPlayer, X: x, Y: y})
			case 'G':
				lvl.Entities = append(lvl.Entities, levels.Entity{Type: levels.EntityGoomba, X: x, Y: y})
			case 'g':
				lvl.Entities = append(lvl.Entities, levels.Entity{
					Type: levels.EntityGoomba, X: x, Y: y,
					Props: map[string]interface{}{"direction": 1.0},
				})
			case '?':
				lvl.Entities = append(lvl.Entities, levels.Entity{Type: levels.EntityQuestionBox, X: x, Y: y})
			case 'o':
				lvl.Entities = append(lvl.Entities, levels.Entity{Type: levels.EntityCoin, X: x, Y: y})
			}
		}
	}
	if err := lvl.Validate(); err != nil {
		t.Fatalf("invalid test level: %v", err)
	}
	return lvl
}

func newScene(t *testing.T, lvl *levels.Level, rec *fx.Recorder) *Scene {
	t.Helper()
	s, err := New(Config{Level: lvl, Sinks: rec.Sinks()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Destroy)
	return s
}

func run(s *Scene, frames []input.Frame) {
	for _, f := range frames {
		s.Step(dt, f)
	}
}

func idle(n int) []input.Frame {
	return input.Hold(input.Frame{}, n)
}

func walkRight(n int) []input.Frame {
	return input.Hold(input.Frame{Horizontal: 1}, n)
}

func countSound(rec *fx.Recorder, want fx.Sound) int {
	n := 0
	for _, s := range rec.Sounds() {
		if s == want {
			n++
		}
	}
	return n
}

func TestNewRejectsMissingLevel(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNoLevel) {
		t.Fatalf("expected ErrNoLevel, got %v", err)
	}
}

func TestEmbeddedLevelBuilds(t *testing.T) {
	lvl, err := levels.Load(levels.Default)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s, err := New(Config{Level: lvl, Logger: logger})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Destroy()

	if len(s.Enemies()) != 1 || len(s.Boxes()) != 2 || len(s.Coins()) != 4 {
		t.Fatalf("unexpected entity counts: %d enemies, %d boxes, %d coins",
			len(s.Enemies()), len(s.Boxes()), len(s.Coins()))
	}

	built := false
	for _, e := range hook.AllEntries() {
		if e.Message == "scene built" {
			built = true
		}
	}
	if !built {
		t.Fatalf("expected a scene built log entry")
	}

	start := s.PlayerActor().Position()
	run(s, idle(30))
	if !s.PlayerActor().IsGrounded() {
		t.Fatalf("player should stand on the starting ground")
	}
	if d := s.PlayerActor().Position().Sub(start).Len(); d > 0.01 {
		t.Fatalf("idle player drifted by %v", d)
	}
	if s.RestartRequested() {
		t.Fatalf("idle player should not die")
	}
}

func TestFallingOutOfTheMapKillsThePlayer(t *testing.T) {
	rec := &fx.Recorder{}
	s := newScene(t, buildLevel(t, []string{
		"..P..",
		".....",
		".....",
		".....",
	}), rec)

	run(s, idle(120))
	if !s.RestartRequested() || !s.Player().Dead() {
		t.Fatalf("falling below the map should kill the player")
	}
	if s.Stats().Deaths != 1 {
		t.Fatalf("deaths = %d, want 1", s.Stats().Deaths)
	}

	ticks := s.Ticks()
	run(s, idle(10))
	if s.Ticks() != ticks {
		t.Fatalf("a dead scene should not keep stepping")
	}
}

func TestSpikeKillsThePlayer(t *testing.T) {
	rec := &fx.Recorder{}
	s := newScene(t, buildLevel(t, []string{
		"......",
		".P..^.",
		"######",
	}), rec)

	run(s, idle(2))
	run(s, walkRight(60))
	if !s.RestartRequested() {
		t.Fatalf("walking into the spike should kill the player")
	}
	if countSound(rec, fx.SoundDeath) != 1 {
		t.Fatalf("expected one death sound, got %v", rec.Sounds())
	}
}

func TestCoinPickup(t *testing.T) {
	rec := &fx.Recorder{}
	s := newScene(t, buildLevel(t, []string{
		"......",
		".P.o..",
		"######",
	}), rec)

	run(s, idle(2))
	run(s, walkRight(40))
	coin := s.Coins()[0]
	if !coin.Collected() {
		t.Fatalf("coin should have been collected")
	}
	if s.Stats().Coins != 1 {
		t.Fatalf("coins = %d, want 1", s.Stats().Coins)
	}
	if s.RestartRequested() {
		t.Fatalf("a coin is not a hazard")
	}
}

func TestBumpQuestionBoxFromBelow(t *testing.T) {
	rec := &fx.Recorder{}
	s := newScene(t, buildLevel(t, []string{
		"....",
		".?..",
		"....",
		".P..",
		"####",
	}), rec)

	run(s, idle(2))
	jump := []input.Frame{{JumpPressed: true, JumpHeld: true}}
	jump = append(jump, input.Hold(input.Frame{JumpHeld: true}, 40)...)

	box := s.Boxes()[0]
	bumped := false
	for _, f := range jump {
		s.Step(dt, f)
		if box.Activated() && !bumped {
			bumped = true
			if box.VisualOffset()[1] <= 0 {
				t.Fatalf("box should start bouncing on the bump tick, offset %v", box.VisualOffset())
			}
		}
	}
	if !bumped {
		t.Fatalf("jumping under the box should bump it")
	}
	if s.Stats().Coins != 1 {
		t.Fatalf("coins = %d, want 1", s.Stats().Coins)
	}
	if countSound(rec, fx.SoundJump) != 1 || countSound(rec, fx.SoundCoin) != 1 {
		t.Fatalf("unexpected sounds %v", rec.Sounds())
	}
	if box.VisualOffset()[1] != 0 {
		t.Fatalf("bounce should have settled, offset %v", box.VisualOffset())
	}
	if box.Bounds().MinY() != 3 {
		t.Fatalf("the bounce must not move the collider, bounds %+v", box.Bounds())
	}

	// a second bump pays nothing
	run(s, idle(40))
	run(s, jump)
	if s.Stats().Coins != 1 {
		t.Fatalf("used box paid out again")
	}
}

func TestBumpQuestionBoxBesideBrick(t *testing.T) {
	rec := &fx.Recorder{}
	s := newScene(t, buildLevel(t, []string{
		"....",
		".#?.",
		"....",
		".P..",
		"####",
	}), rec)

	// straddle the brick and the box so the brick takes the first column
	s.PlayerActor().SetPosition(mgl64.Vec2{2, 1.5})
	run(s, idle(2))
	jump := []input.Frame{{JumpPressed: true, JumpHeld: true}}
	jump = append(jump, input.Hold(input.Frame{JumpHeld: true}, 40)...)
	run(s, jump)

	if !s.Boxes()[0].Activated() {
		t.Fatalf("box sharing its underside with a brick should be bumped")
	}
	if s.Stats().Coins != 1 || countSound(rec, fx.SoundCoin) != 1 {
		t.Fatalf("coins = %d, sounds %v", s.Stats().Coins, rec.Sounds())
	}
}

func TestWalkerKillsThePlayer(t *testing.T) {
	rec := &fx.Recorder{}
	s := newScene(t, buildLevel(t, []string{
		"........",
		".P...G..",
		"########",
	}), rec)

	run(s, idle(180))
	if !s.RestartRequested() {
		t.Fatalf("walker should have reached the player")
	}
	if w := s.Enemies()[0].Walker; w.Dead() {
		t.Fatalf("touching the player must not kill the walker")
	}
}

func TestWalkerFallsOutOfTheMap(t *testing.T) {
	rec := &fx.Recorder{}
	s := newScene(t, buildLevel(t, []string{
		"......",
		"....g.",
		"P.....",
		"##....",
	}), rec)

	run(s, idle(150))
	e := s.Enemies()[0]
	if !e.Walker.Dead() || !e.Actor.Destroyed() {
		t.Fatalf("walker should be killed below the map")
	}
	if s.RestartRequested() {
		t.Fatalf("player on the ledge should survive")
	}
}

func TestDestroyReleasesEverything(t *testing.T) {
	sched := timer.New()
	s, err := New(Config{
		Level: buildLevel(t, []string{
			".?..",
			"....",
			".P.G",
			"####",
		}),
		Scheduler: sched,
		Stats:     Stats{Coins: 3, Deaths: 2},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := s.Stats(); got.Coins != 3 || got.Deaths != 2 {
		t.Fatalf("stats not carried over: %+v", got)
	}

	s.Boxes()[0].BumpedByPlayer()
	if sched.Len() == 0 {
		t.Fatalf("bump should schedule the bounce")
	}

	s.Destroy()
	s.Destroy()
	if n := len(s.Space().Colliders()); n != 0 {
		t.Fatalf("%d colliders left after Destroy", n)
	}
	if sched.Len() != 0 {
		t.Fatalf("%d cosmetic tasks left after Destroy", sched.Len())
	}
	s.Step(dt, input.Frame{})
	if s.Ticks() != 0 {
		t.Fatalf("destroyed scene stepped")
	}
}

func TestSceneUsesPrefabTuning(t *testing.T) {
	cfg := Config{Level: buildLevel(t, []string{"P.", "##"})}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Destroy()
	if s.Player().Tuning() != player.DefaultTuning() {
		t.Fatalf("zero config should use the default player prefab")
	}
}
