package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/guilhermepo2/JumpyJump/player"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedPrefabsLoad(t *testing.T) {
	p, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if p.Tuning.JumpPeakHeight != 2.5 {
		t.Fatalf("jump peak height = %v", p.Tuning.JumpPeakHeight)
	}
	cfg, err := p.ActorConfig()
	if err != nil {
		t.Fatalf("player actor config: %v", err)
	}
	if cfg.Masks.Trigger != physics.LayerHazard|physics.LayerPickup|physics.LayerEnemy {
		t.Fatalf("trigger mask = %b", cfg.Masks.Trigger)
	}

	g, err := LoadGoombaSpec()
	if err != nil {
		t.Fatalf("goomba: %v", err)
	}
	if w := g.WalkerConfig(1); w.FootSpeed != 2.5 || w.StartDirection != 1 {
		t.Fatalf("unexpected walker config %+v", w)
	}

	b, err := LoadQuestionBoxSpec()
	if err != nil {
		t.Fatalf("question box: %v", err)
	}
	if b.BoxConfig().BounceTime != 100*time.Millisecond {
		t.Fatalf("bounce time = %v", b.BounceTime)
	}
}

func TestDecodeIntoKeepsDefaults(t *testing.T) {
	spec := DefaultPlayerSpec()
	if err := DecodeInto("partial.yaml", []byte("tuning:\n  foot_speed: 8\n"), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := player.DefaultTuning()
	want.FootSpeed = 8
	if spec.Tuning.Tuning() != want {
		t.Fatalf("tuning = %+v, want %+v", spec.Tuning.Tuning(), want)
	}
	if spec.Collider.Height != 1 {
		t.Fatalf("collider default lost: %+v", spec.Collider)
	}
}

func TestPlayerSpecValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(s *PlayerSpec)
		want   error
	}{
		{"defaults", func(s *PlayerSpec) {}, nil},
		{"bad_tuning", func(s *PlayerSpec) { s.Tuning.FootSpeed = 0 }, player.ErrInvalidTuning},
		{"bad_volume", func(s *PlayerSpec) { s.Collider.SkinWidth = 0 }, physics.ErrInvalidVolume},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := DefaultPlayerSpec()
			c.mutate(&s)
			err := s.Validate()
			if c.want == nil && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if c.want != nil && !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}

	s := DefaultPlayerSpec()
	s.Masks.Trigger = []string{"lava"}
	if err := s.Validate(); err == nil {
		t.Fatalf("unknown layer should fail validation")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{`"#ff8000"`, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, false},
		{`"10203040"`, color.NRGBA{R: 16, G: 32, B: 48, A: 64}, false},
		{`"#fff"`, color.NRGBA{}, true},
		{`"#gg0000"`, color.NRGBA{}, true},
		{`[1, 2]`, color.NRGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if got.Color != c.want {
				t.Fatalf("color = %v, want %v", got.Color, c.want)
			}
		})
	}

	var unset *YAMLColor
	if unset.ColorOr(color.White) != color.White {
		t.Fatalf("nil colour should fall back")
	}
}

func TestDigests(t *testing.T) {
	d := NewDigests()
	steps := []struct {
		name string
		data string
		want bool
	}{
		{"player.yaml", "a: 1", true},
		{"player.yaml", "a: 1", false},
		{"goomba.yaml", "a: 1", true},
		{"player.yaml", "a: 2", true},
		{"player.yaml", "a: 2", false},
	}
	for i, s := range steps {
		if got := d.Changed(s.name, []byte(s.data)); got != s.want {
			t.Fatalf("step %d: Changed = %v, want %v", i, got, s.want)
		}
	}
	d.Forget("player.yaml")
	if !d.Changed("player.yaml", []byte("a: 2")) {
		t.Fatalf("forgotten file should count as changed")
	}
}

func TestDebouncer(t *testing.T) {
	var d debouncer
	start := time.Unix(0, 0)
	if !d.allow("a", start) {
		t.Fatalf("first event must pass")
	}
	if d.allow("a", start.Add(50*time.Millisecond)) {
		t.Fatalf("event inside the window must be dropped")
	}
	if !d.allow("b", start.Add(50*time.Millisecond)) {
		t.Fatalf("other files are debounced separately")
	}
	if !d.allow("a", start.Add(150*time.Millisecond)) {
		t.Fatalf("event after the window must pass")
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		kind Kind
		ok   bool
	}{
		"prefabs/player.yaml":  {KindPrefab, true},
		"x/GOOMBA.YML":         {KindPrefab, true},
		"levels/level_01.json": {KindLevel, true},
		"notes.txt":            {0, false},
	}
	for path, want := range cases {
		kind, ok := classify(path)
		if ok != want.ok || (ok && kind != want.kind) {
			t.Fatalf("classify(%q) = %v,%v", path, kind, ok)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(path, []byte("name: player\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case c := <-w.Events:
		if c.Name() != "player.yaml" || c.Kind != KindPrefab {
			t.Fatalf("unexpected change %+v", c)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}
}
