package registry

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

type stubGame struct {
	title string
	speed int
}

func (g *stubGame) ID() string                           { return "stub" }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", "test mode", func(cfg config.Config) Game {
		return &stubGame{title: "Stub", speed: cfg.Game.Speed}
	})

	if !Exists("zz_stub") {
		t.Fatal("Expected zz_stub to be registered")
	}

	var info GameInfo
	for _, gi := range List() {
		if gi.ID == "zz_stub" {
			info = gi
		}
	}
	if info.Title != "Stub" || info.Description != "test mode" {
		t.Errorf("List() entry = %+v", info)
	}

	cfg := config.Default()
	cfg.Game.Speed = 5
	g, err := Create("zz_stub", cfg)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.(*stubGame).speed != 5 {
		t.Error("Create() must pass the configuration to the factory")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist", config.Default()); err == nil {
		t.Error("Expected an error for an unknown ID")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(config.Config) Game { return &stubGame{} }
	Register("zz_dup", "", f)

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic on duplicate registration")
		}
	}()
	Register("zz_dup", "", f)
}

func TestListSorted(t *testing.T) {
	Register("zz_b", "", func(config.Config) Game { return &stubGame{} })
	Register("zz_a", "", func(config.Config) Game { return &stubGame{} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
