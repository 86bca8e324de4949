package app

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfolio/internal/config"
	"github.com/Faultbox/morphfolio/internal/contact"
)

func TestSeed(t *testing.T) {
	cfg := config.Default()
	fixed := func() time.Time { return time.Unix(0, 12345) }

	if got := Seed(cfg, fixed); got != 12345 {
		t.Errorf("Seed with zero config = %d, want clock value 12345", got)
	}

	cfg.Animation.Seed = 7
	if got := Seed(cfg, fixed); got != 7 {
		t.Errorf("Seed = %d, want 7", got)
	}

	cfg.Animation.Seed = 0
	if got := Seed(cfg, func() time.Time { return time.Unix(0, 0) }); got == 0 {
		t.Error("Seed must never be zero")
	}
}

func TestBlobAndSceneOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Interactive = false

	b := BlobOptions(cfg, 99)
	if b.Seed != 99 || b.Speed != 0.5 || b.Complexity != 3 || b.FloatIntensity != 0.3 || b.Satellites != 20 {
		t.Errorf("unexpected blob options %+v", b)
	}
	if b.Interactive {
		t.Error("blob should follow scene.interactive")
	}

	s := SceneOptions(cfg)
	if s.CameraPosition != (mgl32.Vec3{0, 0, 5}) || s.CameraFOV != 50 {
		t.Errorf("unexpected scene options %+v", s)
	}
	if s.Zoom || s.Pan {
		t.Error("zoom and pan should be off by default")
	}

	cfg.Scene.Zoom = true
	if !SceneOptions(cfg).Zoom {
		t.Error("scene.zoom should map onto the scene options")
	}
}

func TestComposeSceneNegativeSatellites(t *testing.T) {
	cfg := config.Default()
	cfg.Animation.Subdivisions = 1
	cfg.Animation.Satellites = -1

	s, err := ComposeScene(cfg, 3, nil)
	if err != nil {
		t.Fatalf("ComposeScene: %v", err)
	}
	if n := len(s.Blob().Satellites()); n != 0 {
		t.Errorf("got %d satellites, want 0", n)
	}
}

func TestComposeScene(t *testing.T) {
	cfg := config.Default()
	cfg.Animation.Subdivisions = 1
	cfg.Scene.Particles = 5

	s, err := ComposeScene(cfg, 3, nil)
	if err != nil {
		t.Fatalf("ComposeScene: %v", err)
	}
	if !s.Blob().Mounted() {
		t.Error("blob should be mounted")
	}
	if s.Particles() == nil || s.Particles().Len() != 5 {
		t.Error("expected a 5-particle field")
	}

	cfg.Scene.Particles = 0
	if Particles(cfg, 1) != nil {
		t.Error("zero particles should disable the field")
	}
}

func TestContactWiring(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults", func(*config.Config) {}, false},
		{"supabase", func(c *config.Config) {
			c.Contact.Store = "supabase"
			c.Contact.SupabaseURL = "https://x.supabase.co"
			c.Contact.SupabaseKey = "anon"
		}, false},
		{"resend", func(c *config.Config) {
			c.Contact.Mailer = "resend"
			c.Contact.ResendAPIKey = "re_x"
			c.Contact.To = []string{"me@example.com"}
		}, false},
		{"bad store", func(c *config.Config) { c.Contact.Store = "mongo" }, true},
		{"bad mailer", func(c *config.Config) { c.Contact.Mailer = "smtp" }, true},
		{"bad supabase url", func(c *config.Config) {
			c.Contact.Store = "supabase"
			c.Contact.SupabaseURL = "::"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			svc, err := ContactService(cfg, zap.NewNop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("ContactService() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && svc.NotifyOnSubmit() != cfg.Contact.NotifyOnSubmit {
				t.Error("notify flag not carried over")
			}
		})
	}
}

func TestDefaultMailerIsLogMailer(t *testing.T) {
	m, err := ContactMailer(config.Default(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.(*contact.LogMailer); !ok {
		t.Errorf("default mailer = %T, want *contact.LogMailer", m)
	}
}

func TestNewServer(t *testing.T) {
	cfg := config.Default()
	srv, err := NewServer(cfg, 1, zap.NewNop())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if srv.Handler() == nil {
		t.Error("nil handler")
	}

	cfg.Content.Path = "/nonexistent/content.yaml"
	if _, err := NewServer(cfg, 1, zap.NewNop()); err == nil {
		t.Error("expected error for missing content file")
	}
}
