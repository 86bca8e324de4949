// Package app builds the portfolio components from configuration.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfolio/internal/blob"
	"github.com/Faultbox/morphfolio/internal/config"
	"github.com/Faultbox/morphfolio/internal/contact"
	"github.com/Faultbox/morphfolio/internal/particles"
	"github.com/Faultbox/morphfolio/internal/scene"
	"github.com/Faultbox/morphfolio/internal/server"
	"github.com/Faultbox/morphfolio/internal/site"
)

// ParticleSize is the radius of one particle icosahedron.
const ParticleSize = 0.2

// Seed returns the configured noise seed, or a clock-derived one when the
// config leaves it at zero. The result is never zero.
func Seed(cfg *config.Config, now func() time.Time) int64 {
	if cfg.Animation.Seed != 0 {
		return cfg.Animation.Seed
	}
	if s := now().UnixNano(); s != 0 {
		return s
	}
	return 1
}

// BlobOptions maps the animation and scene settings onto blob options.
func BlobOptions(cfg *config.Config, seed int64) blob.Options {
	a := cfg.Animation
	return blob.Options{
		Seed:             seed,
		Speed:            a.Speed,
		Complexity:       a.Complexity,
		Scale:            a.Scale,
		Subdivisions:     a.Subdivisions,
		CoreSubdivisions: a.CoreSubdivisions,
		FloatIntensity:   a.FloatIntensity,
		Satellites:       a.Satellites,
		Interactive:      cfg.Scene.Interactive,
	}
}

// SceneOptions maps the scene settings.
func SceneOptions(cfg *config.Config) scene.Options {
	s := cfg.Scene
	return scene.Options{
		CameraPosition: mgl32.Vec3(s.CameraPosition),
		CameraFOV:      s.CameraFOV,
		Controls:       s.Controls,
		Interactive:    s.Interactive,
		Zoom:           s.Zoom,
		Pan:            s.Pan,
	}
}

// Particles builds the particle field, or nil when disabled.
func Particles(cfg *config.Config, seed int64) *particles.Field {
	if cfg.Scene.Particles <= 0 {
		return nil
	}
	return particles.NewField(seed, cfg.Scene.Particles, ParticleSize, cfg.Scene.ParticleSpeed)
}

// ComposeScene builds a mounted blob and composes the scene around it.
func ComposeScene(cfg *config.Config, seed int64, onClick func()) (*scene.Scene, error) {
	opts := BlobOptions(cfg, seed)
	opts.OnClick = onClick
	b, err := blob.New(opts)
	if err != nil {
		return nil, fmt.Errorf("creating blob: %w", err)
	}
	b.Mount()
	return scene.Compose(SceneOptions(cfg), b, Particles(cfg, seed)), nil
}

// ContactStore builds the configured message store.
func ContactStore(cfg *config.Config) (contact.Store, error) {
	c := cfg.Contact
	switch c.Store {
	case "memory", "":
		return contact.NewMemoryStore(), nil
	case "supabase":
		return contact.NewSupabaseStore(c.SupabaseURL, c.SupabaseKey, c.Table, c.Timeout)
	default:
		return nil, fmt.Errorf("unknown contact store %q", c.Store)
	}
}

// ContactMailer builds the configured mailer.
func ContactMailer(cfg *config.Config, log *zap.Logger) (contact.Mailer, error) {
	c := cfg.Contact
	switch c.Mailer {
	case "log", "":
		return contact.NewLogMailer(log), nil
	case "resend":
		return contact.NewResendMailer(c.ResendAPIKey, c.From, c.To), nil
	default:
		return nil, fmt.Errorf("unknown contact mailer %q", c.Mailer)
	}
}

// ContactService wires store and mailer into a service.
func ContactService(cfg *config.Config, log *zap.Logger) (*contact.Service, error) {
	store, err := ContactStore(cfg)
	if err != nil {
		return nil, err
	}
	mailer, err := ContactMailer(cfg, log.Named("mailer"))
	if err != nil {
		return nil, err
	}
	return contact.NewService(store, mailer, cfg.Contact.NotifyOnSubmit, log), nil
}

// ServerConfig maps the server and stream settings.
func ServerConfig(cfg *config.Config, seed int64) server.Config {
	return server.Config{
		Addr:               cfg.Server.Addr,
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		ShutdownTimeout:    cfg.Server.ShutdownTimeout,
		MaxBodyBytes:       cfg.Server.MaxBodyBytes,
		StreamFPS:          cfg.Stream.FPS,
		StreamWriteTimeout: cfg.Stream.WriteTimeout,
		Blob:               BlobOptions(cfg, seed),
	}
}

// NewServer builds the full portfolio server.
func NewServer(cfg *config.Config, seed int64, log *zap.Logger) (*server.Server, error) {
	svc, err := ContactService(cfg, log.Named("contact"))
	if err != nil {
		return nil, fmt.Errorf("contact service: %w", err)
	}

	content, err := site.LoadContent(cfg.Content.Path)
	if err != nil {
		return nil, err
	}
	page, err := site.NewRenderer(content, site.PageOptions{
		StreamPath:  "/ws/blob",
		Interactive: cfg.Scene.Interactive,
	})
	if err != nil {
		return nil, err
	}

	return server.New(ServerConfig(cfg, seed), svc, page), nil
}
