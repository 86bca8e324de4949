// Package config handles portfolio configuration loading and management.
package config

import "time"

// Config holds all portfolio settings.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Contact   ContactConfig   `yaml:"contact"`
	Animation AnimationConfig `yaml:"animation"`
	Scene     SceneConfig     `yaml:"scene"`
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Stream    StreamConfig    `yaml:"stream"`
	Content   ContentConfig   `yaml:"content"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

// ContactConfig selects the contact store and mailer backends.
type ContactConfig struct {
	// NotifyOnSubmit makes POST /api/contact send the email too, so a
	// single request covers both steps.
	NotifyOnSubmit bool `yaml:"notify_on_submit"`

	Store       string `yaml:"store"` // "memory" or "supabase"
	SupabaseURL string `yaml:"supabase_url"`
	SupabaseKey string `yaml:"supabase_key"`
	Table       string `yaml:"table"`

	Mailer       string        `yaml:"mailer"` // "log" or "resend"
	ResendAPIKey string        `yaml:"resend_api_key"`
	From         string        `yaml:"from"`
	To           []string      `yaml:"to"`
	Timeout      time.Duration `yaml:"timeout"`
}

// AnimationConfig holds the morphing blob parameters.
type AnimationConfig struct {
	Seed             int64   `yaml:"seed"` // 0 picks a seed at startup
	Speed            float32 `yaml:"speed"`
	Complexity       float32 `yaml:"complexity"`
	Scale            float32 `yaml:"scale"`
	Subdivisions     int     `yaml:"subdivisions"`
	CoreSubdivisions int     `yaml:"core_subdivisions"`
	FloatIntensity   float32 `yaml:"float_intensity"`
	Satellites       int     `yaml:"satellites"`
}

// SceneConfig holds camera and interactivity settings.
type SceneConfig struct {
	CameraPosition [3]float32 `yaml:"camera_position"`
	CameraFOV      float32    `yaml:"camera_fov"`
	Controls       bool       `yaml:"controls"`
	Zoom           bool       `yaml:"zoom"`
	Pan            bool       `yaml:"pan"`
	Interactive    bool       `yaml:"interactive"`
	Particles      int        `yaml:"particles"`
	ParticleSpeed  float32    `yaml:"particle_speed"`
}

// GraphicsConfig holds native viewer window settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"`

	// ScreenshotDir receives F12 captures from the viewer.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// StreamConfig holds websocket frame streaming settings.
type StreamConfig struct {
	FPS          int           `yaml:"fps"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ContentConfig points at the portfolio page content.
type ContentConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    64 << 10,
		},
		Contact: ContactConfig{
			NotifyOnSubmit: true,
			Store:          "memory",
			Table:          "message",
			Mailer:         "log",
			From:           "Portfolio <onboarding@resend.dev>",
			Timeout:        10 * time.Second,
		},
		Animation: AnimationConfig{
			Seed:             0,
			Speed:            0.5,
			Complexity:       3,
			Scale:            1.5,
			Subdivisions:     4,
			CoreSubdivisions: 2,
			FloatIntensity:   0.3,
			Satellites:       20,
		},
		Scene: SceneConfig{
			CameraPosition: [3]float32{0, 0, 5},
			CameraFOV:      50,
			Controls:       true,
			Interactive:    true,
			Particles:      100,
			ParticleSpeed:  0.2,
		},
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			MSAA:   4,

			ScreenshotDir: "screenshots",
		},
		Stream: StreamConfig{
			FPS:          30,
			WriteTimeout: 2 * time.Second,
		},
		Content: ContentConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
