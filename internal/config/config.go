package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/dailypush/dailypush/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const envPrefix = "DAILYPUSH_"

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	HttpPort      int           `yaml:"http_port" validate:"required,gt=0,lt=65536"`
	AdminUsername string        `yaml:"admin_username"`
	JwtTTL        time.Duration `yaml:"jwt_ttl" validate:"required,gt=0"`

	PostsPerPage       int `yaml:"posts_per_page" validate:"gte=0"`
	AdminUsersPerPage  int `yaml:"admin_users_per_page" validate:"gte=0"`
	AdminTopicsPerPage int `yaml:"admin_topics_per_page" validate:"gte=0"`
	AdminPostsPerPage  int `yaml:"admin_posts_per_page" validate:"gte=0"`

	// Upper bounds match the column widths in storage/pg/schema.go.
	UsernameMinLen  int `yaml:"username_min_len" validate:"gte=0"`
	UsernameMaxLen  int `yaml:"username_max_len" validate:"gte=0,lte=50"`
	PasswordMinLen  int `yaml:"password_min_len" validate:"gte=0"`
	PasswordMaxLen  int `yaml:"password_max_len" validate:"gte=0"`
	TopicNameMaxLen int `yaml:"topic_name_max_len" validate:"gte=0,lte=100"`
	PostTitleMaxLen int `yaml:"post_title_max_len" validate:"gte=0,lte=100"`

	// Login and registration attempts allowed per client IP.
	AuthRatePerMinute float64 `yaml:"auth_rate_per_minute" validate:"gte=0"`
	AuthRateBurst     int     `yaml:"auth_rate_burst" validate:"gte=0"`

	AllowedOrigins []string `yaml:"allowed_origins"`
	SecureCookies  bool     `yaml:"secure_cookies"`
	LogLevel       string   `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogJSON        bool     `yaml:"log_json"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
	SSLMode  string `yaml:"sslmode"`
}

type Private struct {
	JwtKey   string `yaml:"jwt_key" validate:"required"`
	Pg       Pg     `yaml:"pg"`
	RedisURL string `yaml:"redis_url"`
}

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func (s *Config) Pg() Pg {
	return s.private.Pg
}

// RedisURL is empty when logout should not keep a revocation list.
func (s *Config) RedisURL() string {
	return s.private.RedisURL
}

func (s *Config) Limits() validation.Limits {
	return validation.Limits{
		UsernameMinLen:  s.Public.UsernameMinLen,
		UsernameMaxLen:  s.Public.UsernameMaxLen,
		PasswordMinLen:  s.Public.PasswordMinLen,
		PasswordMaxLen:  s.Public.PasswordMaxLen,
		TopicNameMaxLen: s.Public.TopicNameMaxLen,
		PostTitleMaxLen: s.Public.PostTitleMaxLen,
	}
}

func (p Pg) DSN() string {
	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Dbname, sslmode)
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, then an optional
// .env file in the same folder, then DAILYPUSH_* variables. Later sources win.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	envFile := path.Join(configFolder, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic("can't read env file: " + err.Error())
	}

	cfg := &Config{public, private}
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

func (s *Config) applyEnv() {
	if v, ok := os.LookupEnv(envPrefix + "JWT_KEY"); ok {
		s.private.JwtKey = v
	}
	if v, ok := os.LookupEnv(envPrefix + "PG_HOST"); ok {
		s.private.Pg.Host = v
	}
	if v, ok := os.LookupEnv(envPrefix + "PG_PASSWORD"); ok {
		s.private.Pg.Password = v
	}
	if v, ok := os.LookupEnv(envPrefix + "REDIS_URL"); ok {
		s.private.RedisURL = v
	}
	if v, ok := os.LookupEnv(envPrefix + "ADMIN_USERNAME"); ok {
		s.Public.AdminUsername = v
	}
}

func (s *Config) applyDefaults() {
	p := &s.Public
	setDefault(&p.PostsPerPage, 10)
	setDefault(&p.AdminUsersPerPage, 50)
	setDefault(&p.AdminTopicsPerPage, 10)
	setDefault(&p.AdminPostsPerPage, 50)

	d := validation.DefaultLimits
	setDefault(&p.UsernameMinLen, d.UsernameMinLen)
	setDefault(&p.UsernameMaxLen, d.UsernameMaxLen)
	setDefault(&p.PasswordMinLen, d.PasswordMinLen)
	setDefault(&p.PasswordMaxLen, d.PasswordMaxLen)
	setDefault(&p.TopicNameMaxLen, d.TopicNameMaxLen)
	setDefault(&p.PostTitleMaxLen, d.PostTitleMaxLen)

	if p.AuthRatePerMinute == 0 {
		p.AuthRatePerMinute = 10
	}
	setDefault(&p.AuthRateBurst, 5)

	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func (s *Config) validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(s.Public); err != nil {
		return err
	}
	if err := v.Struct(s.private); err != nil {
		return err
	}
	if s.Public.UsernameMinLen > s.Public.UsernameMaxLen {
		return errors.New("username_min_len is greater than username_max_len")
	}
	if s.Public.PasswordMinLen > s.Public.PasswordMaxLen {
		return errors.New("password_min_len is greater than password_max_len")
	}
	return nil
}
