package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Astemirdum/venue-reservation/pkg/kafka"
	"github.com/Astemirdum/venue-reservation/pkg/logger"
	"github.com/Astemirdum/venue-reservation/pkg/mailer"
	"github.com/Astemirdum/venue-reservation/pkg/postgres"
	"github.com/Astemirdum/venue-reservation/pkg/upload"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"15s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Auth struct {
	JWTSecret  string        `yaml:"jwtSecret" envconfig:"JWT_SECRET" required:"true" json:"-"`
	TokenTTL   time.Duration `yaml:"tokenTTL" envconfig:"JWT_TTL" default:"24h"`
	BcryptCost int           `yaml:"bcryptCost" envconfig:"BCRYPT_COST" default:"10"`
	// AdminUser and AdminPassword seed the first administrator when none exists.
	AdminUser     string `yaml:"adminUser" envconfig:"ADMIN_USER"`
	AdminPassword string `yaml:"adminPassword" envconfig:"ADMIN_PASSWORD" json:"-"`
}

type Redis struct {
	// Addr empty keeps the login limiter in memory.
	Addr        string        `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password    string        `yaml:"password" envconfig:"REDIS_PASSWORD" json:"-"`
	DB          int           `yaml:"db" envconfig:"REDIS_DB" default:"0"`
	LoginLimit  int           `yaml:"loginLimit" envconfig:"LOGIN_LIMIT" default:"10"`
	LoginWindow time.Duration `yaml:"loginWindow" envconfig:"LOGIN_WINDOW" default:"1m"`
}

type Config struct {
	Server   HTTPServer    `yaml:"server"`
	Database postgres.DB   `yaml:"db"`
	Log      logger.Log    `yaml:"log"`
	Auth     Auth          `yaml:"auth"`
	Kafka    kafka.Config  `yaml:"kafka"`
	Redis    Redis         `yaml:"redis"`
	Mail     mailer.Config `yaml:"mail" json:"-"`
	Upload   upload.Config `yaml:"upload"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
