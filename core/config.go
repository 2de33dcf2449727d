package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EngineMongo  = "mongodb"
	EngineMemory = "memory"
)

type (
	Config struct {
		Env          string
		Debug        bool
		AppName      string
		Build        string
		RollbarToken string
		Database     DatabaseConfig
		Seed         SeedConfig
	}

	DatabaseConfig struct {
		Engine         string
		URI            string
		Name           string
		ConnectTimeout time.Duration
		PingAttempts   int
	}

	// SeedConfig holds the default batch size of every seeder.
	SeedConfig struct {
		Users       int
		Courses     int
		Lessons     int
		Assignments int
		Enrollments int
		Submissions int
		RandomSeed  int64
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "EduHub")
	conf.SetDefault("build", "develop")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("database.engine", EngineMongo)
	conf.SetDefault("database.uri", "mongodb://localhost:27017")
	conf.SetDefault("database.name", "edu_hub")
	conf.SetDefault("database.connectTimeout", 10*time.Second)
	conf.SetDefault("database.pingAttempts", 10)
	conf.SetDefault("seed.users", 20)
	conf.SetDefault("seed.courses", 10)
	conf.SetDefault("seed.lessons", 25)
	conf.SetDefault("seed.assignments", 10)
	conf.SetDefault("seed.enrollments", 15)
	conf.SetDefault("seed.submissions", 12)
	conf.SetDefault("seed.randomSeed", 0)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		conf.SetDefault("database.engine", EngineMemory)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if root, ok := projectRoot(); ok {
		dotEnvPath := filepath.Join(root, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		Database: DatabaseConfig{
			Engine:         CleanString(conf.GetString("database.engine"), true /* lower */),
			URI:            conf.GetString("database.uri"),
			Name:           conf.GetString("database.name"),
			ConnectTimeout: conf.GetDuration("database.connectTimeout"),
			PingAttempts:   conf.GetInt("database.pingAttempts"),
		},
		Seed: SeedConfig{
			Users:       conf.GetInt("seed.users"),
			Courses:     conf.GetInt("seed.courses"),
			Lessons:     conf.GetInt("seed.lessons"),
			Assignments: conf.GetInt("seed.assignments"),
			Enrollments: conf.GetInt("seed.enrollments"),
			Submissions: conf.GetInt("seed.submissions"),
			RandomSeed:  conf.GetInt64("seed.randomSeed"),
		},
	}
}

// projectRoot walks up from the working directory until it finds go.mod.
// go-test runs from the package dir, so a fixed relative path would not do.
func projectRoot() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	currDir := wd
	for {
		if fi, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil && !fi.IsDir() {
			return currDir, true
		}
		newDir := filepath.Dir(currDir)
		if newDir == currDir {
			return "", false
		}
		currDir = newDir
	}
}
