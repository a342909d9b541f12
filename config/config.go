package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Root            string   `mapstructure:"root"`
	Timezone        string   `mapstructure:"timezone"`
	DayBoundaryHour int      `mapstructure:"day_boundary_hour"`
	ReadmeName      string   `mapstructure:"readme_name"`
	ReservedDirs    []string `mapstructure:"reserved_dirs"`

	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Scrape  ScrapeConfig  `mapstructure:"scrape"`

	// 기준 시간대(Timezone 값으로 Load 시점에 한 번만 결정된다)
	Location *time.Location `mapstructure:"-"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

type ScrapeConfig struct {
	SolvedacURL     string        `mapstructure:"solvedac_url"`
	AcmicpcURL      string        `mapstructure:"acmicpc_url"`
	UserAgent       string        `mapstructure:"user_agent"`
	SourceInterval  time.Duration `mapstructure:"source_interval"`
	ProblemInterval time.Duration `mapstructure:"problem_interval"`
	SolvedacTimeout time.Duration `mapstructure:"solvedac_timeout"`
	AcmicpcTimeout  time.Duration `mapstructure:"acmicpc_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("timezone", "Asia/Seoul")
	v.SetDefault("day_boundary_hour", 4)
	v.SetDefault("readme_name", "README.md")
	// 풀이 폴더와 같은 위치에 있는 이 저장소의 폴더들
	v.SetDefault("reserved_dirs", []string{"docs", "scripts", "logs", "cmd", "config", "logger", "metrics", "scrape", "solutions", "study", "utils"})

	v.SetDefault("log.file", "logs/study.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 30)

	v.SetDefault("metrics.textfile", "")

	v.SetDefault("scrape.solvedac_url", "https://solved.ac")
	v.SetDefault("scrape.acmicpc_url", "https://www.acmicpc.net")
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("scrape.source_interval", time.Second)
	v.SetDefault("scrape.problem_interval", 2*time.Second)
	v.SetDefault("scrape.solvedac_timeout", 10*time.Second)
	v.SetDefault("scrape.acmicpc_timeout", 15*time.Second)
}

// Load 설정을 읽는다. 설정 파일(config.yaml)과 .env 파일은 없어도 되며,
// 이 경우 기본값과 STUDY_ 로 시작하는 환경변수만 사용된다.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env 파일이 없습니다. 환경변수를 그대로 사용합니다.")
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("STUDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("설정 파일을 읽을 수 없습니다: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("설정 값을 해석할 수 없습니다: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("지원하지 않는 시간대입니다(timezone:%s): %w", c.Timezone, err)
	}
	c.Location = loc

	if c.DayBoundaryHour < 0 || c.DayBoundaryHour > 23 {
		return fmt.Errorf("day_boundary_hour 값은 0~23 사이여야 합니다(day_boundary_hour:%d)", c.DayBoundaryHour)
	}
	if c.ReadmeName == "" {
		return errors.New("readme_name 값은 빈 문자열을 허용하지 않습니다")
	}

	return nil
}
