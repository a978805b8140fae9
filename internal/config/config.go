package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type VtexConfig struct {
	BaseUrl    string `yaml:"base_url" env-default:"https://senffnet.vtexcommercestable.com.br"`
	AppKey     string `yaml:"app_key" env:"VTEX_APP_KEY" env-required:"true"`
	AppToken   string `yaml:"app_token" env:"VTEX_APP_TOKEN" env-required:"true"`
	TimeoutSec int    `yaml:"timeout_sec" env-default:"30"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" env-default:"smtp.skymail.net.br"`
	Port     int    `yaml:"port" env-default:"465"`
	User     string `yaml:"user" env:"SMTP_USER" env-required:"true"`
	Password string `yaml:"password" env:"SMTP_PASSWORD" env-required:"true"`
}

type ReportConfig struct {
	SellerId    string `yaml:"seller_id" env-default:"farmaconde"`
	SellersFile string `yaml:"sellers_file" env-default:"config/email_farmaconde.xlsx"`
	RawDir      string `yaml:"raw_dir" env-default:"output/bruto"`
	CircDir     string `yaml:"circ_dir" env-default:"circularizacao"`
	// MaxWorkers 0 means min(32, 4 x GOMAXPROCS)
	MaxWorkers int `yaml:"max_workers" env-default:"0"`
}

type TelegramConfig struct {
	ApiKey  string  `yaml:"api_key" env-default:""`
	ChatIds []int64 `yaml:"chat_ids"`
}

type Config struct {
	Vtex     VtexConfig     `yaml:"vtex"`
	Smtp     SmtpConfig     `yaml:"smtp"`
	Report   ReportConfig   `yaml:"report"`
	Telegram TelegramConfig `yaml:"telegram"`
	Env      string         `yaml:"env" env-default:"local"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("config: %s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
