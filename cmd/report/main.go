package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"
	"vtexreport/bot"
	"vtexreport/internal/config"
	"vtexreport/internal/mailer"
	"vtexreport/internal/report"
	"vtexreport/internal/vtex"
	"vtexreport/internal/xlsx"
	"vtexreport/lib/logger"
	"vtexreport/lib/sl"
)

const logFileName = "vtexreport.log"

func main() {
	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "logs", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)

	if err := os.MkdirAll(*logPath, 0755); err != nil {
		slog.Error("creating log directory", sl.Err(err))
		os.Exit(1)
	}
	log := logger.Setup(conf.Env, filepath.Join(*logPath, logFileName))

	if conf.Telegram.ApiKey != "" {
		notifier, err := bot.NewNotifier(conf.Telegram.ApiKey, conf.Telegram.ChatIds, log)
		if err != nil {
			log.Warn("telegram alerts disabled", sl.Err(err))
		} else {
			log = slog.New(logger.NewTelegramHandler(log.Handler(), notifier, slog.LevelWarn))
		}
	}

	log.Info("starting vtexreport",
		slog.String("config", *configPath),
		slog.String("env", conf.Env),
		sl.Secret("app_key", conf.Vtex.AppKey))

	for _, dir := range []string{conf.Report.RawDir, conf.Report.CircDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Error("creating output directory", slog.String("dir", dir), sl.Err(err))
			os.Exit(1)
		}
	}

	client := vtex.NewClient(vtex.Config{
		BaseUrl:    conf.Vtex.BaseUrl,
		AppKey:     conf.Vtex.AppKey,
		AppToken:   conf.Vtex.AppToken,
		Timeout:    time.Duration(conf.Vtex.TimeoutSec) * time.Second,
		MaxWorkers: conf.Report.MaxWorkers,
	}, log)
	store := xlsx.NewStore(log)
	mail := mailer.New(mailer.Config{
		Host:     conf.Smtp.Host,
		Port:     conf.Smtp.Port,
		User:     conf.Smtp.User,
		Password: conf.Smtp.Password,
	}, log)

	service := report.New(conf.Report, client, store, store, mail, log)
	if err := service.Run(context.Background()); err != nil {
		log.Error("report run failed", sl.Err(err))
		os.Exit(1)
	}
}
