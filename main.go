package main

import (
	"context"
	"log/slog"
	"os"

	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
	"hermannm.dev/superstore/api"
	"hermannm.dev/superstore/clickhouse"
	"hermannm.dev/superstore/config"
	"hermannm.dev/superstore/csv"
	"hermannm.dev/superstore/dataset"
)

func main() {
	conf, err := config.ReadFromEnv()
	if err != nil {
		log.ErrorCause(err, "failed to read config from env")
		os.Exit(1)
	}

	logLevel := slog.LevelDebug
	if conf.IsProduction {
		logLevel = slog.LevelInfo
	}
	logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: logLevel})
	slog.SetDefault(slog.New(logHandler))

	data, err := loadDataset(conf.DatasetPath)
	if err != nil {
		log.ErrorCause(err, "failed to load dataset")
		os.Exit(1)
	}

	var mirror *clickhouse.Database
	if conf.Store == config.StoreClickHouse {
		mirror, err = setUpClickHouseMirror(conf.ClickHouse, data)
		if err != nil {
			log.ErrorCause(err, "failed to set up ClickHouse mirror")
			os.Exit(1)
		}
	}

	dashboardAPI := api.NewDashboardAPI(data, mirror, conf.API)

	log.Infof("Listening on port %s...", conf.API.Port)
	if err := dashboardAPI.ListenAndServe(); err != nil {
		log.ErrorCause(err, "server stopped")
		os.Exit(1)
	}
}

func loadDataset(datasetPath string) (*dataset.Dataset, error) {
	log.Infof("Loading dataset from %s...", datasetPath)

	file, err := os.Open(datasetPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader, err := csv.NewReader(file)
	if err != nil {
		return nil, err
	}

	data, report, err := dataset.Load(reader)
	if err != nil {
		return nil, err
	}

	if len(report.Dropped) > 0 {
		log.Warnf(
			"Dropped %d of %d rows with malformed values from the dataset",
			len(report.Dropped),
			report.TotalRows,
		)
		for _, dropped := range report.Dropped {
			log.Debugf("Dropped row: %v", dropped)
		}
	}

	log.Infof("Loaded %d records", data.Len())
	return data, nil
}

func setUpClickHouseMirror(
	conf config.ClickHouse,
	data *dataset.Dataset,
) (*clickhouse.Database, error) {
	log.Info("Connecting to ClickHouse...")

	mirror, err := clickhouse.Connect(conf)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := mirror.CreateTable(ctx); err != nil {
		return nil, err
	}

	log.Info("Mirroring dataset into ClickHouse...")
	if err := mirror.InsertDataset(ctx, data); err != nil {
		return nil, err
	}

	return mirror, nil
}
