package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"seat-reservation/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

type migrateConfig struct {
	DB     config.DBConfig
	DevURL string `envconfig:"ATLAS_DEV_URL" default:"docker://postgres/17/dev"`
	Bin    string `envconfig:"ATLAS_BIN" default:"atlas"`
}

func main() {
	dir := flag.String("dir", "migrations", "directory holding the schema SQL files")
	dryRun := flag.Bool("dry-run", false, "print the planned statements without applying them")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var cfg migrateConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logger.Error("環境変数の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}
	if cfg.DB.User == "" || cfg.DB.DBName == "" {
		logger.Error("DB_USER と DB_NAME は必須です")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(*dir)))
	if err != nil {
		logger.Error("作業ディレクトリの準備に失敗しました", "error", err)
		os.Exit(1)
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), cfg.Bin)
	if err != nil {
		logger.Error("atlas クライアントの初期化に失敗しました", "error", err)
		os.Exit(1)
	}

	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:         cfg.DB.BuildDSN(),
		To:          "file://migrations",
		DevURL:      cfg.DevURL,
		DryRun:      *dryRun,
		AutoApprove: true,
	})
	if err != nil {
		logger.Error("スキーマの適用に失敗しました", "error", err)
		os.Exit(1)
	}

	logger.Info("スキーマを適用しました",
		"database", cfg.DB.DBName,
		"applied", len(res.Changes.Applied),
		"pending", len(res.Changes.Pending),
		"dry_run", *dryRun,
	)
}
