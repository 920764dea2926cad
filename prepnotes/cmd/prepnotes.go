// Command-line interface for prepnotes maintenance tasks
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"prepnotes/prepnotes/config"
	"prepnotes/prepnotes/sources/psql"
	"prepnotes/prepnotes/sources/psql/dao"
	"prepnotes/prepnotes/utils/logging"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	args := os.Args[1:]
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		db := mustConnect(ctx, cfg)
		defer db.Close()
		fmt.Println("schema is up to date")
	case "seed":
		db := mustConnect(ctx, cfg)
		defer db.Close()
		catDAO := dao.NewCategoryDAO(db.DB)
		if err := catDAO.Seed(ctx); err != nil {
			logging.ErrorLogger.Error("category seed error", zap.Error(err))
			os.Exit(1)
		}
		fmt.Println("categories seeded")
	default:
		usage()
		os.Exit(1)
	}
}

// mustConnect opens the database; NewDatabase runs migrations on connect.
func mustConnect(ctx context.Context, cfg config.Config) *psql.Database {
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	return db
}

func usage() {
	fmt.Println("prepnotes usage:")
	fmt.Println("  prepnotes migrate   # create/update the schema")
	fmt.Println("  prepnotes seed      # insert the reference categories")
}
