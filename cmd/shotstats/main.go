package main

import (
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/godilite/shotstats/internal/cli"
)

func main() {
	_ = godotenv.Load(".env")
	cli.Execute()
}
