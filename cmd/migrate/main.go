package main

import (
	"database/sql"
	_ "embed"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

func main() {
	_ = godotenv.Load()

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate up")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.Arg(0) != "up" {
		flag.Usage()
		os.Exit(2)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "migrate: DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: open: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: ping: %v\n", err)
		os.Exit(1)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: apply schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("migrate: schema applied")
}
