// schema 輸出資料模型對應的 DDL，供 atlas 做 schema 比對與遷移
//
//	atlas schema inspect --url "external_schema://gorm"
package main

import (
	"fmt"
	"io"
	"os"

	"ariga.io/atlas-provider-gorm/gormschema"

	"vlavem/models"
)

func main() {
	stmts, err := gormschema.New("postgres").Load(
		&models.Auction{},
		&models.Category{},
		&models.Client{},
		&models.Lot{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}
	io.WriteString(os.Stdout, stmts)
}
