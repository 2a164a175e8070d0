/*Basic command structure*/
package main

import (
	"log"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// context holds global options
type context struct{}

// cli commands / args available
var cli struct {
	Ctx context `embed:""`

	Export exportCmd `cmd:"" help:"Export last month's settled transactions and mail the result."`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	ctx := kong.Parse(&cli)
	err := ctx.Run(&cli.Ctx)
	ctx.FatalIfErrorf(err)
}
