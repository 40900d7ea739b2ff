package main

import (
	"log"
	"os"

	inmemdb "github.com/VarunPasupunuri/mind-sprouts/storage/database/inmem"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up storage
	db := inmemdb.Open()
	if _, _, err := inmemdb.Seed(db); err != nil {
		logger.Fatal(err)
	}

	// start CLI
	cli := commandLine{
		usrRepo: inmemdb.NewUserRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
