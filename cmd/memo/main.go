package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/memo/cli"
	_ "github.com/viant/scy/kms/blowfish"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Println(flagsErr.Message)
			return
		}
		log.Fatal(err)
	}
}
