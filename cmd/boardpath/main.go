// Command boardpath plans robot routes on ASCII puzzle boards.
//
//	boardpath route --map board.txt --to 5,3
//	boardpath watch --map board.txt --to 5,3
//	boardpath components --map board.txt
//	boardpath render --map board.txt
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
