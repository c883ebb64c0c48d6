package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/horgh/catchat/internal/client"
	"github.com/horgh/catchat/internal/display"
	"github.com/horgh/catchat/internal/message"
	"github.com/horgh/catchat/internal/queue"
)

func main() {
	log.SetFlags(0)

	args, err := getArgs(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatal(err)
	}

	cfg, err := buildConfig(args)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, args.Interactive); err != nil {
		stop()
		os.Exit(1)
	}
}

// run connects and chats until the connection ends, the person aborts at the
// prompt, or ctx is done.
//
// It returns an error only if the connection failed. The error has been shown
// already.
func run(ctx context.Context, cfg Config, interactive bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printer := display.NewPrinter(os.Stdout, cfg.Nick, cfg.Raw)

	conn, err := connect(ctx, cfg)
	if err != nil {
		printer.Fatal(err)
		return err
	}

	inbound := queue.New[message.Message]()
	outbound := queue.New[string]()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		// Keep going after ctx ends so we show everything we received.
		if err := printer.Run(context.Background(), inbound); err != nil {
			log.Printf("Unable to display messages: %s", err)
		}
	}()

	if interactive {
		reader := newLineReader("> ")
		defer func() {
			if err := reader.Close(); err != nil {
				log.Printf("Problem closing input: %s", err)
			}
		}()

		// Not waited for. It may be blocked reading the terminal when we are done.
		go inputLoop(ctx, reader, outbound, cancel)
	}

	c := &client.Client{
		Nick:         cfg.Nick,
		Channel:      cfg.Channel,
		RealName:     cfg.RealName,
		PollInterval: cfg.PollInterval,
		WriteTimeout: cfg.WriteTimeout,
	}

	err = c.Run(ctx, conn, inbound, outbound)

	wg.Wait()

	if client.IsFatal(err) {
		printer.Fatal(err)
		return err
	}

	return nil
}
