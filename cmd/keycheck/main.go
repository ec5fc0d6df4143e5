// Command keycheck verifies that post-quantum KEM public and secret keys
// belong together.
//
// Usage:
//
//	keycheck validate --public key.pub --secret key.sec [--scheme Kyber1024]
//	keycheck batch pairs.yaml [--concurrency 8] [--metrics-file out.prom]
//	keycheck schemes
//	keycheck selftest [SCHEME...]
//	keycheck bench [--scheme S] [--iterations N]
//	keycheck version
//
// Exit status is 0 when every pair is valid, 1 when a pair does not match
// and 2 when the check could not be carried out.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
