// Command leadctl submits a lead to a running API from the terminal.
//
//	leadctl submit --business Acme --name "Jane Doe" --phone 216-555-0100 --email jane@acme.com
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appconfig "github.com/wolfman30/launch216/internal/config"
	"github.com/wolfman30/launch216/internal/leadclient"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, appconfig.Load()))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, cfg *appconfig.Config) int {
	if len(args) == 0 || args[0] != "submit" {
		fmt.Fprintln(stderr, "usage: leadctl submit --business NAME --name NAME --phone PHONE --email EMAIL [--website URL]")
		return 2
	}

	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var form leadclient.Form
	fs.StringVar(&form.BusinessName, "business", "", "business name (required)")
	fs.StringVar(&form.YourName, "name", "", "contact name (required)")
	fs.StringVar(&form.PhoneNumber, "phone", "", "phone number (required)")
	fs.StringVar(&form.Email, "email", "", "email address (required)")
	fs.StringVar(&form.WebsiteURL, "website", "", "current website")
	baseURL := fs.String("api", cfg.LeadAPIBaseURL, "lead API base URL")
	timeout := fs.Duration("timeout", 15*time.Second, "request timeout")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	client := leadclient.New(*baseURL, leadclient.WithFallbackEmail(cfg.FallbackContactEmail))
	view := &terminalView{out: stdout, err: stderr}
	out := client.Submit(ctx, form, view)

	if out.Result != leadclient.OutcomeSucceeded {
		return 1
	}
	if out.ID != "" {
		fmt.Fprintf(stdout, "delivery id: %s\n", out.ID)
	}
	return 0
}

// terminalView renders client feedback as lines of text.
type terminalView struct {
	out io.Writer
	err io.Writer
}

func (v *terminalView) ShowMessage(kind leadclient.MessageKind, text string) {
	if kind == leadclient.MessageError {
		fmt.Fprintln(v.err, "error:", text)
		return
	}
	fmt.Fprintln(v.out, text)
}

func (v *terminalView) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(v.err, "submitting...")
	}
}

func (v *terminalView) Reset() {}
