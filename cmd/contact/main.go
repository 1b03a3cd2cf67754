// Command contact submits the portfolio contact form from a terminal, going
// through the same state machine as the web form.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"portfolio-backend/pkg/contactclient"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		endpoint = flag.String("endpoint", "http://localhost:8080/api/contact", "contact endpoint URL")
		name     = flag.String("name", "", "your name")
		email    = flag.String("email", "", "your email address")
		subject  = flag.String("subject", "", "message subject")
		message  = flag.String("message", "", "message body")
		timeout  = flag.Duration("timeout", 30*time.Second, "request timeout")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	ctrl := contactclient.NewController(
		contactclient.NewClient(*endpoint, nil),
		contactclient.WithOnChange(func(s contactclient.State) {
			fmt.Fprintf(os.Stderr, "status: %s\n", s.Status)
		}),
	)
	defer ctrl.Close()

	ctrl.SetField(contactclient.FieldName, *name)
	ctrl.SetField(contactclient.FieldEmail, *email)
	ctrl.SetField(contactclient.FieldSubject, *subject)
	ctrl.SetField(contactclient.FieldMessage, *message)

	if err := ctrl.Submit(ctx); err != nil {
		if s := ctrl.State(); len(s.Invalid) > 0 {
			fmt.Fprintf(os.Stderr, "missing: %v\n", s.Invalid)
			return 2
		}
		if contactclient.IsNetworkError(err) {
			fmt.Fprintln(os.Stderr, "Something went wrong. Check your connection and try again.")
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	fmt.Println("Message sent! Thank you for reaching out.")
	return 0
}
