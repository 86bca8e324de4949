// contactctl is a CLI for exercising a running portfolio server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Faultbox/morphfolio/internal/contact"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "submit", "send":
		cmdSubmit(args)
	case "health":
		cmdHealth(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`contactctl - portfolio contact form client

Usage:
  contactctl <command> [options]

Commands:
  submit -name N -email E -message M [-server URL]   Submit the contact form
  health [-server URL]                               Check server health

Examples:
  contactctl submit -name Ada -email ada@example.com -message "Loved the blob!"
  contactctl health -server http://localhost:8080`)
}

func cmdSubmit(args []string) {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	server := fs.String("server", "http://localhost:8080", "Server base URL")
	name := fs.String("name", "", "Your name")
	email := fs.String("email", "", "Your email")
	message := fs.String("message", "", "Message text")
	timeout := fs.Duration("timeout", 15*time.Second, "Request timeout")
	_ = fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Println("Sending your message...")
	client := contact.NewClient(*server, &http.Client{Timeout: *timeout})
	err := client.Submit(ctx, contact.Message{Name: *name, Email: *email, Message: *message})

	if err != nil {
		fmt.Fprintln(os.Stderr, contact.UserMessage(err))
		fmt.Fprintf(os.Stderr, "  (%v)\n", err)
		os.Exit(1)
	}
	fmt.Println(contact.UserMessage(nil))
}

func cmdHealth(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	server := fs.String("server", "http://localhost:8080", "Server base URL")
	_ = fs.Parse(args)

	hc := &http.Client{Timeout: 5 * time.Second}
	resp, err := hc.Get(*server + "/healthz")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s  status=%v streams=%v\n", resp.Status, body["status"], body["streams"])
}
