package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/searchandrescuegg/lifeline/internal/notify"
)

func main() {
	var (
		to      = flag.String("to", "", "Recipient phone number, e.g. +919876543210")
		message = flag.String("message", "", "Message to send")
	)
	flag.Parse()

	if *to == "" || *message == "" {
		fmt.Println("Usage: go run main.go -to <phone> -message <message>")
		fmt.Println("Example: go run main.go -to '+919876543210' -message 'Test dispatch update'")
		os.Exit(1)
	}

	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_WHATSAPP_NUMBER")
	if from == "" {
		from = "whatsapp:+14155238886"
	}

	gateway := notify.NewGateway(accountSID, authToken, from, 10*time.Second, nil)

	result := gateway.SendUpdate(context.Background(), *to, "TEST", "TEST", *message)

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal result: %v", err)
	}
	fmt.Println(string(jsonBytes))
}
