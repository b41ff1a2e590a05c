package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/verdantio/agricycle"
)

func main() {
	flow, err := agricycle.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher, messages, closeMessages := agricycle.NewChannelPublisher("fanout", 32)
	defer closeMessages()

	go fanoutWorker("uplink", messages)

	if err := flow.Run(ctx, agricycle.DeliverPublisher(publisher)); err != nil && err != context.Canceled {
		log.Fatalf("runtime error: %v", err)
	}
}

func fanoutWorker(name string, messages <-chan agricycle.PublishedMessage) {
	for msg := range messages {
		fmt.Printf("[%s] forwarding %d bytes from %s at %s\n",
			name, len(msg.Payload), msg.Topic, time.Now().Format(time.RFC3339))
	}
}
