package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/verdantio/agricycle/pkg/agricycle"
)

func main() {
	flow, err := agricycle.Conf("../../data/config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	callback := func(topic string, payload []byte) error {
		fmt.Printf("%s topic=%s bytes=%d\n%s\n",
			time.Now().Format(time.RFC3339Nano),
			topic,
			len(payload),
			payload,
		)
		return nil
	}

	if err := flow.Run(ctx, agricycle.DeliverCallback("stdout", callback)); err != nil && err != context.Canceled {
		log.Fatalf("runtime error: %v", err)
	}
}
