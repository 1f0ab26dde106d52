package workers

import (
	"context"
	"log"

	"token-icon-service/internal/models"
	"token-icon-service/internal/services"
)

// PrewarmWorker resolves popular (symbol, size) pairs so their icons
// are cached before the next user asks.
type PrewarmWorker struct {
	messages chan []byte
	icons    *services.IconService
}

func NewPrewarmWorker(messages chan []byte, icons *services.IconService) *PrewarmWorker {
	return &PrewarmWorker{messages: messages, icons: icons}
}

func (w *PrewarmWorker) Start(ctx context.Context) {
	log.Println("PrewarmWorker started")

	for {
		select {
		case msg := <-w.messages:
			w.handle(msg)

		case <-ctx.Done():
			log.Println("PrewarmWorker stopped")
			return
		}
	}
}

func (w *PrewarmWorker) handle(msg []byte) {
	req, ok := decodePopular(msg)
	if !ok {
		return
	}

	symbol := req.Args["symbol"]
	size := req.Args["size"]
	if symbol == "" || !models.ValidSize(size) {
		log.Printf("PrewarmWorker: invalid args %v", req.Args)
		return
	}

	// ResolveImage populates the cache through its own write-back;
	// an already-warm pair is a cheap cache hit.
	if _, err := w.icons.ResolveImage(symbol, size); err != nil {
		log.Printf("PrewarmWorker: failed to warm %s/%s: %v", symbol, size, err)
		return
	}
	log.Printf("PrewarmWorker: warmed %s/%s", symbol, size)
}
