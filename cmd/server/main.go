package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardbank/internal/config"
	"cardbank/internal/db"
	"cardbank/internal/handlers"
	"cardbank/internal/notify"
	"cardbank/internal/queue"
	"cardbank/internal/services"
	"cardbank/internal/store"
	"cardbank/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	publisher, err := notify.NewPublisher(cfg.AMQPURL, cfg.NotificationExchange)
	if err != nil {
		log.Fatalf("failed to connect notification exchange: %v", err)
	}
	defer publisher.Close()

	cards := store.NewCardStore(database)
	transactions := store.NewTransactionStore(database)
	users := store.NewUserStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()
	service := services.NewCardService(txRunner, cards, transactions, users, publisher, hub)

	consumer, err := queue.NewConsumer(cfg.AMQPURL)
	if err != nil {
		log.Fatalf("failed to connect card request queue: %v", err)
	}
	defer consumer.Close()
	cardRequests := queue.NewCardRequestHandler(service, consumer, cfg.CardRequestErrorQueue)
	if err := consumer.Consume(cfg.CardRequestQueue, cardRequests.HandleMessage); err != nil {
		log.Fatalf("failed to start card request consumer: %v", err)
	}

	handler := handlers.New(cfg, service, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("cardbank API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
