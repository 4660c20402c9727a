package main

import (
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shekhar1luitel/quizHub-sub001/internal/container"
	"github.com/shekhar1luitel/quizHub-sub001/internal/router"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		BulkImportHandler: c.BulkImportContainer.Handler,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logrus.WithField("port", port).Info("Starting API server")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
