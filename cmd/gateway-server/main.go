package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dg-guptadaksh/commway/internal/boot"
	"github.com/dg-guptadaksh/commway/internal/handlers"
	"github.com/dg-guptadaksh/commway/internal/mailer"
	"github.com/dg-guptadaksh/commway/internal/service/gateway"
	"github.com/dg-guptadaksh/commway/internal/store"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"
)

const serviceName = "CommWay Gateway"

type GatewayService interface {
	handlers.GatewayService
}

type config struct {
	boot.Config
	gatewayService GatewayService
	messageStore   interface{ Close() error }
}

func newConfig(bootConfig *boot.Config) *config {
	messageStore, err := store.New(bootConfig)
	if err != nil {
		log.Fatalf("creating message store: %+v", err)
	}

	var transport mailer.Transport
	if bootConfig.SMTP.Host == "" {
		if bootConfig.IsProduction() {
			log.Fatal("SMTP_SERVER must be configured in production")
		}
		transport = mailer.NewLogTransport()
	} else {
		transport = mailer.NewSMTPTransport(mailer.SMTPConfig{
			Host:     bootConfig.SMTP.Host,
			Port:     bootConfig.SMTP.Port,
			Username: bootConfig.SMTP.Username,
			Password: bootConfig.SMTP.Password,
			Timeout:  bootConfig.SMTP.Timeout,
		})
	}

	dispatcher := mailer.New(transport, bootConfig.SMTP.SenderName)
	gatewayService := gateway.New(messageStore, dispatcher)

	log.Infof("mail transport: %s", dispatcher.TransportName())

	return &config{*bootConfig, gatewayService, messageStore}
}

func main() {
	godotenv.Load()

	bootConfig, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	config := newConfig(bootConfig)
	defer config.messageStore.Close()

	server := echo.New()
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("commway"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(config.Server.Origins, ","),
		AllowHeaders: headers,
	}))

	server.POST("/send-message/", handlers.SendMessage(config.gatewayService))
	server.GET("/messages/:messageID", handlers.GetMessage(config.gatewayService))
	server.GET("/health/", handlers.Health(serviceName))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":" + config.Server.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(":" + config.Server.Port); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
