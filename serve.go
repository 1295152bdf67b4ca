package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"recruitment-backend/config"
	apiv1 "recruitment-backend/controllers/v1"
	"recruitment-backend/fiberlog"
	"recruitment-backend/initializers"
	"recruitment-backend/middleware"
)

// jsonBodyLimit предел тела json запросов, файлы документов грузятся отдельным маршрутом
const jsonBodyLimit = 5 * 1024 * 1024

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		serve()
		return nil
	},
}

func serve() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // limit of 100MB
	})
	app.Use(fiberRecover.New())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	//api
	apiV1 := fiber.New()
	apiV1.Use(requestid.New())
	apiV1.Use(middleware.WithBodyLimit(jsonBodyLimit, "/upload"))
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiv1.InitApplicantApiRouters(apiV1)
	apiv1.InitJobApplicantApiRouters(apiV1)
	apiv1.InitInterviewApiRouters(apiV1)
	apiv1.InitInterviewRoundApiRouters(apiV1)
	apiv1.InitPipelineApiRouters(apiV1)
	apiv1.InitVisaProcessApiRouters(apiV1)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		_ = <-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
