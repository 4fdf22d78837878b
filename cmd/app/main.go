package main

import (
	"time"

	"github.com/driveline/driveline-core/injector"
	appErrors "github.com/driveline/driveline-core/internal/app/errors"
	"github.com/driveline/driveline-core/internal/app/pkg"
	"github.com/driveline/driveline-core/internal/infrastructures"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/sirupsen/logrus"
)

func main() {
	config := infrastructures.LoadConfig()
	infrastructures.InitLogger()

	app, err := injector.InitializeApplication()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	router := fiber.New(fiber.Config{
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return pkg.ErrorResponse(c, err)
		},
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Disposition",
		MaxAge:        300,
	}))

	// State-changing requests must echo the forgery token; safe methods
	// pass through untouched.
	router.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:X-Csrf-Token",
		CookieName:     "dl_csrf",
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		Expiration:     time.Hour,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return pkg.ErrorResponse(c, appErrors.NewForbiddenError("Invalid or missing forgery token"))
		},
	}))

	app.RegisterRoutes(router)

	logrus.Fatal(router.Listen(config.LISTEN_ADDRESS))
}
