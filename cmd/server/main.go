package main

import (
	"net/http"

	logrus "github.com/sirupsen/logrus"

	"crown_transport/internal/billing"
	"crown_transport/internal/config"
	"crown_transport/internal/controllers"
	"crown_transport/internal/logger"
	"crown_transport/internal/middleware"
	"crown_transport/internal/routes"
	"crown_transport/internal/sequence"
	"crown_transport/internal/store"
)

func main() {
	settings := config.LoadSettings()

	// Initialize structured logging to file
	logger.Setup(settings)
	middleware.SetSecret(settings.JWTSecret)

	// Connect to the database
	config.InitDB()

	repo := store.New(config.DB)
	gen := sequence.NewGenerator(sequence.NewGormStore(config.DB), sequence.WithSuffix(settings.InvoiceSuffix))
	agg := billing.NewAggregator(repo,
		billing.WithDefaultVAT(settings.DefaultVATRate),
		billing.WithNumberSuffix(gen.Suffix()),
	)

	r := routes.SetupRouter(
		controllers.NewScheduleController(repo),
		controllers.NewInvoiceController(repo, agg, gen),
	)

	// Wrap with CORS
	handler := middleware.EnableCORS(r, settings.AllowedOrigins)

	logrus.WithField("addr", settings.ServerAddr).Info("server starting")
	if err := http.ListenAndServe(settings.ServerAddr, handler); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
