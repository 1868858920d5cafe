package main

import (
	appointmenthandler "salongate/internal/appointments/handler"
	appointmentservice "salongate/internal/appointments/service"
	appointmentvalidator "salongate/internal/appointments/validator"
	availabilityhandler "salongate/internal/availability/handler"
	availabilityservice "salongate/internal/availability/service"
	cataloghandler "salongate/internal/catalog/handler"
	catalogservice "salongate/internal/catalog/service"
	catalogvalidator "salongate/internal/catalog/validator"
	paymenthandler "salongate/internal/payments/handler"
	paymentservice "salongate/internal/payments/service"
	paymentvalidator "salongate/internal/payments/validator"
	reviewhandler "salongate/internal/reviews/handler"
	reviewservice "salongate/internal/reviews/service"
	reviewvalidator "salongate/internal/reviews/validator"
	"salongate/pkg/app"
	"salongate/pkg/audit"
	"salongate/pkg/config"
	"salongate/pkg/contracts"
	"salongate/pkg/kafka"
	kafka_config "salongate/pkg/kafka/config"
)

const ServiceName = "gateway"

func main() {
	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()

	cfg.Log.Info("Starting appointment gateway")

	if cfg.BackendWait > 0 {
		if err := cfg.Client.HTTP.WaitForHealthy(cfg.BackendWait); err != nil {
			cfg.Log.Warn("Backend not healthy at startup, continuing anyway", "error", err)
		}
	}

	serverApp := app.NewApplication()
	recorder := initRecorder(cfg, serverApp)

	healthHandler := appointmenthandler.NewHealthHandler(cfg.Client.HTTP, cfg.Log)
	serverApp.SetApp(cfg, healthHandler, initHandlers(cfg, recorder)...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, recorder audit.Recorder) []contracts.Handler {
	appointmentSvc := appointmentservice.NewAppointmentService(
		cfg.Client.Appointments,
		appointmentvalidator.NewAppointmentValidator(cfg.Log),
		recorder,
		cfg.Log,
	)
	reviewSvc := reviewservice.NewReviewService(
		cfg.Client.Reviews,
		cfg.Client.Appointments,
		reviewvalidator.NewReviewValidator(cfg.Log),
		recorder,
		cfg.Log,
	)
	availabilitySvc := availabilityservice.NewAvailabilityService(cfg.Client.Availability, cfg.Log)
	catalogSvc := catalogservice.NewCatalogService(
		cfg.Client.Catalog,
		catalogvalidator.NewCatalogValidator(cfg.Log),
		cfg.Log,
	)
	paymentSvc := paymentservice.NewPaymentService(
		cfg.Client.Payments,
		paymentvalidator.NewPaymentValidator(cfg.Log),
		cfg.Log,
	)

	cfg.Log.Info("Gateway services initialized", "backend", cfg.BackendBaseURL)

	return []contracts.Handler{
		appointmenthandler.NewAppointmentHandler(appointmentSvc, cfg.Log),
		reviewhandler.NewReviewHandler(reviewSvc, cfg.Log),
		availabilityhandler.NewAvailabilityHandler(availabilitySvc, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentSvc, cfg.Log),
		cataloghandler.NewCatalogHandler(catalogSvc, cfg.Log),
	}
}

func initRecorder(cfg *config.Config, serverApp *app.Application) audit.Recorder {
	if !cfg.AuditEnabled {
		cfg.Log.Info("Audit trail disabled")
		return audit.NopRecorder{}
	}

	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer := kafka.NewProducer(kafkaCfg, cfg.Log)
	serverApp.OnShutdown(producer.Close)

	cfg.Log.Info("Audit trail enabled", "topic", cfg.AuditTopic, "brokers", kafkaCfg.Brokers)
	return audit.NewKafkaRecorder(producer, cfg.AuditTopic, cfg.Log)
}
