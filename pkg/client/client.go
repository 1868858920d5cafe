package client

import "time"

// Client bundles the typed upstream clients behind one backend connection.
type Client struct {
	HTTP         *HttpClient
	Appointments *AppointmentClient
	Reviews      *ReviewClient
	Availability *AvailabilityClient
	Payments     *PaymentClient
	Users        *UserClient
	Catalog      *CatalogClient
}

func New(baseURL string, timeout time.Duration) *Client {
	httpClient := NewHttpClient(baseURL, timeout)
	return &Client{
		HTTP:         httpClient,
		Appointments: NewAppointmentClient(httpClient),
		Reviews:      NewReviewClient(httpClient),
		Availability: NewAvailabilityClient(httpClient),
		Payments:     NewPaymentClient(httpClient),
		Users:        NewUserClient(httpClient),
		Catalog:      NewCatalogClient(httpClient),
	}
}
