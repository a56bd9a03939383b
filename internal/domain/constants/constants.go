package constants

// Event publisher providers.
const (
	EventProviderLocal    = "local"
	EventProviderGoogle   = "google"
	EventProviderRabbitMQ = "rabbitmq"
)

// Catalog limits.
const (
	DefaultPageSize   = 20
	MaxPageSize       = 50
	FeaturedLimit     = 8
	RelatedLimit      = 4
	RecentOrdersLimit = 10
)

// Fallback bounds reported when the catalog has no products.
const (
	EmptyCatalogMinPrice = 0
	EmptyCatalogMaxPrice = 100
)
