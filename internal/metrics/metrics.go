package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleamarket_http_requests_total",
		Help: "Total number of HTTP requests handled.",
	}, []string{"method", "status"})

	// ProductViews counts product detail reads.
	ProductViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleamarket_product_views_total",
		Help: "Total number of product detail views.",
	})

	// ListingsCreated counts successfully created listings.
	ListingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleamarket_listings_created_total",
		Help: "Total number of listings created.",
	})
)
