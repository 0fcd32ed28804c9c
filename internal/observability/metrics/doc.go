// Package metrics holds the Prometheus business metrics of the article
// service and the account endpoints. HTTP metrics live with the HTTP middleware.
package metrics
