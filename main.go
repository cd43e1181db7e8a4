// TaskListWebService is a web service for managing personal task lists.
//
// Users register and log in, create named lists, and manage the tasks inside
// them (title, optional description, optional due date, completion flag).
// Every read and write is scoped to the authenticated user. Mutating requests
// leave a one-shot flash notice that the next index read returns exactly once.
// The service stores its data in a MySQL database, exposes Prometheus metrics
// for monitoring, and applies a rate limit of 2 events per second with a burst
// of 20 to protect against abuse.
//
// The following endpoints are available:
//
//  1. POST /register - Register a new user
//  2. POST /login - Log in and receive a token
//  3. GET /lists - Get the requester's lists with task counts
//  4. POST /lists - Create a new list
//  5. PUT /lists/{id} - Update a list
//  6. DELETE /lists/{id} - Delete a list and its tasks
//  7. GET /tasks - Get a page of the requester's tasks
//  8. POST /tasks - Create a new task
//  9. PUT /tasks/{id} - Update a task
//  10. DELETE /tasks/{id} - Delete a task
//  11. GET /tasks/export - Export the requester's tasks (json, csv or pdf)
//  12. GET /web/lists, GET /web/tasks - Browser pages driving the API
//  13. GET /metrics - Display Prometheus metrics
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"TaskListWebService/handlers"
	"TaskListWebService/response"
	"TaskListWebService/web"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	limiter      = rate.NewLimiter(2, 20)
	errorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tasklist_errors_total",
		Help: "Total number of errors occurred in the application.",
	}, []string{"endpoint"})
	endPointCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tasklist_endpoint_calls_total",
		Help: "Total number of calls per endpoint.",
	}, []string{"endpoint"})
	log = logrus.New()
)

// A struct type that represents a handler function with metrics.
type HandlerFuncWithMetrics func(http.ResponseWriter, *http.Request, *prometheus.CounterVec, *prometheus.CounterVec)

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Error loading .env file")
	}
	log.SetFormatter(&logrus.JSONFormatter{})
	prometheus.MustRegister(errorCounter)
	prometheus.MustRegister(endPointCounter)
	handlers.Initialize()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", MetricsHandler(handlers.RegisterHandler, endPointCounter, errorCounter))
	mux.HandleFunc("POST /login", MetricsHandler(handlers.LoginHandler, endPointCounter, errorCounter))

	mux.HandleFunc("GET /lists", MetricsHandler(handlers.ListIndexHandler, endPointCounter, errorCounter))
	mux.HandleFunc("POST /lists", MetricsHandler(handlers.CreateListHandler, endPointCounter, errorCounter))
	mux.HandleFunc("PUT /lists/{id}", MetricsHandler(handlers.UpdateListHandler, endPointCounter, errorCounter))
	mux.HandleFunc("DELETE /lists/{id}", MetricsHandler(handlers.DeleteListHandler, endPointCounter, errorCounter))

	mux.HandleFunc("GET /tasks", MetricsHandler(handlers.TaskIndexHandler, endPointCounter, errorCounter))
	mux.HandleFunc("GET /tasks/export", MetricsHandler(handlers.ExportTasksHandler, endPointCounter, errorCounter))
	mux.HandleFunc("POST /tasks", MetricsHandler(handlers.CreateTaskHandler, endPointCounter, errorCounter))
	mux.HandleFunc("PUT /tasks/{id}", MetricsHandler(handlers.UpdateTaskHandler, endPointCounter, errorCounter))
	mux.HandleFunc("DELETE /tasks/{id}", MetricsHandler(handlers.DeleteTaskHandler, endPointCounter, errorCounter))

	mux.HandleFunc("GET /web/lists", web.ListsPage)
	mux.HandleFunc("GET /web/tasks", web.TasksPage)
	mux.HandleFunc("GET /{$}", func(res http.ResponseWriter, req *http.Request) {
		http.Redirect(res, req, "/web/lists", http.StatusFound)
	})
	mux.HandleFunc("GET /health", func(res http.ResponseWriter, req *http.Request) {
		writeStatus(res, "ok")
	})

	// Start the server
	mux.Handle("GET /metrics", promhttp.Handler())
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("Server listening on port " + port)
	http.ListenAndServe(":"+port, requestID(mux))
}

func writeStatus(res http.ResponseWriter, status string) {
	res.Header().Set("Content-Type", "application/json")
	json.NewEncoder(res).Encode(map[string]string{"status": status})
}

// requestID assigns each request an id, echoes it in the X-Request-ID header
// and logs the request with it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		res.Header().Set("X-Request-ID", id)
		log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     req.Method,
			"path":       req.URL.Path,
		}).Info("request")
		next.ServeHTTP(res, req)
	})
}

// rateLimiter is a middleware function that implements rate limiting for HTTP requests.
// It takes a `next` function as a parameter, which is the handler function to be called if the request is allowed.
// If the request is not allowed due to rate limiting, it returns a JSON response with an error message and HTTP status code 429 (Too Many Requests).
func rateLimiter(next HandlerFuncWithMetrics) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		if !limiter.Allow() {
			message := response.Message{
				Status: "Request Failed",
				Body:   "The API is at capacity, try again later.",
			}
			res.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(res).Encode(&message)
			return
		}
		next(res, req, endPointCounter, errorCounter)
	})
}

// MetricsHandler is a middleware function that wraps the provided handler function
// with metrics collection and rate limiting capabilities.
// It takes in a handler function and Prometheus counter vectors for endpoint
// and error metrics, and returns an http.HandlerFunc.
func MetricsHandler(handlerFunc HandlerFuncWithMetrics, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		rateLimiter(handlerFunc).ServeHTTP(res, req)
	}
}
