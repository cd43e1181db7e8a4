package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"TaskListWebService/models"
	"TaskListWebService/response"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// CreateToken generates a JWT token carrying the given user id.
// The token is signed using the HS256 algorithm and includes an expiration time of 24 hours.
// It returns the generated token string in the format "Bearer <token>".
func CreateToken(userId int) (string, error) {
	claims := &models.Claims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return "Bearer " + tokenString, nil
}

// authorize verifies the bearer token in the Authorization header and
// returns the id of the requesting user. Every list and task handler scopes
// its queries by this id.
func authorize(req *http.Request) (int, error) {
	header := req.Header.Get("Authorization")
	if header == "" {
		return 0, fmt.Errorf("missing authorization header")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid || claims.UserId == 0 {
		return 0, fmt.Errorf("invalid token")
	}
	return claims.UserId, nil
}

// RegisterHandler handles a new user registration.
// It keeps track of the number of requests or errors using Prometheus counters.
// It reads the username and password from the request body, validates them,
// and stores the user with a bcrypt hash of the password.
//
// Example request body:
//
//	{
//	  "username": "linda",
//	  "password": "123456"
//	}
//
// If the username is already taken, the response status is set to Conflict.
func RegisterHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/register").Inc()
	var credentials models.Credentials
	err := json.NewDecoder(req.Body).Decode(&credentials)
	if err != nil {
		errorCounter.WithLabelValues("/register").Inc()
		http.Error(res, "Invalid request body", http.StatusBadRequest)
		return
	}
	credentials.Username = strings.TrimSpace(credentials.Username)
	err = validate.Struct(credentials)
	if err != nil {
		errorCounter.WithLabelValues("/register").Inc()
		writeJSON(res, http.StatusUnprocessableEntity, response.NewValidationFailure(err))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		errorCounter.WithLabelValues("/register").Inc()
		http.Error(res, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	// Uniqueness is enforced by the uniq_username key so two concurrent
	// registrations of the same name cannot both succeed.
	result, err := db.Exec("INSERT INTO users(username, password_hash) VALUES(?, ?)", credentials.Username, string(hash))
	if err != nil {
		errorCounter.WithLabelValues("/register").Inc()
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			writeJSON(res, http.StatusConflict, response.ErrorResponse{Error: "Username already exists"})
			return
		}
		http.Error(res, "Failed to register user", http.StatusInternalServerError)
		return
	}
	id, _ := result.LastInsertId()

	log.WithFields(logrus.Fields{
		"operation": "register user",
		"request":   "POST /register",
		"user_id":   id,
	}).Info("Processing request")
	writeJSON(res, http.StatusCreated, models.User{Id: int(id), Username: credentials.Username})
}

// LoginHandler handles the login request and generates a token for registered users.
// It keeps track of the number of requests or errors using Prometheus counters.
// It reads the username and password from the request body and compares the
// password against the stored bcrypt hash.
//
// Example request body:
//
//	{
//	  "username": "linda",
//	  "password": "123456"
//	}
//
// If the credentials are invalid, the response status is set to Unauthorized.
// Otherwise the token is returned in the response body:
//
//	{
//	  "token": "Bearer <token>"
//	}
func LoginHandler(res http.ResponseWriter, req *http.Request, endPointCounter *prometheus.CounterVec, errorCounter *prometheus.CounterVec) {
	endPointCounter.WithLabelValues("/login").Inc()
	var credentials models.Credentials
	err := json.NewDecoder(req.Body).Decode(&credentials)
	if err != nil {
		errorCounter.WithLabelValues("/login").Inc()
		http.Error(res, "Invalid request body", http.StatusBadRequest)
		return
	}

	var user models.User
	err = db.QueryRow("SELECT id, username, password_hash FROM users WHERE username = ?", strings.TrimSpace(credentials.Username)).
		Scan(&user.Id, &user.Username, &user.PasswordHash)
	if err == sql.ErrNoRows {
		errorCounter.WithLabelValues("/login").Inc()
		http.Error(res, "Invalid username or password", http.StatusUnauthorized)
		return
	} else if err != nil {
		errorCounter.WithLabelValues("/login").Inc()
		http.Error(res, "Database error", http.StatusInternalServerError)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)) != nil {
		errorCounter.WithLabelValues("/login").Inc()
		log.WithFields(logrus.Fields{
			"operation": "login user",
			"request":   "POST /login",
		}).Error("Invalid credentials")
		http.Error(res, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	tokenString, err := CreateToken(user.Id)
	if err != nil {
		errorCounter.WithLabelValues("/login").Inc()
		log.WithFields(logrus.Fields{
			"operation": "login user",
			"request":   "POST /login",
		}).Error("error with creating token")
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.WithFields(logrus.Fields{
		"operation": "login user",
		"request":   "POST /login",
		"user_id":   user.Id,
	}).Info("Processing request")
	writeJSON(res, http.StatusOK, map[string]string{"token": tokenString})
}
