package main

import (
	"database/sql"
	"net/http"
	"os"

	"kalakriti/controllers"
	"kalakriti/driver"
	"kalakriti/payments"
	"kalakriti/storage"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

var db *sql.DB

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, relying on environment")
	}
	if os.Getenv("SECRET") == "" {
		log.Fatal("SECRET variable is not set")
	}

	db = driver.ConnectDB()
	defer db.Close()

	provider, err := payments.NewProvider()
	if err != nil {
		log.Fatalf("Error configuring payment provider: %v", err)
	}
	uploader, err := storage.NewUploader()
	if err != nil {
		log.Fatalf("Error configuring file storage: %v", err)
	}

	controller := controllers.Controller{}
	eventController := controllers.EventController{}
	registrationController := controllers.RegistrationController{}
	paymentController := controllers.PaymentController{Provider: provider}
	assetController := controllers.AssetController{Uploader: uploader}
	resultController := controllers.ResultController{}
	reviewController := controllers.ReviewController{}
	queryController := controllers.QueryController{}
	adminController := controllers.AdminController{}

	router := mux.NewRouter()

	router.HandleFunc("/signup", controller.Signup(db)).Methods("POST")
	router.HandleFunc("/login", controller.Login(db)).Methods("POST")
	router.HandleFunc("/getMe", controller.GetMe(db)).Methods("GET")
	router.HandleFunc("/profile", controller.UpdateProfile(db)).Methods("PUT")

	router.HandleFunc("/events", eventController.GetEvents()).Methods("GET")
	router.HandleFunc("/events/{type}/fee", eventController.GetFee()).Methods("GET")

	router.HandleFunc("/registrations", registrationController.CreateRegistration(db)).Methods("POST")
	router.HandleFunc("/registrations", registrationController.ListMyRegistrations(db)).Methods("GET")
	router.HandleFunc("/registrations/{id}", registrationController.GetRegistration(db)).Methods("GET")
	router.HandleFunc("/registrations/{id}/order", paymentController.CreateOrder(db)).Methods("POST")
	router.HandleFunc("/registrations/{id}/verify", paymentController.VerifyPayment(db)).Methods("POST")
	router.HandleFunc("/registrations/{id}/files", assetController.UploadFile(db)).Methods("POST")
	router.HandleFunc("/registrations/{id}/files", assetController.ListFiles(db)).Methods("GET")

	router.HandleFunc("/results", resultController.GetResults(db)).Methods("GET")
	router.HandleFunc("/results/seasons", resultController.GetSeasons(db)).Methods("GET")
	router.HandleFunc("/results/search", resultController.SearchResults(db)).Methods("GET")
	router.HandleFunc("/results/entries/{id}/certificate", resultController.Certificate(db)).Methods("GET")

	router.HandleFunc("/reviews", reviewController.CreateReview(db)).Methods("POST")
	router.HandleFunc("/reviews", reviewController.GetReviews(db)).Methods("GET")

	router.HandleFunc("/queries", queryController.CreateQuery(db)).Methods("POST")

	router.HandleFunc("/admin/login", adminController.Login()).Methods("POST")
	router.HandleFunc("/admin/participants", adminController.GetParticipants(db)).Methods("GET")
	router.HandleFunc("/admin/participants/{id}", adminController.PatchParticipant(db)).Methods("PATCH")
	router.HandleFunc("/admin/results", adminController.UploadResults(db)).Methods("POST")
	router.HandleFunc("/admin/results", adminController.ListResultSets(db)).Methods("GET")
	router.HandleFunc("/admin/results/template", adminController.ResultsTemplate()).Methods("GET")
	router.HandleFunc("/admin/results/{id}/latest", adminController.MarkLatest(db)).Methods("POST")
	router.HandleFunc("/admin/reviews/{id}", reviewController.ModerateReview(db)).Methods("PATCH")
	router.HandleFunc("/admin/reviews/{id}", reviewController.DeleteReview(db)).Methods("DELETE")
	router.HandleFunc("/admin/queries", queryController.GetQueries(db)).Methods("GET")
	router.HandleFunc("/admin/queries/{id}", queryController.ResolveQuery(db)).Methods("PATCH")
	router.HandleFunc("/admin/queries/{id}", queryController.DeleteQuery(db)).Methods("DELETE")

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(recoveryMiddleware(loggingMiddleware(router)))

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	log.Infof("Server started on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
