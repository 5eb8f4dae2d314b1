package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"chirp_server/config"
	"chirp_server/controllers"
	"chirp_server/metrics"
	"chirp_server/routes"
	"chirp_server/services"
	"chirp_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Cache backend: redis when configured, in-process map otherwise
	var cacheBackend services.CacheBackend
	if cfg.RedisAddr != "" {
		log.Printf("Using redis cache at %s", cfg.RedisAddr)
		cacheBackend = &services.RedisCache{Pool: services.NewRedisPool(cfg.RedisAddr)}
	} else {
		log.Println("⚠️ REDIS_ADDR not set, using in-process cache")
		cacheBackend = services.NewMemoryCache()
	}
	cacheService := &services.CacheService{Backend: cacheBackend}

	// Real-time layer
	socketServer := socket.NewServer(cfg.RedisAddr)
	hub := socket.NewHub(socketServer)
	socket.Bind(socketServer, hub)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("❌ Socket server stopped: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize Services
	tokenService := &services.TokenService{Secret: []byte(cfg.JWTSecret)}
	userService := &services.UserService{Dynamo: dynamoService, Hub: hub}
	tweetService := &services.TweetService{Dynamo: dynamoService, Hub: hub}
	notificationService := &services.NotificationService{Dynamo: dynamoService, Cache: cacheService, Hub: hub}
	commentService := &services.CommentService{Dynamo: dynamoService, Cache: cacheService, Hub: hub, Tweets: tweetService}
	bookmarkService := &services.BookmarkService{Dynamo: dynamoService, Hub: hub, Tweets: tweetService}
	followService := &services.FollowService{Dynamo: dynamoService, Hub: hub, Users: userService, Notifications: notificationService}
	searchService := &services.SearchService{Dynamo: dynamoService, Cache: cacheService, Tweets: tweetService}
	mediaService := &services.MediaService{Client: services.InitializeS3Client(cfg.AWSRegion), Bucket: cfg.S3Bucket}

	auth := &routes.AuthMiddleware{Tokens: tokenService, Users: userService}

	// Initialize the router
	r := mux.NewRouter()
	r.Use(routes.Instrument)

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Chirp")
	}).Methods("GET")

	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterAuthRoutes(r, userService, tokenService, auth)
	routes.RegisterTweetRoutes(r, tweetService, auth)
	routes.RegisterCommentRoutes(r, commentService, notificationService, auth)
	routes.RegisterNotificationRoutes(r, notificationService, auth)
	routes.RegisterBookmarkRoutes(r, bookmarkService, auth)
	routes.RegisterFollowRoutes(r, followService, auth)
	routes.RegisterSearchRoutes(r, searchService, auth)
	routes.RegisterUserProfileRoutes(r, userService, auth)
	routes.RegisterMediaRoutes(r, mediaService, auth)

	// Rate limiting ahead of routing, CORS outermost
	limited := routes.NewRateLimiter(cfg.RateRPS, cfg.RateBurst).Middleware(r)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(limited)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
