package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"ordernest/internal/adapter/api"
	"ordernest/internal/adapter/api/handler"
	apimiddleware "ordernest/internal/adapter/api/middleware"
	"ordernest/internal/adapter/api/router"
	"ordernest/internal/adapter/repository"
	"ordernest/internal/infrastructure/firebase"
	"ordernest/internal/infrastructure/ratelimit"
	"ordernest/internal/infrastructure/storage"
	"ordernest/internal/infrastructure/websocket"
	"ordernest/internal/usecase"
	"ordernest/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	// Credentials come either inline (production) or from a file path (local).
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}

		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	formRepo := repository.NewFirestoreFormRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	fileMetadataRepo := repository.NewFirestoreFileMetadataRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	formUseCase := usecase.NewFormUseCase(formRepo, userRepo, int(cfg.DefaultCancellationHours))
	orderUseCase := usecase.NewOrderUseCase(orderRepo, formRepo, userRepo, fileMetadataRepo, wsManager)

	handler.Setup(authUseCase, userUseCase, formUseCase, orderUseCase)
	handler.SetupFileHandler(storageClient, fileMetadataRepo, formRepo)
	handler.SetupHealthHandler(firebaseAuthClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	accountMiddleware := apimiddleware.NewAccountMiddleware(userRepo)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	router.Setup(e, authMiddleware, accountMiddleware, rateLimitMiddleware, authClient)

	wsHandler := handler.NewWebSocketHandler(wsManager, authClient)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
